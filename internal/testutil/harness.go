// Package testutil runs whole builds from declaration files for the
// integration tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/framegrid/internal/app"
	"github.com/stretchr/testify/require"
)

// FixedNow is the clock every harness build runs with.
var FixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	// Document is the decoded result. It is nil when the run failed.
	Document *app.Document
}

// ConfigOption adjusts the app configuration of a harness run.
type ConfigOption func(*app.Config)

// Lenient runs the build in lenient mode, accepting an incomplete network.
func Lenient(cfg *app.Config) {
	cfg.Lenient = true
	cfg.AllowIncomplete = true
}

// RunIntegrationTest writes files under a temporary root and builds them.
// Paths starting with "network/" are the network; paths starting with
// "catalog/" are passed as a catalog directory.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...ConfigOption) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	networkDir := filepath.Join(tmpDir, "network")
	catalogDir := filepath.Join(tmpDir, "catalog")
	require.NoError(t, os.Mkdir(networkDir, 0o755))
	require.NoError(t, os.Mkdir(catalogDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := &app.Config{
		NetworkPath:  networkDir,
		CatalogPaths: []string{catalogDir},
		LogLevel:     "debug",
		LogFormat:    "text",
		Output:       app.FormatJSON,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	out := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	a, err := app.NewApp(out, logBuffer, cfg, app.WithClock(func() time.Time { return FixedNow }))
	require.NoError(t, err)

	runErr := a.Run(context.Background())

	if os.Getenv("FRAMEGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result := &HarnessResult{LogOutput: logBuffer.String(), Err: runErr}
	if runErr == nil {
		var doc app.Document
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc), "result document should be valid JSON")
		result.Document = &doc
	}
	return result
}
