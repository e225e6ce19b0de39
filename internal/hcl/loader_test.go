package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/framegrid/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogHCL = `
frames {
  names = ["world", "body", "laser_front"]
}

static_transform "body" "laser_front" {
  translation = [0.2, 0, 0.1]
  rotation    = [0, 0, 0.7071, 0.7071]
}

static_transform "world" "map" {}

dynamic_transform "odometry" "world" {
  producer = "wheel_odometry"
}
`

const networkHCL = `
component "driver" {
  output "scans" {
    frame = "sensor"
  }
}

component "mapper" {
  input "scans" {
    frame = "sensor"
  }
  output "pose" {
    from = "body"
    to   = "map"
  }
  needs "sensor" "map" {}
}

task "mapping" {
  component = "mapper"
  frames    = { map = "world" }
  children  = ["laser"]

  producer "odometry" "world" {
    producer = "wheel_odometry"
  }
}

task "laser" {
  component = "driver"

  device "hokuyo" {
    port  = "scans"
    frame = "laser_front"
  }
}

connect {
  from = "laser.scans"
  to   = "mapping.scans"
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.hcl", catalogHCL)
	writeFile(t, dir, "nested/network.hcl", networkHCL)
	writeFile(t, dir, "notes.txt", "not hcl")

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	t.Run("catalog", func(t *testing.T) {
		assert.Equal(t, []string{"world", "body", "laser_front"}, m.Catalog.Frames)
		require.Len(t, m.Catalog.Static, 2)
		assert.Equal(t, &config.StaticTransform{
			From:        "body",
			To:          "laser_front",
			Translation: [3]float64{0.2, 0, 0.1},
			Rotation:    [4]float64{0, 0, 0.7071, 0.7071},
		}, m.Catalog.Static[0])
		assert.Equal(t, [4]float64{0, 0, 0, 1}, m.Catalog.Static[1].Rotation, "rotation defaults to identity")
		assert.Equal(t, []*config.DynamicTransform{{From: "odometry", To: "world", Producer: "wheel_odometry"}}, m.Catalog.Dynamic)
	})

	t.Run("components", func(t *testing.T) {
		require.Contains(t, m.Components, "mapper")
		mapper := m.Components["mapper"]
		require.Len(t, mapper.Ports, 2)
		assert.Equal(t, &config.Port{Name: "scans", Direction: config.Input, Frame: "sensor"}, mapper.Ports[0])
		assert.Equal(t, &config.Port{Name: "pose", Direction: config.Output, From: "body", To: "map"}, mapper.Ports[1])
		assert.True(t, mapper.Ports[1].IsTransform())
		assert.Equal(t, []*config.Need{{From: "sensor", To: "map"}}, mapper.Needs)
	})

	t.Run("tasks", func(t *testing.T) {
		require.Len(t, m.Tasks, 2)
		mapping := m.Tasks[0]
		assert.Equal(t, "mapper", mapping.Component)
		assert.Equal(t, map[string]string{"map": "world"}, mapping.Frames)
		assert.Equal(t, []string{"laser"}, mapping.Children)
		assert.Equal(t, []*config.ProducerChoice{{From: "odometry", To: "world", Producer: "wheel_odometry"}}, mapping.Producers)

		laser := m.Tasks[1]
		assert.Nil(t, laser.Frames)
		assert.Equal(t, &config.Device{Name: "hokuyo", Port: "scans", Frame: "laser_front"}, laser.Device)
	})

	t.Run("connections", func(t *testing.T) {
		assert.Equal(t, []*config.Connection{{From: "laser.scans", To: "mapping.scans"}}, m.Connections)
	})
}

func TestLoad_MissingPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "catalog.hcl", catalogHCL)

	_, err := NewLoader().Load(context.Background(), dir, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "syntax error",
			content: `static_transform "a" {`,
			errMsg:  "failed to parse HCL file",
		},
		{
			name: "unknown attribute",
			content: `
dynamic_transform "a" "b" {
  producer = "p"
  extra    = 1
}
`,
			errMsg: "failed to decode HCL file",
		},
		{
			name:    "short translation",
			content: `static_transform "a" "b" { translation = [1, 2] }`,
			errMsg:  "expected 3 numbers, got 2",
		},
		{
			name:    "non numeric rotation",
			content: `static_transform "a" "b" { rotation = ["x", 0, 0, 1] }`,
			errMsg:  "rotation",
		},
		{
			name: "frames not a map",
			content: `
task "t" {
  component = "c"
  frames    = ["a"]
}
`,
			errMsg: "expected a map of frame names",
		},
		{
			name: "duplicate component",
			content: `
component "c" {}
component "c" {}
`,
			errMsg: "declared twice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
