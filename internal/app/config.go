package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/publish"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	NetworkPath  string   // hcl files
	CatalogPaths []string // hcl or yaml files
	// ExportCatalog, when set, receives the merged catalog as YAML.
	ExportCatalog string

	LogFormat string
	LogLevel  string
	Output    string

	Lenient            bool
	AllowIncomplete    bool
	DisableTransformer bool

	// Publish is used when Publish.URL is set.
	Publish publish.Config
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.NetworkPath == "" {
		return nil, errors.New("NetworkPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = FormatYAML
	}
	if cfg.Output != FormatYAML && cfg.Output != FormatJSON {
		return nil, fmt.Errorf("invalid output format %q: must be 'yaml' or 'json'", cfg.Output)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Publish.Timeout < 0 {
		return nil, errors.New("publish timeout cannot be negative")
	}
	return &cfg, nil
}
