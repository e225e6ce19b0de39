package transformer

import "github.com/specialistvlad/framegrid/internal/catalog"

// Settings carries the catalog and the mode flags of one build.
type Settings struct {
	Catalog *catalog.Catalog

	// Strict makes every requirement that cannot be resolved fatal as soon as
	// it is found. In lenient mode it is skipped and reported by validation.
	Strict bool

	// Enabled turns the whole subsystem on or off for the build.
	Enabled bool
}

// DefaultSettings returns strict, enabled settings over c.
func DefaultSettings(c *catalog.Catalog) Settings {
	return Settings{Catalog: c, Strict: true, Enabled: true}
}
