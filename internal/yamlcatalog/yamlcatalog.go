// Package yamlcatalog reads and writes the persisted transform catalog:
// declared frames, static transform records and dynamic producer bindings.
//
//	frames: [world, body, laser_front]
//	static:
//	  - from: body
//	    to: laser_front
//	    translation: [0.2, 0, 0.1]
//	    rotation: [0, 0, 0.7071, 0.7071] # x, y, z, w; identity when omitted
//	dynamic:
//	  - from: odometry
//	    to: world
//	    producer: wheel_odometry
package yamlcatalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/framegrid/internal/config"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a catalog file.
type File struct {
	Frames  []string        `yaml:"frames,omitempty"`
	Static  []StaticRecord  `yaml:"static,omitempty"`
	Dynamic []DynamicRecord `yaml:"dynamic,omitempty"`
}

// StaticRecord is a persisted static transform.
type StaticRecord struct {
	From        string    `yaml:"from"`
	To          string    `yaml:"to"`
	Translation []float64 `yaml:"translation,flow,omitempty"`
	Rotation    []float64 `yaml:"rotation,flow,omitempty"`
}

// DynamicRecord is a persisted producer binding.
type DynamicRecord struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Producer string `yaml:"producer"`
}

// Loader is the YAML implementation of config.Loader. It only fills the
// catalog part of the model.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML catalog loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml and .yml file found under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := config.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML catalog files.", "count", len(files))

	model := config.NewModel()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", path, err)
		}
		model.Merge(&config.Model{Catalog: c})
	}

	logger.Debug("YAML catalog loading complete.",
		"frames", len(model.Catalog.Frames),
		"static", len(model.Catalog.Static),
		"dynamic", len(model.Catalog.Dynamic))
	return model, nil
}

// Parse decodes catalog YAML. Unknown keys are rejected.
func Parse(data []byte) (*config.Catalog, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return f.toConfig()
}

func (f *File) toConfig() (*config.Catalog, error) {
	c := &config.Catalog{Frames: f.Frames}
	for i, r := range f.Static {
		if r.From == "" || r.To == "" {
			return nil, fmt.Errorf("static[%d]: 'from' and 'to' are required", i)
		}
		st := &config.StaticTransform{From: r.From, To: r.To, Rotation: [4]float64{0, 0, 0, 1}}
		if err := fill(st.Translation[:], r.Translation, "translation"); err != nil {
			return nil, fmt.Errorf("static[%d] %s => %s: %w", i, r.From, r.To, err)
		}
		if err := fill(st.Rotation[:], r.Rotation, "rotation"); err != nil {
			return nil, fmt.Errorf("static[%d] %s => %s: %w", i, r.From, r.To, err)
		}
		c.Static = append(c.Static, st)
	}
	for i, r := range f.Dynamic {
		if r.From == "" || r.To == "" || r.Producer == "" {
			return nil, fmt.Errorf("dynamic[%d]: 'from', 'to' and 'producer' are required", i)
		}
		c.Dynamic = append(c.Dynamic, &config.DynamicTransform{From: r.From, To: r.To, Producer: r.Producer})
	}
	return c, nil
}

// fill copies src into dst. An empty src keeps the default in dst.
func fill(dst, src []float64, name string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%s needs %d numbers, got %d", name, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// Encode writes c as catalog YAML.
func Encode(w io.Writer, c *config.Catalog) error {
	f := File{Frames: c.Frames}
	for _, st := range c.Static {
		f.Static = append(f.Static, StaticRecord{
			From:        st.From,
			To:          st.To,
			Translation: st.Translation[:],
			Rotation:    st.Rotation[:],
		})
	}
	for _, d := range c.Dynamic {
		f.Dynamic = append(f.Dynamic, DynamicRecord{From: d.From, To: d.To, Producer: d.Producer})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("failed to encode catalog YAML: %w", err)
	}
	return enc.Close()
}
