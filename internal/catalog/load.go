package catalog

import (
	"context"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/config"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
)

// FromConfig builds a catalog from the format-agnostic catalog records.
func FromConfig(ctx context.Context, records *config.Catalog) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	c := New()
	if records == nil {
		logger.Debug("No catalog records in configuration, starting with an empty catalog.")
		return c, nil
	}

	for _, name := range records.Frames {
		c.DeclareFrames(frame.Frame(name))
	}
	for _, rec := range records.Static {
		rot := frame.Quaternion{X: rec.Rotation[0], Y: rec.Rotation[1], Z: rec.Rotation[2], W: rec.Rotation[3]}
		if err := c.RegisterStatic(frame.Frame(rec.From), frame.Frame(rec.To), frame.Vector3(rec.Translation), rot); err != nil {
			return nil, fmt.Errorf("static transform %s => %s: %w", rec.From, rec.To, err)
		}
	}
	for _, rec := range records.Dynamic {
		if err := c.RegisterDynamic(frame.Frame(rec.From), frame.Frame(rec.To), ProducerRef(rec.Producer)); err != nil {
			return nil, fmt.Errorf("dynamic transform %s => %s: %w", rec.From, rec.To, err)
		}
	}

	logger.Debug("Transform catalog populated.", "frames", len(c.frameOrder), "static", len(c.staticOrder), "dynamic", len(c.dynamicOrder))
	return c, nil
}
