// Package report projects the frame and transform assignments of a finished
// build into flat records for monitoring and visualization. It makes no
// decisions: everything it reports was fixed by the earlier stages.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// StaticTransformation is a registered static transform.
type StaticTransformation struct {
	From        frame.Frame      `json:"from" yaml:"from"`
	To          frame.Frame      `json:"to" yaml:"to"`
	Translation frame.Vector3    `json:"translation" yaml:"translation,flow"`
	Rotation    frame.Quaternion `json:"rotation" yaml:"rotation"`
}

// PortFrameAssociation is the frame of an annotated port.
type PortFrameAssociation struct {
	Node  string      `json:"node" yaml:"node"`
	Port  string      `json:"port" yaml:"port"`
	Frame frame.Frame `json:"frame" yaml:"frame"`
}

// PortTransformationAssociation is the transform carried by an output port.
type PortTransformationAssociation struct {
	Node      string      `json:"node" yaml:"node"`
	Port      string      `json:"port" yaml:"port"`
	FromFrame frame.Frame `json:"from_frame" yaml:"from_frame"`
	ToFrame   frame.Frame `json:"to_frame" yaml:"to_frame"`
}

// State is the configuration state of one build.
type State struct {
	ComputedAt                     time.Time                       `json:"computed_at" yaml:"computed_at"`
	StaticTransformations          []StaticTransformation          `json:"static_transformations" yaml:"static_transformations"`
	PortFrameAssociations          []PortFrameAssociation          `json:"port_frame_associations" yaml:"port_frame_associations"`
	PortTransformationAssociations []PortTransformationAssociation `json:"port_transformation_associations" yaml:"port_transformation_associations"`
	Warnings                       []string                        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build computes the configuration state of net. Ports whose frames are not
// known are left out and reported as warnings: the network can run without
// them, it only cannot be displayed in the right frame.
func Build(ctx context.Context, c *catalog.Catalog, net transformer.Network, now time.Time) *State {
	logger := ctxlog.FromContext(ctx)
	st := &State{ComputedAt: now}

	if c != nil {
		for s := range c.StaticTransforms() {
			st.StaticTransformations = append(st.StaticTransformations, StaticTransformation{
				From:        s.From,
				To:          s.To,
				Translation: s.Translation,
				Rotation:    s.Rotation,
			})
		}
	}

	warn := func(msg string, args ...any) {
		text := fmt.Sprintf(msg, args...)
		st.Warnings = append(st.Warnings, text)
		logger.Warn(text)
	}

	for n := range net.Nodes() {
		sel := n.State().Selected
		for port, alias := range n.Annotations().AnnotatedPorts() {
			f, ok := sel.Lookup(alias)
			if !ok {
				warn("no frame selected for %s on %s. This is harmless for the network to run, but %s cannot be displayed in the right frame", alias, n.ID(), port.Name)
				continue
			}
			st.PortFrameAssociations = append(st.PortFrameAssociations, PortFrameAssociation{
				Node: n.ID(), Port: port.Name, Frame: f,
			})
		}
		for port, lt := range n.Annotations().TransformPorts() {
			if port.Direction != transformer.Output {
				continue
			}
			t, ok := sel.Resolve(lt)
			if !ok {
				warn("no frame selected for %s on %s. This is harmless for the network to run, but might remove some options during display of %s", lt, n.ID(), port.Name)
				continue
			}
			st.PortTransformationAssociations = append(st.PortTransformationAssociations, PortTransformationAssociation{
				Node: n.ID(), Port: port.Name, FromFrame: t.From, ToFrame: t.To,
			})
		}
	}

	logger.Debug("Report: Built configuration state.",
		"static", len(st.StaticTransformations),
		"port_frames", len(st.PortFrameAssociations),
		"port_transforms", len(st.PortTransformationAssociations),
		"warnings", len(st.Warnings))
	return st
}
