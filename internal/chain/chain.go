package chain

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/frame"
)

// LocalProducer is a producer already available on the requesting node.
// Exactly one field is set: Port names a connected input port, Producer names
// an explicitly chosen producer component.
type LocalProducer struct {
	Port     string
	Producer catalog.ProducerRef
}

// IsPort reports whether the producer is an input port of the node itself.
func (l LocalProducer) IsPort() bool {
	return l.Port != ""
}

func (l LocalProducer) String() string {
	if l.IsPort() {
		return "port " + l.Port
	}
	return "producer " + string(l.Producer)
}

// Kind tells static segments from dynamic ones.
type Kind int

const (
	Static Kind = iota
	Dynamic
)

func (k Kind) String() string {
	if k == Dynamic {
		return "dynamic"
	}
	return "static"
}

// Segment is one elementary transform of a chain, oriented in the direction
// it is traversed.
type Segment struct {
	Transform frame.Transform
	Kind      Kind

	// Static is set for static segments. Reversed is true when the segment
	// uses the inverse of the registered transform.
	Static   *catalog.StaticTransform
	Reversed bool

	// Producer is set for dynamic segments found in the catalog, Local for
	// those provided by the requesting node.
	Producer *catalog.DynamicProducer
	Local    *LocalProducer
}

// ProducerRef returns the producer component that must run for this segment.
// It is empty for static segments and for segments served by an input port.
func (s Segment) ProducerRef() catalog.ProducerRef {
	switch {
	case s.Producer != nil:
		return s.Producer.Producer
	case s.Local != nil && !s.Local.IsPort():
		return s.Local.Producer
	}
	return ""
}

func (s Segment) String() string {
	switch {
	case s.Kind == Static && s.Reversed:
		return fmt.Sprintf("%s (static, inverse)", s.Transform)
	case s.Kind == Static:
		return fmt.Sprintf("%s (static)", s.Transform)
	case s.Local != nil:
		return fmt.Sprintf("%s (%s)", s.Transform, s.Local)
	default:
		return fmt.Sprintf("%s (producer %s)", s.Transform, s.ProducerRef())
	}
}

// Chain is an ordered composition of segments. Consecutive segments share an
// endpoint, the first starts at Transform.From and the last ends at
// Transform.To. The identity chain has no segments.
type Chain struct {
	Transform frame.Transform
	Segments  []Segment
}

// Len returns the number of segments.
func (c Chain) Len() int {
	return len(c.Segments)
}

// Frames returns the frames visited by the chain, endpoints included.
func (c Chain) Frames() []frame.Frame {
	frames := []frame.Frame{c.Transform.From}
	for _, s := range c.Segments {
		frames = append(frames, s.Transform.To)
	}
	return frames
}

func (c Chain) String() string {
	if len(c.Segments) == 0 {
		return fmt.Sprintf("%s (identity)", c.Transform)
	}
	parts := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Partition splits the chain into its static and dynamic segments, keeping
// the order within each group. Static segments are recorded on the consumer
// as constants; each dynamic segment needs a live producer.
func (c Chain) Partition() (static, dynamic []Segment) {
	for _, s := range c.Segments {
		if s.Kind == Static {
			static = append(static, s)
		} else {
			dynamic = append(dynamic, s)
		}
	}
	return static, dynamic
}
