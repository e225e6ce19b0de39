// Package catalog holds the registry of known elementary transforms: static
// constants, traversable in both directions, and dynamic producers, which are
// directed. It is the graph searched by the chain resolver.
package catalog

import (
	"fmt"
	"iter"
	"slices"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// ProducerRef names a producer capability: the component model that is
// instantiated in the network to emit a transform at runtime.
type ProducerRef string

// StaticTransform is a transform with a fixed translation and rotation.
type StaticTransform struct {
	frame.Transform
	Translation frame.Vector3
	Rotation    frame.Quaternion
}

// samePayload reports whether two static transforms carry the same value.
func (s StaticTransform) samePayload(other StaticTransform) bool {
	return s.Translation == other.Translation && s.Rotation == other.Rotation
}

// DynamicProducer is a transform emitted at runtime by a producer.
type DynamicProducer struct {
	frame.Transform
	Producer ProducerRef
}

func (d DynamicProducer) String() string {
	return fmt.Sprintf("%s (%s)", d.Transform, d.Producer)
}

// Edge is one traversable step out of a frame. Exactly one of Static and
// Dynamic is set. Reversed is true when a static transform is traversed
// against its registered direction.
type Edge struct {
	To       frame.Frame
	Static   *StaticTransform
	Reversed bool
	Dynamic  *DynamicProducer
}

// Catalog is the process-wide registry of elementary transforms. It is
// populated once before any resolution and read-only afterwards.
type Catalog struct {
	frames     map[frame.Frame]struct{}
	frameOrder []frame.Frame

	static      map[frame.Transform]*StaticTransform
	staticOrder []*StaticTransform

	dynamic      map[frame.Transform][]*DynamicProducer
	dynamicOrder []*DynamicProducer

	adjacency map[frame.Frame][]Edge
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		frames:    make(map[frame.Frame]struct{}),
		static:    make(map[frame.Transform]*StaticTransform),
		dynamic:   make(map[frame.Transform][]*DynamicProducer),
		adjacency: make(map[frame.Frame][]Edge),
	}
}

// DeclareFrames adds frames to the set of known frames. Declaring a frame
// twice is harmless.
func (c *Catalog) DeclareFrames(frames ...frame.Frame) {
	for _, f := range frames {
		if _, ok := c.frames[f]; ok {
			continue
		}
		c.frames[f] = struct{}{}
		c.frameOrder = append(c.frameOrder, f)
	}
}

// HasFrame reports whether f was declared, explicitly or as the endpoint of a
// registered transform.
func (c *Catalog) HasFrame(f frame.Frame) bool {
	_, ok := c.frames[f]
	return ok
}

// Frames returns the declared frames in declaration order.
func (c *Catalog) Frames() []frame.Frame {
	return slices.Clone(c.frameOrder)
}

// RegisterStatic registers a constant transform between from and to. Both
// directions become resolvable. Registering the same value again is a no-op;
// registering a different value for the pair, in either direction, fails with
// a *DuplicateTransformError.
func (c *Catalog) RegisterStatic(from, to frame.Frame, translation frame.Vector3, rotation frame.Quaternion) error {
	st := &StaticTransform{
		Transform:   frame.Transform{From: from, To: to},
		Translation: translation,
		Rotation:    rotation,
	}
	for _, key := range []frame.Transform{st.Transform, st.Reverse()} {
		if existing, ok := c.static[key]; ok {
			if existing.samePayload(*st) {
				return nil
			}
			return &DuplicateTransformError{Transform: st.Transform, Existing: existing.Transform, Static: true}
		}
		if len(c.dynamic[key]) > 0 {
			return &DuplicateTransformError{Transform: st.Transform, Existing: key}
		}
	}

	c.DeclareFrames(from, to)
	c.static[st.Transform] = st
	c.staticOrder = append(c.staticOrder, st)
	if st.IsIdentity() {
		return nil
	}
	c.adjacency[from] = append(c.adjacency[from], Edge{To: to, Static: st})
	c.adjacency[to] = append(c.adjacency[to], Edge{To: from, Static: st, Reversed: true})
	return nil
}

// RegisterDynamic registers producer as a runtime source of the from => to
// transform. Several producers may be registered for the same pair; the
// resolver treats that as an ambiguity. Registering the same producer twice
// for a pair, or a producer for a pair that has a static value, fails with a
// *DuplicateTransformError.
func (c *Catalog) RegisterDynamic(from, to frame.Frame, producer ProducerRef) error {
	key := frame.Transform{From: from, To: to}
	for _, existing := range c.dynamic[key] {
		if existing.Producer == producer {
			return &DuplicateTransformError{Transform: key, Existing: key, Producer: producer}
		}
	}
	for _, k := range []frame.Transform{key, key.Reverse()} {
		if _, ok := c.static[k]; ok {
			return &DuplicateTransformError{Transform: key, Existing: k, Static: true}
		}
	}

	dp := &DynamicProducer{Transform: key, Producer: producer}
	c.DeclareFrames(from, to)
	c.dynamic[key] = append(c.dynamic[key], dp)
	c.dynamicOrder = append(c.dynamicOrder, dp)
	if !key.IsIdentity() {
		c.adjacency[from] = append(c.adjacency[from], Edge{To: to, Dynamic: dp})
	}
	return nil
}

// Neighbors yields the edges leaving f, static ones and dynamic ones, in
// registration order. The sequence is finite and may be iterated repeatedly.
func (c *Catalog) Neighbors(f frame.Frame) iter.Seq[Edge] {
	edges := c.adjacency[f]
	return func(yield func(Edge) bool) {
		for _, e := range edges {
			if !yield(e) {
				return
			}
		}
	}
}

// StaticTransforms yields every registered static transform in registration
// order, in its registered direction.
func (c *Catalog) StaticTransforms() iter.Seq[StaticTransform] {
	return func(yield func(StaticTransform) bool) {
		for _, st := range c.staticOrder {
			if !yield(*st) {
				return
			}
		}
	}
}

// DynamicProducers yields every registered producer binding in registration
// order.
func (c *Catalog) DynamicProducers() iter.Seq[DynamicProducer] {
	return func(yield func(DynamicProducer) bool) {
		for _, dp := range c.dynamicOrder {
			if !yield(*dp) {
				return
			}
		}
	}
}
