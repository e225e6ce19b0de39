package transformer

import (
	"iter"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// Direction tells input ports from output ports.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Port is a port of a component model. A port carries either a single frame
// alias (an annotated port) or a transform between two aliases (a transform
// port). Ports with neither take no part in frame assignment.
type Port struct {
	Name      string
	Direction Direction
	Frame     frame.Alias
	Transform *frame.LocalTransform
}

// IsTransform reports whether the port carries a transform.
func (p Port) IsTransform() bool {
	return p.Transform != nil
}

// IsAnnotated reports whether the port carries a single frame.
func (p Port) IsAnnotated() bool {
	return p.Transform == nil && p.Frame != ""
}

// Annotations is the transformer description of a component model: which
// ports carry frames or transforms, and which transforms the component needs
// in order to run. Node aliases are local to the component.
type Annotations struct {
	ports []Port
	needs []frame.LocalTransform
}

// NewAnnotations creates an annotation set. Ports and needs are kept in the
// given order, which is the order every iterator yields them in.
func NewAnnotations(ports []Port, needs []frame.LocalTransform) *Annotations {
	return &Annotations{
		ports: append([]Port(nil), ports...),
		needs: append([]frame.LocalTransform(nil), needs...),
	}
}

// Port returns the port with the given name.
func (a *Annotations) Port(name string) (Port, bool) {
	if a == nil {
		return Port{}, false
	}
	for _, p := range a.ports {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Ports yields every declared port.
func (a *Annotations) Ports() iter.Seq[Port] {
	return func(yield func(Port) bool) {
		if a == nil {
			return
		}
		for _, p := range a.ports {
			if !yield(p) {
				return
			}
		}
	}
}

// AnnotatedPorts yields the ports carrying a single frame, with their alias.
func (a *Annotations) AnnotatedPorts() iter.Seq2[Port, frame.Alias] {
	return func(yield func(Port, frame.Alias) bool) {
		for p := range a.Ports() {
			if p.IsAnnotated() && !yield(p, p.Frame) {
				return
			}
		}
	}
}

// TransformPorts yields the ports carrying a transform, with their local
// transform.
func (a *Annotations) TransformPorts() iter.Seq2[Port, frame.LocalTransform] {
	return func(yield func(Port, frame.LocalTransform) bool) {
		for p := range a.Ports() {
			if p.IsTransform() && !yield(p, *p.Transform) {
				return
			}
		}
	}
}

// Needs yields the transforms the component requires.
func (a *Annotations) Needs() iter.Seq[frame.LocalTransform] {
	return func(yield func(frame.LocalTransform) bool) {
		if a == nil {
			return
		}
		for _, n := range a.needs {
			if !yield(n) {
				return
			}
		}
	}
}
