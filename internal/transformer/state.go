package transformer

import (
	"cmp"
	"maps"
	"slices"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/chain"
	"github.com/specialistvlad/framegrid/internal/frame"
)

// Device is a device binding attached to a node. It fixes the frame of the
// named port: Frame for an annotated port, Transform for a transform port.
type Device struct {
	Name      string
	Port      string
	Frame     frame.Frame
	Transform *frame.Transform
}

// State is the frame/transform state of one node for one build.
//
// The host fills Explicit, Device and Producers when it creates the node.
// Propagation fills Selected. Resolution fills Static, the static segments
// of its chains to be composed on the node, and Chains, and records
// the requirements it had to skip in Unresolved.
type State struct {
	Selected *frame.Selection

	Explicit  map[frame.Alias]frame.Frame
	Device    *Device
	Producers map[frame.Transform]catalog.ProducerRef

	Static     []chain.Segment
	Chains     map[frame.LocalTransform]chain.Chain
	Unresolved map[frame.LocalTransform]error
	Resolved   bool
}

// NewState creates an empty state for the node with the given ID.
func NewState(owner string) *State {
	return &State{
		Selected:   frame.NewSelection(owner),
		Explicit:   make(map[frame.Alias]frame.Frame),
		Producers:  make(map[frame.Transform]catalog.ProducerRef),
		Chains:     make(map[frame.LocalTransform]chain.Chain),
		Unresolved: make(map[frame.LocalTransform]error),
	}
}

// InheritProducers copies the producer choices of a parent that the node does
// not override.
func (s *State) InheritProducers(parent *State) {
	for t, ref := range parent.Producers {
		if _, ok := s.Producers[t]; !ok {
			s.Producers[t] = ref
		}
	}
}

// AddStatic records a static segment on the node. A segment already recorded
// for the same pair is replaced.
func (s *State) AddStatic(seg chain.Segment) {
	for i, existing := range s.Static {
		if existing.Transform == seg.Transform {
			s.Static[i] = seg
			return
		}
	}
	s.Static = append(s.Static, seg)
}

// ResolveTransform maps a local transform to global frames. ok is false when
// either alias has no selection yet.
func (s *State) ResolveTransform(lt frame.LocalTransform) (frame.Transform, bool) {
	return s.Selected.Resolve(lt)
}

// UnresolvedNeeds returns the skipped requirements in a stable order.
func (s *State) UnresolvedNeeds() []frame.LocalTransform {
	return slices.SortedFunc(maps.Keys(s.Unresolved), func(a, b frame.LocalTransform) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
}
