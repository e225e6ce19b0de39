package pipeline

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// InvalidChainError reports a requirement of a node for which no usable chain
// was found. It carries both the node-local aliases and the global frames.
type InvalidChainError struct {
	Node      string
	Need      frame.LocalTransform
	Transform frame.Transform
	Err       error
}

func (e *InvalidChainError) Error() string {
	return fmt.Sprintf("cannot find a transformation chain to produce %s for %s (task-local frames: %s): %v",
		e.Transform, e.Node, e.Need, e.Err)
}

func (e *InvalidChainError) Unwrap() error {
	return e.Err
}

// IncompleteError is returned by Result.Deployable for a build that left
// requirements unresolved.
type IncompleteError struct {
	Unresolved []Unresolved
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("network is incomplete: %d transformation requirement(s) unresolved", len(e.Unresolved))
}
