package producer

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// PortNotFoundError reports a producer node without an output port for the
// transform it was instantiated for.
type PortNotFoundError struct {
	Producer  string
	Transform frame.Transform
}

func (e *PortNotFoundError) Error() string {
	return fmt.Sprintf("producer %s has no output port for %s", e.Producer, e.Transform)
}

// PortAmbiguityError reports a producer node with several output ports that
// could provide the transform.
type PortAmbiguityError struct {
	Producer   string
	Transform  frame.Transform
	Candidates []string
}

func (e *PortAmbiguityError) Error() string {
	return fmt.Sprintf("producer %s has several output ports for %s: %s",
		e.Producer, e.Transform, strings.Join(e.Candidates, ", "))
}
