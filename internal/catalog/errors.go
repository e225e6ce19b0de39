package catalog

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// DuplicateTransformError reports a registration that collides with an
// existing entry of the catalog.
type DuplicateTransformError struct {
	Transform frame.Transform
	// Existing is the registered pair that collided, possibly the reverse of
	// Transform.
	Existing frame.Transform
	// Static is true when the existing entry is a static transform.
	Static bool
	// Producer is set when the same producer was registered twice.
	Producer ProducerRef
}

func (e *DuplicateTransformError) Error() string {
	switch {
	case e.Producer != "":
		return fmt.Sprintf("producer %s is already registered for %s", e.Producer, e.Transform)
	case e.Static:
		return fmt.Sprintf("cannot register %s: a different static transform is already registered for %s", e.Transform, e.Existing)
	default:
		return fmt.Sprintf("cannot register static %s: dynamic producers are registered for %s", e.Transform, e.Existing)
	}
}
