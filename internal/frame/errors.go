package frame

import "fmt"

// ConflictError reports that two sources selected different frames for the
// same alias of one node.
type ConflictError struct {
	Node      string
	Alias     Alias
	Existing  Frame
	Attempted Frame
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting frames selected for %s (%s != %s) on %s", e.Alias, e.Existing, e.Attempted, e.Node)
}

// Roles reported by InvalidConfigurationError.
const (
	RoleFrom      = "'from' frame"
	RoleTo        = "'to' frame"
	RoleReference = "reference frame"
)

// InvalidConfigurationError reports a mandatory frame that is either unset or
// not declared in the transform catalog.
type InvalidConfigurationError struct {
	Node  string
	Alias Alias
	// Frame is empty when nothing was selected at all.
	Frame Frame
	Role  string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Frame == "" {
		return fmt.Sprintf("no frame selected for %s as %s on %s", e.Alias, e.Role, e.Node)
	}
	return fmt.Sprintf("undefined frame %s selected as %s for %s on %s", e.Frame, e.Role, e.Alias, e.Node)
}
