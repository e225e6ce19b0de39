package pipeline

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/report"
)

// Unresolved is a requirement left unresolved by a lenient build.
type Unresolved struct {
	Node   string      `json:"node" yaml:"node"`
	From   frame.Alias `json:"from" yaml:"from"`
	To     frame.Alias `json:"to" yaml:"to"`
	Reason string      `json:"reason" yaml:"reason"`
	Err    error       `json:"-" yaml:"-"`
}

func (u Unresolved) String() string {
	return fmt.Sprintf("%s: %s => %s: %s", u.Node, u.From, u.To, u.Reason)
}

// Result is the outcome of a build.
type Result struct {
	// Enabled is false when the subsystem was turned off and nothing ran.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Complete is false when validation found unresolved requirements.
	Complete   bool          `json:"complete" yaml:"complete"`
	Rounds     int           `json:"rounds" yaml:"rounds"`
	Producers  int           `json:"producers" yaml:"producers"`
	Unresolved []Unresolved  `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Report     *report.State `json:"report,omitempty" yaml:"report,omitempty"`
}

// Deployable returns an *IncompleteError when the build left requirements
// unresolved.
func (r *Result) Deployable() error {
	if r.Complete {
		return nil
	}
	return &IncompleteError{Unresolved: r.Unresolved}
}
