package chain

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/framegrid/internal/frame"
)

// NoChainError reports that no sequence of known transforms connects the two
// frames.
type NoChainError struct {
	From frame.Frame
	To   frame.Frame
}

func (e *NoChainError) Error() string {
	return fmt.Sprintf("no transformation chain from %s to %s", e.From, e.To)
}

// AmbiguityError reports several equally short chains for one query.
type AmbiguityError struct {
	From       frame.Frame
	To         frame.Frame
	Candidates []Chain
}

func (e *AmbiguityError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ambiguous transformation chain from %s to %s, %d candidates:", e.From, e.To, len(e.Candidates))
	for _, c := range e.Candidates {
		sb.WriteString("\n  ")
		sb.WriteString(c.String())
	}
	return sb.String()
}
