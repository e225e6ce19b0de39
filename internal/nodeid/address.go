package nodeid

import (
	"fmt"
	"strings"
)

// String serializes the Address into its canonical string representation.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(string(a.Kind))
	sb.WriteRune('.')
	sb.WriteString(a.Name)
	if a.HasIndex() {
		fmt.Fprintf(&sb, "[%d]", a.Index)
	}
	return sb.String()
}

// Less orders addresses by kind, name, then index.
func (a Address) Less(other Address) bool {
	if a.Kind != other.Kind {
		return a.Kind > other.Kind // tasks before producers
	}
	if a.Name != other.Name {
		return a.Name < other.Name
	}
	return a.Index < other.Index
}
