package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// nameRegex is used to parse the part after the kind, e.g. `name` or `name[1]`.
var nameRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// isValidName checks for undesirable but technically valid names.
func isValidName(name string) bool {
	return name != "-" && name != "_"
}

// Parse creates an Address from its canonical string representation.
func Parse(rawID string) (Address, error) {
	if rawID == "" {
		return Address{}, fmt.Errorf("identifier cannot be empty")
	}
	kind, rest, ok := strings.Cut(rawID, ".")
	if !ok {
		return Address{}, fmt.Errorf("identifier %q has no kind prefix", rawID)
	}
	if !Kind(kind).Valid() {
		return Address{}, fmt.Errorf("unknown node kind %q in %q", kind, rawID)
	}

	matches := nameRegex.FindStringSubmatch(rest)
	if matches == nil {
		return Address{}, fmt.Errorf("invalid node name format: %q", rest)
	}
	if !isValidName(matches[1]) {
		return Address{}, fmt.Errorf("invalid node name: %q", matches[1])
	}

	addr := Address{Kind: Kind(kind), Name: matches[1], Index: -1}
	if matches[2] != "" {
		index, err := strconv.Atoi(matches[2])
		if err != nil {
			// Only reachable on overflow, the regex guarantees digits.
			return Address{}, fmt.Errorf("parsing index of %q: %w", rawID, err)
		}
		addr.Index = index
	}
	return addr, nil
}

// MustParse is like Parse but panics on error. It is meant for identifiers
// generated by the program itself.
func MustParse(rawID string) Address {
	addr, err := Parse(rawID)
	if err != nil {
		panic(fmt.Sprintf("nodeid: %v", err))
	}
	return addr
}
