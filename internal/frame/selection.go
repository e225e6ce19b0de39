package frame

import (
	"fmt"
	"maps"
	"slices"
)

// Selection is the per-node mapping from local aliases to global frames.
type Selection struct {
	owner   string
	entries map[Alias]Frame
	frozen  bool
}

// NewSelection creates an empty selection owned by the named node. The owner is
// only used to describe conflicts.
func NewSelection(owner string) *Selection {
	return &Selection{
		owner:   owner,
		entries: make(map[Alias]Frame),
	}
}

// Owner returns the name of the node the selection belongs to.
func (s *Selection) Owner() string {
	return s.owner
}

// Select assigns frame f to alias. Selecting the frame already assigned is a
// no-op; selecting a different one returns a *ConflictError and leaves the
// selection unchanged.
func (s *Selection) Select(alias Alias, f Frame) error {
	if current, ok := s.entries[alias]; ok {
		if current != f {
			return &ConflictError{Node: s.owner, Alias: alias, Existing: current, Attempted: f}
		}
		return nil
	}
	if s.frozen {
		panic(fmt.Sprintf("frame: selection of %s is frozen, cannot select %s for %s", s.owner, f, alias))
	}
	s.entries[alias] = f
	return nil
}

// SelectAll applies Select for every entry of mappings, in alias order so that
// the reported conflict is deterministic. It stops at the first conflict.
func (s *Selection) SelectAll(mappings map[Alias]Frame) error {
	for _, alias := range slices.Sorted(maps.Keys(mappings)) {
		if err := s.Select(alias, mappings[alias]); err != nil {
			return err
		}
	}
	return nil
}

// Merge applies every entry of other to s.
func (s *Selection) Merge(other *Selection) error {
	if other == nil {
		return nil
	}
	return s.SelectAll(other.entries)
}

// Lookup returns the frame selected for alias, if any.
func (s *Selection) Lookup(alias Alias) (Frame, bool) {
	f, ok := s.entries[alias]
	return f, ok
}

// Resolve maps a local transform onto global frames. ok is false unless both
// ends are selected.
func (s *Selection) Resolve(t LocalTransform) (Transform, bool) {
	from, okFrom := s.entries[t.From]
	to, okTo := s.entries[t.To]
	return Transform{From: from, To: to}, okFrom && okTo
}

// Entries returns a copy of the current mapping.
func (s *Selection) Entries() map[Alias]Frame {
	return maps.Clone(s.entries)
}

// Len returns the number of selected aliases.
func (s *Selection) Len() int {
	return len(s.entries)
}

// Freeze marks the selection as final. Re-selecting an existing value stays a
// no-op afterwards; recording a new alias panics.
func (s *Selection) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze was called.
func (s *Selection) Frozen() bool {
	return s.frozen
}
