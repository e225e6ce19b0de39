package plan

import (
	"fmt"
	"slices"
)

// vertex is a node of the dependency hierarchy.
type vertex struct {
	id       string
	children []*vertex
	parents  []*vertex
	roles    map[string][]string // child ID -> roles
}

// hierarchy is the directed acyclic graph of dependencies, parent -> child.
type hierarchy struct {
	vertices map[string]*vertex
}

func newHierarchy() *hierarchy {
	return &hierarchy{vertices: make(map[string]*vertex)}
}

// addVertex adds a vertex with the given ID. Adding it twice does nothing.
func (h *hierarchy) addVertex(id string) {
	if _, ok := h.vertices[id]; ok {
		return
	}
	h.vertices[id] = &vertex{id: id, roles: make(map[string][]string)}
}

// addEdge makes parentID depend on childID under role. Repeating an edge with
// a new role records the role; repeating it with a known role does nothing.
// An edge that would create a cycle is rejected.
func (h *hierarchy) addEdge(parentID, childID, role string) error {
	if parentID == childID {
		return fmt.Errorf("self-referential dependency not allowed: %s -> %s", parentID, childID)
	}
	parent, ok := h.vertices[parentID]
	if !ok {
		return fmt.Errorf("dependency source node not found: %s", parentID)
	}
	child, ok := h.vertices[childID]
	if !ok {
		return fmt.Errorf("dependency target node not found: %s", childID)
	}

	if roles, linked := parent.roles[childID]; linked {
		if !slices.Contains(roles, role) {
			parent.roles[childID] = append(roles, role)
		}
		return nil
	}
	if h.reaches(child, parent) {
		return fmt.Errorf("dependency %s -> %s would create a cycle", parentID, childID)
	}

	parent.children = append(parent.children, child)
	parent.roles[childID] = []string{role}
	child.parents = append(child.parents, parent)
	return nil
}

// reaches reports whether to is reachable from from following child edges.
func (h *hierarchy) reaches(from, to *vertex) bool {
	visited := make(map[string]bool)
	var visit func(v *vertex) bool
	visit = func(v *vertex) bool {
		if v == to {
			return true
		}
		if visited[v.id] {
			return false
		}
		visited[v.id] = true
		for _, c := range v.children {
			if visit(c) {
				return true
			}
		}
		return false
	}
	return visit(from)
}

// detectCycles checks the whole hierarchy for cycles, with the classic
// three-color depth-first search. addEdge keeps the hierarchy acyclic, so this
// only guards against inconsistencies.
func (h *hierarchy) detectCycles(order []string) error {
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(v *vertex) error
	visit = func(v *vertex) error {
		if permanent[v.id] {
			return nil
		}
		if temporary[v.id] {
			return fmt.Errorf("cycle detected involving node '%s'", v.id)
		}
		temporary[v.id] = true
		for _, c := range v.children {
			if err := visit(c); err != nil {
				return err
			}
		}
		delete(temporary, v.id)
		permanent[v.id] = true
		return nil
	}

	for _, id := range order {
		if err := visit(h.vertices[id]); err != nil {
			return err
		}
	}
	return nil
}

func (h *hierarchy) roles(parentID, childID string) []string {
	if v, ok := h.vertices[parentID]; ok {
		return slices.Clone(v.roles[childID])
	}
	return nil
}
