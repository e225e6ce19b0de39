package propagation

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/transformer"
)

// hierarchyOrder returns the nodes breadth-first from the roots, each node
// after all of its parents.
func hierarchyOrder(net transformer.Network) ([]transformer.Node, error) {
	pending := make(map[string]int)
	var queue, all []transformer.Node
	for n := range net.Nodes() {
		all = append(all, n)
		count := 0
		for range net.Parents(n) {
			count++
		}
		pending[n.ID()] = count
		if count == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]transformer.Node, 0, len(all))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for child := range net.Children(n) {
			pending[child.ID()]--
			if pending[child.ID()] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(all) {
		for _, n := range all {
			if pending[n.ID()] > 0 {
				return nil, fmt.Errorf("dependency cycle involving node '%s'", n.ID())
			}
		}
	}
	return order, nil
}
