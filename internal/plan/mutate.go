package plan

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/nodeid"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// Instantiate adds a node running the producer component named by ref.
// Every call creates a new node; callers deduplicate.
func (p *Plan) Instantiate(ref catalog.ProducerRef) (transformer.Node, error) {
	a, ok := p.components[string(ref)]
	if !ok {
		return nil, fmt.Errorf("cannot instantiate producer %s: unknown component", ref)
	}
	index := p.instances[ref]
	p.instances[ref] = index + 1
	n := p.add(nodeid.Producer(string(ref), index), string(ref), a)
	p.logger.Debug("Plan: Instantiated producer.", "node_id", n.ID(), "producer", ref)
	return n, nil
}

// AddDependency makes parent depend on child under role.
func (p *Plan) AddDependency(parent, child transformer.Node, role string) error {
	if err := p.hierarchy.addEdge(parent.ID(), child.ID(), role); err != nil {
		return err
	}
	p.logger.Debug("Plan: Added dependency.", "parent", parent.ID(), "child", child.ID(), "role", role)
	return nil
}

// AddOrdering requires before to complete its setup before after starts.
func (p *Plan) AddOrdering(before, after transformer.Node) error {
	b, err := p.lookup(before)
	if err != nil {
		return err
	}
	a, err := p.lookup(after)
	if err != nil {
		return err
	}
	if b == a {
		return fmt.Errorf("node %s cannot be ordered after itself", a.ID())
	}
	o := Ordering{Before: b, After: a}
	if !slices.Contains(p.orderings, o) {
		p.orderings = append(p.orderings, o)
	}
	return nil
}

// Connect connects an output port to an input port. Connecting the same
// ports twice does nothing.
func (p *Plan) Connect(from, to transformer.Endpoint, policy transformer.Policy) error {
	src, err := p.lookup(from.Node)
	if err != nil {
		return err
	}
	dst, err := p.lookup(to.Node)
	if err != nil {
		return err
	}
	if err := checkPort(src, from.Port, transformer.Output); err != nil {
		return err
	}
	if err := checkPort(dst, to.Port, transformer.Input); err != nil {
		return err
	}

	c := Connection{
		From:   transformer.Endpoint{Node: src, Port: from.Port},
		To:     transformer.Endpoint{Node: dst, Port: to.Port},
		Policy: policy,
	}
	for _, existing := range p.connections {
		if existing.From == c.From && existing.To == c.To {
			return nil
		}
	}
	p.connections = append(p.connections, c)
	p.logger.Debug("Plan: Connected ports.", "connection", c.String())
	return nil
}

func (p *Plan) lookup(n transformer.Node) (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("nil node")
	}
	found, ok := p.nodes[n.ID()]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", n.ID())
	}
	return found, nil
}

// checkPort verifies that n has a port with the given name and direction. The
// aggregation input every consumer exposes needs no declaration.
func checkPort(n *Node, name string, dir transformer.Direction) error {
	if dir == transformer.Input && name == transformer.DynamicTransformationsPort {
		return nil
	}
	port, ok := n.annotations.Port(name)
	if !ok {
		return fmt.Errorf("node %s has no port %q", n.ID(), name)
	}
	if port.Direction != dir {
		return fmt.Errorf("port %s.%s is an %s, expected an %s", n.ID(), name, port.Direction, dir)
	}
	return nil
}
