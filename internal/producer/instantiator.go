// Package producer wires the producers of dynamic transforms into the
// network.
package producer

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/chain"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// Instantiator inserts producer nodes for the dynamic segments of resolved
// chains. It keeps one producer node per producer reference for the whole
// build, so consumers needing the same producer share it.
type Instantiator struct {
	net   transformer.Mutator
	cache map[catalog.ProducerRef]transformer.Node
}

// New creates an instantiator for one build over net.
func New(net transformer.Mutator) *Instantiator {
	return &Instantiator{net: net, cache: make(map[catalog.ProducerRef]transformer.Node)}
}

// Created returns the number of producer nodes inserted so far.
func (in *Instantiator) Created() int {
	return len(in.cache)
}

// Instantiate wires the producers of the given dynamic segments into
// consumer. Segments served by an input port of the consumer need nothing and
// are skipped. It returns the number of producer nodes it created.
func (in *Instantiator) Instantiate(ctx context.Context, consumer transformer.Node, segments []chain.Segment) (int, error) {
	logger := ctxlog.FromContext(ctx)

	type group struct {
		ref        catalog.ProducerRef
		transforms []frame.Transform
	}
	var groups []*group
	byRef := make(map[catalog.ProducerRef]*group)
	for _, seg := range segments {
		ref := seg.ProducerRef()
		if ref == "" {
			continue
		}
		g, ok := byRef[ref]
		if !ok {
			g = &group{ref: ref}
			byRef[ref] = g
			groups = append(groups, g)
		}
		if !slices.Contains(g.transforms, seg.Transform) {
			g.transforms = append(g.transforms, seg.Transform)
		}
	}

	created := 0
	for _, g := range groups {
		node, isNew, err := in.producerNode(g.ref)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
		if err := in.net.AddOrdering(node, consumer); err != nil {
			return created, fmt.Errorf("ordering %s before %s: %w", node.ID(), consumer.ID(), err)
		}
		for _, t := range g.transforms {
			if err := in.wire(consumer, node, t); err != nil {
				return created, err
			}
			logger.Debug("Producer: Wired transform.",
				"node_id", consumer.ID(), "producer", node.ID(), "from", t.From, "to", t.To)
		}
	}
	return created, nil
}

func (in *Instantiator) producerNode(ref catalog.ProducerRef) (transformer.Node, bool, error) {
	if n, ok := in.cache[ref]; ok {
		return n, false, nil
	}
	n, err := in.net.Instantiate(ref)
	if err != nil {
		return nil, false, err
	}
	in.cache[ref] = n
	return n, true, nil
}

func (in *Instantiator) wire(consumer, node transformer.Node, t frame.Transform) error {
	if err := in.net.AddDependency(consumer, node, transformer.ProducerRole(t)); err != nil {
		return fmt.Errorf("adding %s to %s: %w", node.ID(), consumer.ID(), err)
	}
	port, err := FindPort(node, t)
	if err != nil {
		return err
	}
	if err := SelectPort(node, port, t); err != nil {
		return err
	}
	from := transformer.Endpoint{Node: node, Port: port.Name}
	to := transformer.Endpoint{Node: consumer, Port: transformer.DynamicTransformationsPort}
	if err := in.net.Connect(from, to, transformer.DefaultPolicy); err != nil {
		return fmt.Errorf("connecting %s.%s to %s: %w", node.ID(), port.Name, consumer.ID(), err)
	}
	return nil
}
