package propagation

import (
	"context"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// Engine runs frame propagation over a network.
type Engine struct {
	catalog *catalog.Catalog
}

// New creates an engine. Device bindings are checked against the frames
// declared in the settings' catalog, when there is one.
func New(settings transformer.Settings) *Engine {
	return &Engine{catalog: settings.Catalog}
}

// Run propagates frame selections through the whole network.
func (e *Engine) Run(ctx context.Context, net transformer.Network) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Propagation: Starting.")

	order, err := hierarchyOrder(net)
	if err != nil {
		return err
	}

	// Frames pulled in through a connection must still reach the node's
	// children, so both passes repeat until the connection pass learns
	// nothing new.
	for pass := 1; ; pass++ {
		for _, n := range order {
			if err := e.visit(net, n); err != nil {
				return err
			}
			logger.Debug("Propagation: Visited node.", "node_id", n.ID(), "selected", n.State().Selected.Len())
		}

		rounds, err := propagateConnections(net, order)
		if err != nil {
			return err
		}
		if rounds == 1 {
			logger.Debug("Propagation: Finished.", "nodes", len(order), "passes", pass)
			return nil
		}
	}
}

// visit runs the per-node steps: inherit, then explicit selections, then the
// device binding.
func (e *Engine) visit(net transformer.Network, n transformer.Node) error {
	state := n.State()
	for parent := range net.Parents(n) {
		if transformer.IsProducerEdge(net, parent, n) {
			continue
		}
		if err := state.Selected.Merge(parent.State().Selected); err != nil {
			return fmt.Errorf("inheriting frames from %s: %w", parent.ID(), err)
		}
		state.InheritProducers(parent.State())
	}
	if err := state.Selected.SelectAll(state.Explicit); err != nil {
		return fmt.Errorf("applying frame selections: %w", err)
	}
	if err := e.applyDevice(n); err != nil {
		return fmt.Errorf("applying device: %w", err)
	}
	return nil
}

// applyDevice selects the frames a device binding fixes on its port.
func (e *Engine) applyDevice(n transformer.Node) error {
	d := n.State().Device
	if d == nil {
		return nil
	}
	port, ok := n.Annotations().Port(d.Port)
	if !ok {
		return fmt.Errorf("device %s is bound to unknown port %q of %s", d.Name, d.Port, n.ID())
	}

	sel := n.State().Selected
	switch {
	case port.IsTransform():
		var from, to frame.Frame
		if d.Transform != nil {
			from, to = d.Transform.From, d.Transform.To
		}
		if err := e.checkFrame(n, port.Transform.From, from, frame.RoleFrom); err != nil {
			return err
		}
		if err := e.checkFrame(n, port.Transform.To, to, frame.RoleTo); err != nil {
			return err
		}
		if err := sel.Select(port.Transform.From, from); err != nil {
			return err
		}
		return sel.Select(port.Transform.To, to)
	case port.IsAnnotated():
		if err := e.checkFrame(n, port.Frame, d.Frame, frame.RoleReference); err != nil {
			return err
		}
		return sel.Select(port.Frame, d.Frame)
	default:
		return fmt.Errorf("device %s is bound to port %q of %s, which carries no frame", d.Name, d.Port, n.ID())
	}
}

func (e *Engine) checkFrame(n transformer.Node, alias frame.Alias, f frame.Frame, role string) error {
	if f == "" || (e.catalog != nil && !e.catalog.HasFrame(f)) {
		return &frame.InvalidConfigurationError{Node: n.ID(), Alias: alias, Frame: f, Role: role}
	}
	return nil
}
