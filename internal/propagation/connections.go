package propagation

import (
	"fmt"

	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// propagateConnections copies frames from connected output ports to the
// input ports they feed, repeating until a round selects nothing new. It
// returns the number of rounds run.
func propagateConnections(net transformer.Network, order []transformer.Node) (int, error) {
	rounds := 0
	for {
		rounds++
		changed := false
		for _, n := range order {
			before := n.State().Selected.Len()
			if err := pullInputs(net, n); err != nil {
				return rounds, err
			}
			if n.State().Selected.Len() != before {
				changed = true
			}
		}
		if !changed {
			return rounds, nil
		}
	}
}

// pullInputs selects, for every annotated input port of n, the frames already
// known for the output ports connected to it.
func pullInputs(net transformer.Network, n transformer.Node) error {
	sel := n.State().Selected
	for port := range n.Annotations().Ports() {
		if port.Direction != transformer.Input || (!port.IsAnnotated() && !port.IsTransform()) {
			continue
		}
		for src := range net.Sources(n, port.Name) {
			srcPort, ok := src.Node.Annotations().Port(src.Port)
			if !ok {
				continue
			}
			srcSel := src.Node.State().Selected
			var err error
			switch {
			case port.IsAnnotated() && srcPort.IsAnnotated():
				err = pull(sel, port.Frame, srcSel, srcPort.Frame)
			case port.IsTransform() && srcPort.IsTransform():
				err = pull(sel, port.Transform.From, srcSel, srcPort.Transform.From)
				if err == nil {
					err = pull(sel, port.Transform.To, srcSel, srcPort.Transform.To)
				}
			}
			if err != nil {
				return fmt.Errorf("propagating frames along %s.%s -> %s.%s: %w",
					src.Node.ID(), src.Port, n.ID(), port.Name, err)
			}
		}
	}
	return nil
}

func pull(dst *frame.Selection, dstAlias frame.Alias, src *frame.Selection, srcAlias frame.Alias) error {
	f, ok := src.Lookup(srcAlias)
	if !ok {
		return nil
	}
	return dst.Select(dstAlias, f)
}
