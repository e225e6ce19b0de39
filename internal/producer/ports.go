package producer

import (
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// FindPort returns the output transform port of n providing t. A port whose
// resolved endpoints equal t is returned at once. Otherwise the ports whose
// endpoints are equal or still unset are candidates, and there must be exactly
// one of them.
func FindPort(n transformer.Node, t frame.Transform) (transformer.Port, error) {
	sel := n.State().Selected
	var candidates []transformer.Port
	for port, lt := range n.Annotations().TransformPorts() {
		if port.Direction != transformer.Output {
			continue
		}
		from, okFrom := sel.Lookup(lt.From)
		to, okTo := sel.Lookup(lt.To)
		if okFrom && okTo && from == t.From && to == t.To {
			return port, nil
		}
		if (!okFrom || from == t.From) && (!okTo || to == t.To) {
			candidates = append(candidates, port)
		}
	}

	switch len(candidates) {
	case 0:
		return transformer.Port{}, &PortNotFoundError{Producer: n.ID(), Transform: t}
	case 1:
		return candidates[0], nil
	}
	names := make([]string, len(candidates))
	for i, p := range candidates {
		names[i] = p.Name
	}
	return transformer.Port{}, &PortAmbiguityError{Producer: n.ID(), Transform: t, Candidates: names}
}

// SelectPort fixes the aliases of a transform port of n to the endpoints of t.
func SelectPort(n transformer.Node, port transformer.Port, t frame.Transform) error {
	sel := n.State().Selected
	if err := sel.Select(port.Transform.From, t.From); err != nil {
		return err
	}
	return sel.Select(port.Transform.To, t.To)
}
