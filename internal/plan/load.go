package plan

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/config"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/frame"
	"github.com/specialistvlad/framegrid/internal/nodeid"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// FromConfig builds a plan from the network part of a configuration model:
// component models, tasks, their hierarchy and their connections.
func FromConfig(ctx context.Context, m *config.Model) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Plan: Building from configuration.", "components", len(m.Components), "tasks", len(m.Tasks))

	p := New(ctx)
	for _, name := range slices.Sorted(maps.Keys(m.Components)) {
		a, err := annotationsFromConfig(m.Components[name])
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", name, err)
		}
		p.DefineComponent(name, a)
	}

	for _, t := range m.Tasks {
		n, err := p.AddTask(t.Name, t.Component)
		if err != nil {
			return nil, err
		}
		applyTaskConfig(n.State(), t)
	}

	for _, t := range m.Tasks {
		parent := p.nodes[nodeid.Task(t.Name).String()]
		for _, childName := range t.Children {
			child, ok := p.nodes[nodeid.Task(childName).String()]
			if !ok {
				return nil, fmt.Errorf("task %s: unknown child task %q", t.Name, childName)
			}
			if err := p.AddDependency(parent, child, childName); err != nil {
				return nil, fmt.Errorf("task %s: %w", t.Name, err)
			}
		}
	}

	for _, c := range m.Connections {
		from, err := p.endpoint(c.From)
		if err != nil {
			return nil, fmt.Errorf("connection %s -> %s: %w", c.From, c.To, err)
		}
		to, err := p.endpoint(c.To)
		if err != nil {
			return nil, fmt.Errorf("connection %s -> %s: %w", c.From, c.To, err)
		}
		if err := p.Connect(from, to, transformer.DefaultPolicy); err != nil {
			return nil, fmt.Errorf("connection %s -> %s: %w", c.From, c.To, err)
		}
	}

	logger.Debug("Plan: Built from configuration.", "nodes", p.Len(), "connections", len(p.connections))
	return p, nil
}

func annotationsFromConfig(c *config.Component) (*transformer.Annotations, error) {
	ports := make([]transformer.Port, 0, len(c.Ports))
	seen := make(map[string]bool)
	for _, cp := range c.Ports {
		if seen[cp.Name] {
			return nil, fmt.Errorf("port %q declared twice", cp.Name)
		}
		seen[cp.Name] = true

		p := transformer.Port{Name: cp.Name, Direction: transformer.Input}
		if cp.Direction == config.Output {
			p.Direction = transformer.Output
		}
		switch {
		case cp.IsTransform():
			if cp.From == "" || cp.To == "" {
				return nil, fmt.Errorf("transform port %q needs both 'from' and 'to'", cp.Name)
			}
			if cp.Frame != "" {
				return nil, fmt.Errorf("port %q cannot carry both a frame and a transform", cp.Name)
			}
			p.Transform = &frame.LocalTransform{From: frame.Alias(cp.From), To: frame.Alias(cp.To)}
		default:
			p.Frame = frame.Alias(cp.Frame)
		}
		ports = append(ports, p)
	}

	needs := make([]frame.LocalTransform, 0, len(c.Needs))
	for _, n := range c.Needs {
		needs = append(needs, frame.LocalTransform{From: frame.Alias(n.From), To: frame.Alias(n.To)})
	}
	return transformer.NewAnnotations(ports, needs), nil
}

func applyTaskConfig(s *transformer.State, t *config.Task) {
	for alias, f := range t.Frames {
		s.Explicit[frame.Alias(alias)] = frame.Frame(f)
	}
	for _, pc := range t.Producers {
		s.Producers[frame.Transform{From: frame.Frame(pc.From), To: frame.Frame(pc.To)}] = catalog.ProducerRef(pc.Producer)
	}
	if d := t.Device; d != nil {
		dev := &transformer.Device{Name: d.Name, Port: d.Port, Frame: frame.Frame(d.Frame)}
		if d.From != "" || d.To != "" {
			dev.Transform = &frame.Transform{From: frame.Frame(d.From), To: frame.Frame(d.To)}
		}
		s.Device = dev
	}
}

// endpoint resolves a "task.port" reference.
func (p *Plan) endpoint(ref string) (transformer.Endpoint, error) {
	task, port, ok := strings.Cut(ref, ".")
	if !ok || task == "" || port == "" {
		return transformer.Endpoint{}, fmt.Errorf("invalid port reference %q, expected task.port", ref)
	}
	n, ok := p.nodes[nodeid.Task(task).String()]
	if !ok {
		return transformer.Endpoint{}, fmt.Errorf("unknown task %q", task)
	}
	return transformer.Endpoint{Node: n, Port: port}, nil
}
