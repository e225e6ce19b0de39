package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/framegrid/internal/config"
)

// translate converts the decoded blocks of one file and merges them into m.
func translate(ctx context.Context, root *fileRoot, m *config.Model) error {
	for _, f := range root.Frames {
		m.Catalog.Frames = append(m.Catalog.Frames, f.Names...)
	}
	for _, s := range root.Static {
		st, err := translateStatic(ctx, s)
		if err != nil {
			return err
		}
		m.Catalog.Static = append(m.Catalog.Static, st)
	}
	for _, d := range root.Dynamic {
		m.Catalog.Dynamic = append(m.Catalog.Dynamic, &config.DynamicTransform{From: d.From, To: d.To, Producer: d.Producer})
	}
	for _, c := range root.Components {
		if _, exists := m.Components[c.Name]; exists {
			return fmt.Errorf("component %q declared twice", c.Name)
		}
		m.Components[c.Name] = translateComponent(c)
	}
	for _, t := range root.Tasks {
		task, err := translateTask(t)
		if err != nil {
			return err
		}
		m.Tasks = append(m.Tasks, task)
	}
	for _, c := range root.Connections {
		m.Connections = append(m.Connections, &config.Connection{From: c.From, To: c.To})
	}
	return nil
}

func translateStatic(ctx context.Context, s *staticBlock) (*config.StaticTransform, error) {
	st := &config.StaticTransform{From: s.From, To: s.To, Rotation: [4]float64{0, 0, 0, 1}}
	if isExprDefined(s.Translation) {
		v, err := decodeVector(ctx, s.Translation, 3)
		if err != nil {
			return nil, fmt.Errorf("static_transform %q %q: translation: %w", s.From, s.To, err)
		}
		copy(st.Translation[:], v)
	}
	if isExprDefined(s.Rotation) {
		v, err := decodeVector(ctx, s.Rotation, 4)
		if err != nil {
			return nil, fmt.Errorf("static_transform %q %q: rotation: %w", s.From, s.To, err)
		}
		copy(st.Rotation[:], v)
	}
	return st, nil
}

func translateComponent(c *componentBlock) *config.Component {
	out := &config.Component{Name: c.Name}
	add := func(ports []*portBlock, dir config.PortDirection) {
		for _, p := range ports {
			out.Ports = append(out.Ports, &config.Port{
				Name:      p.Name,
				Direction: dir,
				Frame:     p.Frame,
				From:      p.From,
				To:        p.To,
			})
		}
	}
	add(c.Inputs, config.Input)
	add(c.Outputs, config.Output)
	for _, n := range c.Needs {
		out.Needs = append(out.Needs, &config.Need{From: n.From, To: n.To})
	}
	return out
}

func translateTask(t *taskBlock) (*config.Task, error) {
	task := &config.Task{
		Name:      t.Name,
		Component: t.Component,
		Children:  t.Children,
	}
	if isExprDefined(t.Frames) {
		frames, err := decodeStringMap(t.Frames)
		if err != nil {
			return nil, fmt.Errorf("task %q: frames: %w", t.Name, err)
		}
		task.Frames = frames
	}
	for _, p := range t.Producers {
		task.Producers = append(task.Producers, &config.ProducerChoice{From: p.From, To: p.To, Producer: p.Producer})
	}
	if d := t.Device; d != nil {
		task.Device = &config.Device{Name: d.Name, Port: d.Port, Frame: d.Frame, From: d.From, To: d.To}
	}
	return task, nil
}
