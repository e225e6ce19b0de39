package plan

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/nodeid"
	"github.com/specialistvlad/framegrid/internal/transformer"
)

// Node is a node of the plan: a task declared in the configuration or a
// producer inserted during the build.
type Node struct {
	addr        nodeid.Address
	component   string
	annotations *transformer.Annotations
	state       *transformer.State
}

// ID returns the canonical string form of the node address.
func (n *Node) ID() string { return n.addr.String() }

// Component returns the name of the component model the node runs.
func (n *Node) Component() string { return n.component }

func (n *Node) Annotations() *transformer.Annotations { return n.annotations }

func (n *Node) State() *transformer.State { return n.state }

// IsProducer reports whether the node was inserted as a transform producer.
func (n *Node) IsProducer() bool {
	return n.addr.Kind == nodeid.KindProducer
}

// Connection is a data connection between two ports.
type Connection struct {
	From   transformer.Endpoint
	To     transformer.Endpoint
	Policy transformer.Policy
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.From.Node.ID(), c.From.Port, c.To.Node.ID(), c.To.Port)
}

// Ordering requires Before to complete its setup before After starts.
type Ordering struct {
	Before *Node
	After  *Node
}

// Plan is an in-memory network under construction.
type Plan struct {
	logger      *slog.Logger
	components  map[string]*transformer.Annotations
	nodes       map[string]*Node
	order       []*Node
	hierarchy   *hierarchy
	orderings   []Ordering
	connections []Connection
	instances   map[catalog.ProducerRef]int
}

var _ transformer.Mutator = (*Plan)(nil)

// New creates an empty plan. The context only carries the logger.
func New(ctx context.Context) *Plan {
	return &Plan{
		logger:     ctxlog.FromContext(ctx),
		components: make(map[string]*transformer.Annotations),
		nodes:      make(map[string]*Node),
		hierarchy:  newHierarchy(),
		instances:  make(map[catalog.ProducerRef]int),
	}
}

// DefineComponent registers a component model. Redefining a model replaces
// it for nodes created afterwards.
func (p *Plan) DefineComponent(name string, a *transformer.Annotations) {
	p.components[name] = a
}

// Component returns the model registered under name.
func (p *Plan) Component(name string) (*transformer.Annotations, bool) {
	a, ok := p.components[name]
	return a, ok
}

// AddTask creates a task node from a registered component model.
func (p *Plan) AddTask(name, component string) (*Node, error) {
	a, ok := p.components[component]
	if !ok {
		return nil, fmt.Errorf("task %s: unknown component %q", name, component)
	}
	addr := nodeid.Task(name)
	if _, exists := p.nodes[addr.String()]; exists {
		return nil, fmt.Errorf("task %s declared twice", name)
	}
	return p.add(addr, component, a), nil
}

func (p *Plan) add(addr nodeid.Address, component string, a *transformer.Annotations) *Node {
	n := &Node{
		addr:        addr,
		component:   component,
		annotations: a,
		state:       transformer.NewState(addr.String()),
	}
	p.nodes[n.ID()] = n
	p.order = append(p.order, n)
	p.hierarchy.addVertex(n.ID())
	return n
}

// Node returns the node with the given ID.
func (p *Plan) Node(id string) (*Node, bool) {
	n, ok := p.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (p *Plan) Len() int {
	return len(p.order)
}

// Nodes yields every node in insertion order.
func (p *Plan) Nodes() iter.Seq[transformer.Node] {
	return func(yield func(transformer.Node) bool) {
		for _, n := range p.order {
			if !yield(n) {
				return
			}
		}
	}
}

// Children yields the nodes n depends on.
func (p *Plan) Children(n transformer.Node) iter.Seq[transformer.Node] {
	return p.related(n, func(v *vertex) []*vertex { return v.children })
}

// Parents yields the nodes depending on n.
func (p *Plan) Parents(n transformer.Node) iter.Seq[transformer.Node] {
	return p.related(n, func(v *vertex) []*vertex { return v.parents })
}

func (p *Plan) related(n transformer.Node, edges func(*vertex) []*vertex) iter.Seq[transformer.Node] {
	return func(yield func(transformer.Node) bool) {
		v, ok := p.hierarchy.vertices[n.ID()]
		if !ok {
			return
		}
		for _, other := range edges(v) {
			if !yield(p.nodes[other.id]) {
				return
			}
		}
	}
}

// Roles returns the roles under which parent depends on child.
func (p *Plan) Roles(parent, child transformer.Node) []string {
	return p.hierarchy.roles(parent.ID(), child.ID())
}

// Sources yields the output endpoints connected to an input port of n.
func (p *Plan) Sources(n transformer.Node, port string) iter.Seq[transformer.Endpoint] {
	return func(yield func(transformer.Endpoint) bool) {
		for _, c := range p.connections {
			if c.To.Node.ID() == n.ID() && c.To.Port == port {
				if !yield(c.From) {
					return
				}
			}
		}
	}
}

// Connections returns every connection in insertion order.
func (p *Plan) Connections() []Connection {
	return slices.Clone(p.connections)
}

// Orderings returns every setup-ordering constraint in insertion order.
func (p *Plan) Orderings() []Ordering {
	return slices.Clone(p.orderings)
}

// Producers returns the producer nodes inserted so far.
func (p *Plan) Producers() []*Node {
	var out []*Node
	for _, n := range p.order {
		if n.IsProducer() {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks the hierarchy for cycles.
func (p *Plan) Validate() error {
	ids := make([]string, len(p.order))
	for i, n := range p.order {
		ids[i] = n.ID()
	}
	return p.hierarchy.detectCycles(ids)
}
