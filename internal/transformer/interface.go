package transformer

import (
	"iter"

	"github.com/specialistvlad/framegrid/internal/catalog"
)

// DynamicTransformationsPort is the input port through which a consumer
// receives the output of every producer wired to it.
const DynamicTransformationsPort = "dynamic_transformations"

// Node is a node of the host network as seen by the core.
type Node interface {
	// ID returns the node identifier, unique within the network.
	ID() string
	// Annotations returns the transformer description of the node's model,
	// or nil when the model takes no part in frame assignment.
	Annotations() *Annotations
	// State returns the frame/transform state attached to the node. It is
	// never nil.
	State() *State
}

// Endpoint is one end of a port connection.
type Endpoint struct {
	Node Node
	Port string
}

// Network is the read side of the host network.
type Network interface {
	// Nodes yields every node in a stable order.
	Nodes() iter.Seq[Node]
	// Children yields the nodes n depends on, in a stable order.
	Children(n Node) iter.Seq[Node]
	// Parents yields the nodes depending on n, in a stable order.
	Parents(n Node) iter.Seq[Node]
	// Roles returns the roles under which parent depends on child.
	Roles(parent, child Node) []string
	// Sources yields the output endpoints connected to the given input port.
	Sources(n Node, port string) iter.Seq[Endpoint]
}

// Policy describes how data flows along a connection.
type Policy struct {
	Type string
	Size int
}

// DefaultPolicy is the policy used for producer connections.
var DefaultPolicy = Policy{Type: "data"}

// Mutator is a Network that the core may extend with producer nodes.
type Mutator interface {
	Network
	// Instantiate adds a new node running the given producer.
	Instantiate(ref catalog.ProducerRef) (Node, error)
	// AddDependency makes parent depend on child under the given role.
	AddDependency(parent, child Node, role string) error
	// AddOrdering requires before to complete its setup before after starts.
	AddOrdering(before, after Node) error
	// Connect connects an output port to an input port.
	Connect(from Endpoint, to Endpoint, policy Policy) error
}
