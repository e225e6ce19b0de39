// Package propagation assigns global frames to the aliases of every node.
//
// Nodes are visited breadth-first over the dependency hierarchy, starting at
// the roots, and a node is only visited once all of its parents have been:
// each node first inherits the union of its parents' selections, then applies
// its own explicit selections, then its device binding. Once every node has
// been visited, frames flow along data connections from output ports to the
// input ports they feed until nothing changes. When that connection pass
// selects something new, the hierarchy pass runs again so the new frames reach
// the children of the node that learned them.
//
// Producers inserted for a consumer are hierarchy children of it, but they
// inherit neither its selections nor its producer choices. Their frames come
// from the output port they were wired through.
//
// Any conflict aborts the run. Running the engine again over the same network
// is safe: every selection it makes is already present and is a no-op.
package propagation
