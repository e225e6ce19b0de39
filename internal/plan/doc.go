// Package plan is the in-memory network the transformer core is run against.
//
// A Plan holds the component models, the task nodes instantiated from them,
// the dependency hierarchy between nodes, setup-ordering constraints and data
// connections. It implements transformer.Mutator, so producer nodes can be
// inserted while a build is in progress.
//
// The dependency hierarchy is kept acyclic: an edge that would close a cycle
// is rejected and leaves the hierarchy unchanged. Iteration order is stable
// everywhere (insertion order), so a build over the same configuration always
// visits nodes in the same order.
//
// A Plan is not safe for concurrent use. It belongs to one build.
package plan
