// Package transformer defines the boundary between the frame/transform core
// and the host network it operates on.
//
// The host owns the nodes, their dependency hierarchy and their port
// connections. The core only sees them through the Node, Network and Mutator
// interfaces declared here. Everything the core records about a node lives
// in a State value attached to it by composition: the host creates one per
// node and hands it out through Node.State, and never has to know what is
// inside.
//
// Settings is the explicit context threaded through every stage: the
// transform catalog, the validation mode and the global enable toggle.
package transformer
