// Package pipeline runs the transformer stages of a network build in order:
//
//  1. propagate: assign global frames to every node alias.
//  2. resolve: find a chain for every transform a node needs, record its
//     static segments on the node and insert producers for its dynamic ones.
//     Producer insertion changes the network, so propagation and resolution
//     are re-run for the new nodes until a round inserts nothing.
//  3. validate: check every requirement ended up resolved. In strict mode a
//     failure aborts the build; in lenient mode the build completes but is
//     marked incomplete and cannot be deployed.
//  4. report: project the result for monitoring.
//
// A failing stage aborts the build. The network is then expected to be
// discarded together with the build.
package pipeline
