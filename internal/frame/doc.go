// Package frame defines the vocabulary shared by every stage of frame
// assignment: global frame names, node-local aliases, directed transforms and
// the per-node Selection store that maps one onto the other.
//
// A Selection is write-once per value. Selecting an alias that is unset records
// it, selecting the same frame again is a no-op, and selecting a different frame
// fails with a *ConflictError. Because of this, merging several selections into
// one store yields the same mapping whatever the order, and a conflict is
// reported whichever side is applied first.
package frame
