// Package chain finds, for a requested transform, the minimal sequence of
// elementary transforms that realizes it.
//
// The search is breadth-first over the catalog graph, so the returned chain
// has the fewest hops. Producers already available on the requesting node
// (connected input ports, explicit producer choices) take part in the search
// and shadow catalog entries for the same pair; an exact local match is
// returned without searching at all.
//
// The resolver never picks between equally short candidates. When two or more
// minimal chains exist, including the case of several producers registered
// for one pair along the path, Resolve fails with an *AmbiguityError listing
// them, and the caller disambiguates by wiring.
package chain
