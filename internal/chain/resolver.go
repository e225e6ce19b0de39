package chain

import (
	"cmp"
	"iter"
	"slices"

	"github.com/specialistvlad/framegrid/internal/catalog"
	"github.com/specialistvlad/framegrid/internal/frame"
)

// DefaultMaxCandidates bounds the candidates listed in an AmbiguityError.
const DefaultMaxCandidates = 8

// Graph is the part of the catalog the resolver searches.
type Graph interface {
	Neighbors(f frame.Frame) iter.Seq[catalog.Edge]
}

// Resolver searches a Graph for transformation chains. It holds no state
// between calls.
type Resolver struct {
	graph         Graph
	maxCandidates int
}

// NewResolver creates a resolver over g.
func NewResolver(g Graph) *Resolver {
	return &Resolver{graph: g, maxCandidates: DefaultMaxCandidates}
}

// step is a BFS predecessor entry: the frame a segment leaves from.
type step struct {
	from frame.Frame
	seg  Segment
}

// Resolve returns the minimal chain realizing from => to. local lists the
// producers already available on the requesting node, keyed by the global
// transform they provide.
func (r *Resolver) Resolve(from, to frame.Frame, local map[frame.Transform]LocalProducer) (Chain, error) {
	query := frame.Transform{From: from, To: to}
	if query.IsIdentity() {
		return Chain{Transform: query}, nil
	}
	if lp, ok := local[query]; ok {
		return Chain{Transform: query, Segments: []Segment{localSegment(query, lp)}}, nil
	}

	localIndex := indexLocal(local)
	dist := map[frame.Frame]int{from: 0}
	preds := make(map[frame.Frame][]step)
	queue := []frame.Frame{from}
	targetDist := -1

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if targetDist >= 0 && dist[u] >= targetDist {
			break
		}
		for seg := range r.segmentsFrom(u, localIndex) {
			v := seg.Transform.To
			if v == u || v == from {
				continue
			}
			d, seen := dist[v]
			switch {
			case !seen:
				dist[v] = dist[u] + 1
				preds[v] = []step{{from: u, seg: seg}}
				queue = append(queue, v)
				if v == to {
					targetDist = dist[v]
				}
			case d == dist[u]+1:
				preds[v] = append(preds[v], step{from: u, seg: seg})
			}
		}
	}

	if targetDist < 0 {
		return Chain{}, &NoChainError{From: from, To: to}
	}

	candidates := r.collect(query, preds)
	if len(candidates) > 1 {
		return Chain{}, &AmbiguityError{From: from, To: to, Candidates: candidates}
	}
	return candidates[0], nil
}

// segmentsFrom yields the segments leaving u: local producers first, then the
// catalog edges whose endpoints are not already served locally.
func (r *Resolver) segmentsFrom(u frame.Frame, localIndex map[frame.Frame][]Segment) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		shadowed := make(map[frame.Frame]bool)
		for _, seg := range localIndex[u] {
			shadowed[seg.Transform.To] = true
			if !yield(seg) {
				return
			}
		}
		for e := range r.graph.Neighbors(u) {
			if shadowed[e.To] {
				continue
			}
			if !yield(edgeSegment(u, e)) {
				return
			}
		}
	}
}

// collect walks the predecessor DAG back from the target and returns up to
// maxCandidates+1 distinct minimal chains, enough to detect ambiguity and
// report a bounded candidate list.
func (r *Resolver) collect(query frame.Transform, preds map[frame.Frame][]step) []Chain {
	limit := r.maxCandidates + 1
	var out []Chain
	var walk func(v frame.Frame, suffix []Segment)
	walk = func(v frame.Frame, suffix []Segment) {
		if len(out) >= limit {
			return
		}
		if v == query.From {
			segs := make([]Segment, len(suffix))
			for i := range suffix {
				segs[i] = suffix[len(suffix)-1-i]
			}
			out = append(out, Chain{Transform: query, Segments: segs})
			return
		}
		for _, p := range preds[v] {
			walk(p.from, append(suffix, p.seg))
		}
	}
	walk(query.To, nil)
	if len(out) > r.maxCandidates {
		out = out[:r.maxCandidates]
	}
	return out
}

func indexLocal(local map[frame.Transform]LocalProducer) map[frame.Frame][]Segment {
	index := make(map[frame.Frame][]Segment)
	for t, lp := range local {
		if t.IsIdentity() {
			continue
		}
		index[t.From] = append(index[t.From], localSegment(t, lp))
	}
	for f := range index {
		slices.SortFunc(index[f], func(a, b Segment) int {
			return cmp.Compare(a.Transform.To, b.Transform.To)
		})
	}
	return index
}

func localSegment(t frame.Transform, lp LocalProducer) Segment {
	return Segment{Transform: t, Kind: Dynamic, Local: &lp}
}

func edgeSegment(from frame.Frame, e catalog.Edge) Segment {
	t := frame.Transform{From: from, To: e.To}
	if e.Static != nil {
		return Segment{Transform: t, Kind: Static, Static: e.Static, Reversed: e.Reversed}
	}
	return Segment{Transform: t, Kind: Dynamic, Producer: e.Dynamic}
}
