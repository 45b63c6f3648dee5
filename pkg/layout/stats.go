package layout

import (
	"cmp"
	"slices"
)

// Stats describes a finished layout.
type Stats struct {
	Vertices      int `json:"vertices" yaml:"vertices" bson:"vertices"`
	Links         int `json:"links" yaml:"links" bson:"links"`
	Layers        int `json:"layers" yaml:"layers" bson:"layers"`
	Dummies       int `json:"dummies" yaml:"dummies" bson:"dummies"`
	ReversedLinks int `json:"reversed_links" yaml:"reversed_links" bson:"reversed_links"`
	SelfLoops     int `json:"self_loops" yaml:"self_loops" bson:"self_loops"`

	// Crossings is the number of pairwise crossings between edges of
	// adjacent layers, measured on the final attachment x positions.
	Crossings int `json:"crossings" yaml:"crossings" bson:"crossings"`

	// Width and Height are the extent of the normalized drawing.
	Width  int `json:"width" yaml:"width" bson:"width"`
	Height int `json:"height" yaml:"height" bson:"height"`
}

func (s *state) stats(d *drawing) Stats {
	st := Stats{
		Vertices:  len(s.vertices),
		Links:     len(s.links),
		Layers:    s.layerCount,
		Dummies:   len(s.nodes) - s.realNodes,
		SelfLoops: len(s.selfLoops),
		Width:     d.width,
		Height:    d.height,
	}
	for _, r := range s.reversed {
		if r {
			st.ReversedLinks++
		}
	}
	for i := 0; i+1 < len(s.layers); i++ {
		st.Crossings += s.countLayerCrossings(s.layers[i])
	}
	return st
}

// countLayerCrossings counts crossings between the edges leaving upper.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if u1 < u2 and v1 > v2, so
// after sorting by upper x this is an inversion count over the lower x,
// computed with a Fenwick tree.
func (s *state) countLayerCrossings(upper []int) int {
	type span struct{ upper, lower int }
	var spans []span
	for _, id := range upper {
		for _, eid := range s.nodes[id].succs {
			e := s.edges[eid]
			spans = append(spans, span{s.source(e).x + e.relativeFrom, s.target(e).x + e.relativeTo})
		}
	}
	if len(spans) < 2 {
		return 0
	}
	slices.SortFunc(spans, func(a, b span) int {
		if c := cmp.Compare(a.upper, b.upper); c != 0 {
			return c
		}
		return cmp.Compare(a.lower, b.lower)
	})

	ranks := make([]int, 0, len(spans))
	for _, sp := range spans {
		ranks = append(ranks, sp.lower)
	}
	slices.Sort(ranks)
	ranks = slices.Compact(ranks)

	fenwick := make([]int, len(ranks)+1)
	crossings, total := 0, 0
	for _, sp := range spans {
		r, _ := slices.BinarySearch(ranks, sp.lower)
		lessOrEqual := 0
		for q := r + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for i := r + 1; i < len(fenwick); i += i & (-i) {
			fenwick[i]++
		}
	}
	return crossings
}
