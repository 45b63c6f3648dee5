package layout

import (
	"cmp"
	"slices"
)

// insertDummies replaces every edge spanning more than one layer by a chain
// of dummy nodes, one per intermediate layer. Only the real nodes present
// before this phase are visited.
func (s *state) insertDummies() {
	for i := range s.realNodes {
		n := s.nodes[i]
		if s.cfg.Combine == CombineSameOutputs {
			s.combineOutputs(n)
			continue
		}
		for _, id := range slices.Clone(n.succs) {
			s.chainEdge(s.edges[id])
		}
	}
}

// chainEdge splits e until it connects adjacent layers. The link stays on
// the edge leaving the original source.
func (s *state) chainEdge(e *edge) {
	last := e
	for layer := s.source(e).layer + 1; layer < s.target(last).layer; layer++ {
		last = s.addBetween(last, layer)
	}
}

// addBetween inserts a dummy on layer into e. e now ends at the dummy; the
// returned edge runs from the dummy to the old target.
func (s *state) addBetween(e *edge, layer int) *edge {
	d := s.addDummy(layer)
	t := s.target(e)

	next := &edge{
		id:           len(s.edges),
		from:         d.id,
		to:           t.id,
		relativeFrom: d.width / 2,
		relativeTo:   e.relativeTo,
		link:         noLink,
		vip:          e.vip,
	}
	s.edges = append(s.edges, next)
	d.succs = append(d.succs, next.id)
	if i := slices.Index(t.preds, e.id); i >= 0 {
		t.preds[i] = next.id
	}

	e.to = d.id
	e.relativeTo = d.width / 2
	d.preds = append(d.preds, e.id)
	return next
}

// combineOutputs handles the long edges of n under CombineSameOutputs.
// Edges longer than MaxLayerLength are cut into a top and a bottom stub
// sharing dummies per port; the others are grouped by source port and share
// one chain down to the deepest target of the group.
func (s *state) combineOutputs(n *node) {
	groups := make(map[int][]int)
	tops := make(map[int]int)
	bottoms := make(map[int]map[int]int)

	for _, id := range slices.Clone(n.succs) {
		e := s.edges[id]
		span := s.target(e).layer - n.layer
		if span == 1 {
			continue
		}
		if s.cfg.MaxLayerLength >= 0 && span > s.cfg.MaxLayerLength {
			s.splitEdge(n, e, tops, bottoms)
			continue
		}
		groups[e.relativeFrom] = append(groups[e.relativeFrom], id)
	}

	for _, id := range slices.Clone(n.succs) {
		port := s.edges[id].relativeFrom
		group, ok := groups[port]
		if !ok {
			continue
		}
		delete(groups, port)
		if len(group) == 1 {
			s.chainEdge(s.edges[group[0]])
			continue
		}
		s.shareChain(n, port, group)
	}
}

func (s *state) splitEdge(n *node, e *edge, tops map[int]int, bottoms map[int]map[int]int) {
	t := s.target(e)
	n.succs = removeID(n.succs, e.id)
	t.preds = removeID(t.preds, e.id)

	top, ok := tops[e.relativeFrom]
	if !ok {
		top = s.addDummy(n.layer + 1).id
		tops[e.relativeFrom] = top
		bottoms[e.relativeFrom] = make(map[int]int)
	}
	bottom, ok := bottoms[e.relativeFrom][t.layer]
	if !ok {
		bottom = s.addDummy(t.layer - 1).id
		bottoms[e.relativeFrom][t.layer] = bottom
	}

	upper := s.addEdge(n.id, top, e.relativeFrom, s.nodes[top].width/2)
	lower := s.addEdge(bottom, t.id, s.nodes[bottom].width/2, e.relativeTo)
	upper.link, upper.vip = e.link, e.vip
	lower.link, lower.vip = e.link, e.vip
	s.bottomEdges[upper.id] = lower.id
}

func (s *state) shareChain(n *node, port int, group []int) {
	slices.SortStableFunc(group, func(a, b int) int {
		return cmp.Compare(s.target(s.edges[a]).layer, s.target(s.edges[b]).layer)
	})
	deepest := s.target(s.edges[group[len(group)-1]]).layer
	vip := false
	for _, id := range group {
		vip = vip || s.edges[id].vip
	}

	chain := make([]int, 0, deepest-n.layer-1)
	prev, rel := n.id, port
	for layer := n.layer + 1; layer < deepest; layer++ {
		d := s.addDummy(layer)
		s.addEdge(prev, d.id, rel, d.width/2).vip = vip
		chain = append(chain, d.id)
		prev, rel = d.id, d.width/2
	}

	for _, id := range group {
		e := s.edges[id]
		anchor := s.nodes[chain[s.target(e).layer-n.layer-2]]
		n.succs = removeID(n.succs, id)
		e.from = anchor.id
		e.relativeFrom = anchor.width / 2
		anchor.succs = append(anchor.succs, id)
	}
}
