package layout

import (
	"cmp"
	"slices"
)

// assignX moves nodes horizontally towards the median of their neighbors.
// Sweeps alternate between the layers below the top (pulled by their
// predecessors) and all layers bottom-up (pulled by their successors).
// VIP edges win over the median, so VIP chains end up straight.
func (s *state) assignX() {
	packed := make([][]int, len(s.layers))
	downOrder := make([][]int, len(s.layers))
	upOrder := make([][]int, len(s.layers))
	for i, layer := range s.layers {
		packed[i] = make([]int, len(layer))
		for pos, id := range layer {
			packed[i][pos] = s.nodes[id].x
		}
		downOrder[i] = s.placementOrder(layer, true)
		upOrder[i] = s.placementOrder(layer, false)
	}

	sweepDown := func() {
		for i := 1; i < len(s.layers); i++ {
			row := newNodeRow(packed[i])
			for _, id := range downOrder[i] {
				n := s.nodes[id]
				row.place(n, s.medianFromPreds(n))
			}
		}
	}
	sweepUp := func() {
		for i := len(s.layers) - 1; i >= 0; i-- {
			row := newNodeRow(packed[i])
			for _, id := range upOrder[i] {
				n := s.nodes[id]
				row.place(n, s.medianFromSuccs(n))
			}
		}
	}

	for range s.cfg.SweepIterations {
		sweepDown()
		sweepUp()
	}
	sweepDown()
	sweepUp()
}

// placementOrder sorts a layer so that nodes with more VIP edges on the
// pulling side are placed first, then dummies, then nodes with fewer edges.
func (s *state) placementOrder(layer []int, down bool) []int {
	order := slices.Clone(layer)
	side := func(n *node) []int {
		if down {
			return n.preds
		}
		return n.succs
	}
	slices.SortStableFunc(order, func(a, b int) int {
		na, nb := s.nodes[a], s.nodes[b]
		if c := cmp.Compare(s.vipCount(side(nb)), s.vipCount(side(na))); c != 0 {
			return c
		}
		if na.dummy() != nb.dummy() {
			if na.dummy() {
				return -1
			}
			return 1
		}
		return cmp.Compare(len(side(na)), len(side(nb)))
	})
	return order
}

// medianFromPreds returns the x that aligns n with the median of its
// predecessors, considering VIP edges only when there are any.
func (s *state) medianFromPreds(n *node) int {
	if len(n.preds) == 0 {
		return n.x
	}
	onlyVIP := s.vipCount(n.preds) > 0
	var values []int
	for _, id := range n.preds {
		e := s.edges[id]
		if onlyVIP && !e.vip {
			continue
		}
		values = append(values, s.source(e).x+e.relativeFrom-e.relativeTo)
	}
	return median(values)
}

// medianFromSuccs returns the x that aligns n with the median of its
// successors. The first VIP successor decides alone.
func (s *state) medianFromSuccs(n *node) int {
	if len(n.succs) == 0 {
		return n.x
	}
	values := make([]int, 0, len(n.succs))
	for _, id := range n.succs {
		e := s.edges[id]
		x := s.target(e).x + e.relativeTo - e.relativeFrom
		if e.vip {
			return x
		}
		values = append(values, x)
	}
	return median(values)
}

func median(values []int) int {
	slices.Sort(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}
