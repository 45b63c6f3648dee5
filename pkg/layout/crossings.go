package layout

import (
	"cmp"
	"slices"
)

// reduceCrossings builds the initial layer orders with a breadth-first walk
// and improves them with weighted barycenter sweeps.
func (s *state) reduceCrossings() {
	s.layers = make([][]int, s.layerCount)
	seen := make([]bool, len(s.nodes))
	for _, n := range s.nodes {
		if n.layer == 0 || len(n.preds) == 0 {
			s.layers[n.layer] = append(s.layers[n.layer], n.id)
			seen[n.id] = true
		}
	}
	for i := 0; i+1 < s.layerCount; i++ {
		for _, id := range s.layers[i] {
			for _, eid := range s.nodes[id].succs {
				t := s.target(s.edges[eid])
				if !seen[t.id] {
					seen[t.id] = true
					s.layers[t.layer] = append(s.layers[t.layer], t.id)
				}
			}
		}
	}

	for i := range s.layers {
		s.packLayer(i)
	}
	for range s.cfg.CrossingIterations {
		s.sweepCrossings(true)
		s.sweepCrossings(false)
	}
	s.sweepCrossings(true)
}

// sweepCrossings reorders each layer by the weighted mean x of its neighbors
// on the adjacent layer, top to bottom when down is set.
func (s *state) sweepCrossings(down bool) {
	order := make([]int, 0, s.layerCount)
	if down {
		for i := 1; i < s.layerCount; i++ {
			order = append(order, i)
		}
	} else {
		for i := s.layerCount - 2; i >= 0; i-- {
			order = append(order, i)
		}
	}

	for _, i := range order {
		layer := s.layers[i]
		for _, id := range layer {
			n := s.nodes[id]
			n.crossingNumber = s.barycenter(n, down)
		}
		s.inheritCrossingNumbers(layer, down)
		slices.SortStableFunc(layer, func(a, b int) int {
			return cmp.Compare(s.nodes[a].crossingNumber, s.nodes[b].crossingNumber)
		})
		s.packLayer(i)
	}
}

// barycenterScale keeps fractional means apart when sorting a layer.
const barycenterScale = 16

// barycenter is the weighted mean attachment x of n's neighbors on the swept
// side, in units of 1/barycenterScale.
func (s *state) barycenter(n *node, down bool) int {
	ids := n.succs
	if down {
		ids = n.preds
	}
	sum, weight := 0, 0
	for _, id := range ids {
		e := s.edges[id]
		w := 1
		if e.vip {
			w = s.cfg.VIPBonus
		}
		if down {
			sum += (s.source(e).x + e.relativeFrom) * w
		} else {
			sum += (s.target(e).x + e.relativeTo) * w
		}
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum * barycenterScale / weight
}

// inheritCrossingNumbers gives nodes without neighbors on the swept side the
// mean crossing number of their layer neighbors, left to right.
func (s *state) inheritCrossingNumbers(layer []int, down bool) {
	for i, id := range layer {
		n := s.nodes[id]
		if (down && len(n.preds) > 0) || (!down && len(n.succs) > 0) {
			continue
		}
		hasPrev, hasNext := i > 0, i+1 < len(layer)
		switch {
		case hasPrev && hasNext:
			n.crossingNumber = (s.nodes[layer[i-1]].crossingNumber + s.nodes[layer[i+1]].crossingNumber) / 2
		case hasPrev:
			n.crossingNumber = s.nodes[layer[i-1]].crossingNumber
		case hasNext:
			n.crossingNumber = s.nodes[layer[i+1]].crossingNumber
		}
	}
}

// packLayer places the nodes of layer i side by side starting at x=0 and
// records their positions.
func (s *state) packLayer(i int) {
	x := 0
	for pos, id := range s.layers[i] {
		n := s.nodes[id]
		n.pos = pos
		n.x = x
		x += n.width + s.cfg.XOffset
	}
}
