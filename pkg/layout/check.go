package layout

import "fmt"

// Invariant checks run after each phase when Config.CheckInvariants is set.

func (s *state) checkAcyclic() error {
	indegree := make([]int, len(s.nodes))
	for _, n := range s.nodes {
		indegree[n.id] = len(n.preds)
	}
	var queue []int
	for _, n := range s.nodes {
		if indegree[n.id] == 0 {
			queue = append(queue, n.id)
		}
	}
	seen := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		seen++
		for _, eid := range s.nodes[id].succs {
			t := s.edges[eid].to
			if indegree[t]--; indegree[t] == 0 {
				queue = append(queue, t)
			}
		}
	}
	if seen != len(s.nodes) {
		return fmt.Errorf("%w: %d nodes remain on cycles", ErrInvariant, len(s.nodes)-seen)
	}
	return s.checkAdjacency(false)
}

func (s *state) checkLayering() error {
	for _, n := range s.nodes {
		if n.layer < 0 || n.layer >= s.layerCount {
			return fmt.Errorf("%w: node %d has layer %d of %d", ErrInvariant, n.id, n.layer, s.layerCount)
		}
		for _, eid := range n.succs {
			t := s.target(s.edges[eid])
			if t.layer-n.layer < s.cfg.MinLayerDifference {
				return fmt.Errorf("%w: edge %d spans layers %d to %d", ErrInvariant, eid, n.layer, t.layer)
			}
		}
	}
	return nil
}

func (s *state) checkDummies() error {
	if err := s.checkAdjacency(true); err != nil {
		return err
	}
	for _, n := range s.nodes {
		for _, eid := range n.succs {
			if t := s.target(s.edges[eid]); t.layer != n.layer+1 {
				return fmt.Errorf("%w: edge %d spans layers %d to %d", ErrInvariant, eid, n.layer, t.layer)
			}
		}
	}
	return nil
}

// checkAdjacency verifies that every edge is listed exactly in its
// endpoints' adjacency lists.
func (s *state) checkAdjacency(strict bool) error {
	count := make(map[int]int)
	for _, n := range s.nodes {
		for _, eid := range n.succs {
			if s.edges[eid].from != n.id {
				return fmt.Errorf("%w: edge %d listed as successor of node %d", ErrInvariant, eid, n.id)
			}
			count[eid]++
		}
		for _, eid := range n.preds {
			if s.edges[eid].to != n.id {
				return fmt.Errorf("%w: edge %d listed as predecessor of node %d", ErrInvariant, eid, n.id)
			}
			count[eid]++
		}
	}
	if !strict {
		return nil
	}
	for eid, c := range count {
		if c != 2 {
			return fmt.Errorf("%w: edge %d referenced %d times", ErrInvariant, eid, c)
		}
	}
	return nil
}

func (s *state) checkOrdering() error {
	seen := make([]bool, len(s.nodes))
	for i, layer := range s.layers {
		for pos, id := range layer {
			n := s.nodes[id]
			if seen[id] {
				return fmt.Errorf("%w: node %d placed twice", ErrInvariant, id)
			}
			seen[id] = true
			if n.layer != i || n.pos != pos {
				return fmt.Errorf("%w: node %d at layer %d pos %d, recorded %d/%d", ErrInvariant, id, i, pos, n.layer, n.pos)
			}
		}
	}
	for id, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: node %d missing from layers", ErrInvariant, id)
		}
	}
	return nil
}

func (s *state) checkSpacing() error {
	for i, layer := range s.layers {
		for pos := 1; pos < len(layer); pos++ {
			prev, n := s.nodes[layer[pos-1]], s.nodes[layer[pos]]
			if n.x < prev.x+prev.width+s.cfg.XOffset {
				return fmt.Errorf("%w: layer %d nodes %d and %d overlap", ErrInvariant, i, prev.id, n.id)
			}
		}
	}
	return nil
}

func (s *state) checkBands() error {
	for i := 1; i < len(s.layers); i++ {
		for _, id := range s.layers[i] {
			n := s.nodes[id]
			for _, eid := range n.preds {
				if p := s.source(s.edges[eid]); p.y+p.height > n.y {
					return fmt.Errorf("%w: node %d overlaps its predecessor %d", ErrInvariant, n.id, p.id)
				}
			}
		}
	}
	return nil
}

func (d *drawing) checkRoutes() error {
	for i, r := range d.routes {
		if r.Empty() {
			return fmt.Errorf("%w: link %d has no route", ErrInvariant, i)
		}
	}
	return nil
}
