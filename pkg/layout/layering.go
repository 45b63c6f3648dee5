package layout

// assignLayers gives every node a layer index, layer 0 at the top.
//
// A downward longest-path wave from the sources fixes the levels of the
// sinks; an upward wave from the sinks then pulls every other node as close
// to its successors as the minimum layer difference allows. Levels are
// inverted afterwards so that edges point to higher layer indexes.
func (s *state) assignLayers() {
	step := s.cfg.MinLayerDifference

	var hull []int
	for _, n := range s.nodes {
		n.layer = -1
		if len(n.preds) == 0 {
			n.layer = 0
			hull = append(hull, n.id)
		}
	}
	for z := step; len(hull) > 0; z += step {
		var next []int
		for _, id := range hull {
			for _, eid := range s.nodes[id].succs {
				t := s.target(s.edges[eid])
				if t.layer == -1 && s.predsBelow(t, z) {
					t.layer = z
					next = append(next, t.id)
				}
			}
		}
		hull = next
	}
	s.invertLayers()

	hull = hull[:0]
	for _, n := range s.nodes {
		if len(n.succs) == 0 {
			hull = append(hull, n.id)
		} else {
			n.layer = -1
		}
	}
	for z := step; len(hull) > 0; z += step {
		var next []int
		for _, id := range hull {
			n := s.nodes[id]
			if n.layer >= z {
				next = append(next, id)
				continue
			}
			for _, eid := range n.preds {
				src := s.source(s.edges[eid])
				if src.layer == -1 && s.succsBelow(src, z) {
					src.layer = z
					next = append(next, src.id)
				}
			}
		}
		hull = next
	}
	s.invertLayers()
}

// predsBelow reports whether every predecessor of n already has a level
// lower than z.
func (s *state) predsBelow(n *node, z int) bool {
	for _, id := range n.preds {
		if l := s.source(s.edges[id]).layer; l == -1 || l >= z {
			return false
		}
	}
	return true
}

func (s *state) succsBelow(n *node, z int) bool {
	for _, id := range n.succs {
		if l := s.target(s.edges[id]).layer; l == -1 || l >= z {
			return false
		}
	}
	return true
}

// invertLayers maps level l to max-l and sets the layer count.
func (s *state) invertLayers() {
	top := 0
	for _, n := range s.nodes {
		top = max(top, n.layer)
	}
	for _, n := range s.nodes {
		n.layer = top - n.layer
	}
	s.layerCount = top + 1
	if len(s.nodes) == 0 {
		s.layerCount = 0
	}
}
