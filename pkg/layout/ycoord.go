package layout

import "math"

// assignY stacks the layers top to bottom. Real nodes are centered on the
// visible part of their layer band, dummies span the whole band. A layer
// whose edges run far sideways gets extra room below it.
func (s *state) assignY() {
	y := 0
	for _, layer := range s.layers {
		maxHeight, baseLine, bottomLine := 0, 0, 0
		for _, id := range layer {
			n := s.nodes[id]
			maxHeight = max(maxHeight, visibleHeight(n))
			baseLine = max(baseLine, n.yOffset)
			bottomLine = max(bottomLine, n.bottomYOffset)
		}

		skew := 0
		for _, id := range layer {
			n := s.nodes[id]
			if n.dummy() {
				n.y = y
				n.height = maxHeight + baseLine + bottomLine
			} else {
				n.y = y + baseLine + (maxHeight-visibleHeight(n))/2 - n.yOffset
			}
			for _, eid := range n.succs {
				d := n.x - s.target(s.edges[eid]).x
				skew = max(skew, d, -d)
			}
		}

		y += maxHeight + baseLine + bottomLine + s.cfg.LayerOffset + int(math.Sqrt(float64(skew))*1.5)
	}
}

func visibleHeight(n *node) int {
	return n.height - n.yOffset - n.bottomYOffset
}
