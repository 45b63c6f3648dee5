package layout

import "slices"

// walk is the part of a route found by following one link-bearing edge
// through its dummy chain, in layered (top to bottom) order. upper and lower
// are the real nodes at its ends, or noVertex at the free end of a split
// chain.
type walk struct {
	points Segment
	upper  int
	lower  int
}

// walkLink follows e away from its real endpoint: down through dummies when
// e leaves a real node, up otherwise.
func (s *state) walkLink(e *edge, link int) walk {
	if s.source(e).dummy() {
		return s.walkUp(e, link)
	}
	return s.walkDown(e, link)
}

func (s *state) walkDown(e *edge, link int) walk {
	from := s.source(e)
	w := walk{upper: from.id, lower: noVertex}
	pts := s.exitPoints(nil, from, e.relativeFrom, link)

	cur, chained := e, false
	for {
		t := s.target(cur)
		if !t.dummy() {
			pts = s.entryPoints(pts, t, cur.relativeTo, link)
			w.lower = t.id
			break
		}
		cx := t.x + t.width/2
		pts = appendDummy(pts, chained, Point{cx, t.y}, Point{cx, t.y + t.height})
		chained = true
		if len(t.succs) != 1 {
			break
		}
		cur = s.edges[t.succs[0]]
	}
	w.points = pts
	return w
}

// walkUp collects points bottom to top and flips them at the end.
func (s *state) walkUp(e *edge, link int) walk {
	to := s.target(e)
	w := walk{upper: noVertex, lower: to.id}
	pts := s.entryPoints(nil, to, e.relativeTo, link)
	slices.Reverse(pts)

	cur, chained := e, false
	for {
		f := s.source(cur)
		if !f.dummy() {
			exit := s.exitPoints(nil, f, cur.relativeFrom, link)
			slices.Reverse(exit)
			pts = append(pts, exit...)
			w.upper = f.id
			break
		}
		cx := f.x + f.width/2
		pts = appendDummy(pts, chained, Point{cx, f.y + f.height}, Point{cx, f.y})
		chained = true
		if len(f.preds) != 1 {
			break
		}
		cur = s.edges[f.preds[0]]
	}
	slices.Reverse(pts)
	w.points = pts
	return w
}

// appendDummy adds the two points where a route crosses a dummy. Vertical
// runs through consecutive dummies collapse to their outer points.
func appendDummy(pts []Point, chained bool, first, second Point) []Point {
	if n := len(pts); chained && n >= 2 && pts[n-1].X == first.X && pts[n-2].X == first.X {
		pts[n-1] = second
		return pts
	}
	return append(pts, first, second)
}

// exitPoints appends the points where a route leaves the bottom of n at x
// offset rel.
func (s *state) exitPoints(pts []Point, n *node, rel, link int) []Point {
	x := n.x + rel
	border := n.y + n.height - n.bottomYOffset
	if s.reversed[link] {
		return append(pts, Point{x, border})
	}
	pts = append(pts, Point{x, border + s.links[link].From().RelativePosition().Y})
	if off, ok := n.outOffsets[rel]; ok {
		pts = append(pts, Point{x, border + off})
	}
	return pts
}

// entryPoints appends the points where a route enters the top of n at x
// offset rel.
func (s *state) entryPoints(pts []Point, n *node, rel, link int) []Point {
	x := n.x + rel
	border := n.y + n.yOffset
	if s.reversed[link] {
		return append(pts, Point{x, border})
	}
	if off, ok := n.inOffsets[rel]; ok {
		pts = append(pts, Point{x, border + off})
	}
	return append(pts, Point{x, border + s.links[link].To().RelativePosition().Y})
}

// withDetours wraps the walk of a reversed link with the loops reserved
// around its real endpoints. The upper node is the link's target.
func (s *state) withDetours(w walk, link int) Segment {
	pts := w.points
	if !s.reversed[link] {
		return pts
	}
	if w.upper != noVertex {
		if d, ok := s.startDetours[link]; ok {
			n := s.nodes[w.upper]
			dy := s.links[link].To().RelativePosition().Y
			head := make(Segment, 0, len(d)+len(pts))
			for i := len(d) - 1; i >= 0; i-- {
				p := Point{n.x + d[i].X, n.y + d[i].Y}
				if i == len(d)-1 {
					p.Y += dy
				}
				head = append(head, p)
			}
			pts = append(head, pts...)
		}
	}
	if w.lower != noVertex {
		if d, ok := s.endDetours[link]; ok {
			n := s.nodes[w.lower]
			dy := s.links[link].From().RelativePosition().Y
			for i, p := range d {
				p = Point{n.x + p.X, n.y + p.Y}
				if i == len(d)-1 {
					p.Y += dy
				}
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// selfLoopRoute draws a self-loop as a rectangle around the right side of
// its vertex, from the bottom port to the top port.
func (s *state) selfLoopRoute(link int) Route {
	l := s.links[link]
	n := s.nodes[s.byID[l.From().Vertex().ID()]]
	from, to := l.From().RelativePosition(), l.To().RelativePosition()

	left := n.x + n.xOffset
	top := n.y + n.yOffset
	bottom := top + n.height - n.yOffset - n.bottomYOffset
	right := left + s.vertices[n.vertex].Size().Width + max(1, s.cfg.XOffset/2)
	margin := max(1, s.cfg.LayerOffset/3)

	return Route{Segments: []Segment{{
		{left + from.X, bottom + from.Y},
		{left + from.X, bottom + margin},
		{right, bottom + margin},
		{right, top - margin},
		{left + to.X, top - margin},
		{left + to.X, top + to.Y},
	}}}
}
