package layout

import (
	"fmt"
	"math"
)

// drawing is the computed output of a call before it is handed to the
// caller's vertices and links.
type drawing struct {
	positions []Point // per vertex
	routes    []Route // per link
	width     int
	height    int
}

// buildDrawing walks every link once and assembles the final, normalized
// coordinates. It does not touch caller objects.
func (s *state) buildDrawing() (*drawing, error) {
	d := &drawing{
		positions: make([]Point, len(s.vertices)),
		routes:    make([]Route, len(s.links)),
	}
	for _, n := range s.nodes[:s.realNodes] {
		d.positions[n.vertex] = Point{n.x + n.xOffset, n.y + n.yOffset}
	}

	halves := make(map[int]walk)
	for _, n := range s.nodes {
		for _, ids := range [][]int{n.preds, n.succs} {
			for _, id := range ids {
				e := s.edges[id]
				if e.link == noLink {
					continue
				}
				link := e.link
				e.link = noLink

				w := s.walkLink(e, link)
				if w.upper != noVertex && w.lower != noVertex {
					d.routes[link] = Route{Segments: []Segment{s.withDetours(w, link)}}
				} else if other, ok := halves[link]; ok {
					delete(halves, link)
					top, bottom := other, w
					if top.upper == noVertex {
						top, bottom = w, other
					}
					d.routes[link] = Route{Segments: []Segment{
						s.withDetours(top, link),
						s.withDetours(bottom, link),
					}}
				} else {
					halves[link] = w
					continue
				}
				if s.reversed[link] {
					d.routes[link].reverse()
				}
			}
		}
	}
	if len(halves) > 0 {
		return nil, fmt.Errorf("%w: %d split links without a matching half", ErrInvariant, len(halves))
	}
	for _, link := range s.selfLoops {
		d.routes[link] = s.selfLoopRoute(link)
	}

	d.normalize(s.vertices)
	return d, nil
}

// normalize translates the drawing so that its minimum coordinates are zero
// and records its extent.
func (d *drawing) normalize(vertices []Vertex) {
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	visit := func(p Point, w, h int) {
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X+w), max(maxY, p.Y+h)
	}
	for i, p := range d.positions {
		size := vertices[i].Size()
		visit(p, size.Width, size.Height)
	}
	for _, r := range d.routes {
		for _, seg := range r.Segments {
			for _, p := range seg {
				visit(p, 0, 0)
			}
		}
	}
	if minX == math.MaxInt {
		return
	}

	for i := range d.positions {
		d.positions[i].X -= minX
		d.positions[i].Y -= minY
	}
	for i := range d.routes {
		d.routes[i].translate(-minX, -minY)
	}
	d.width, d.height = maxX-minX, maxY-minY
}

// apply writes the drawing back to the caller's vertices and links.
func (d *drawing) apply(vertices []Vertex, links []Link) {
	for i, v := range vertices {
		v.SetPosition(d.positions[i])
	}
	for i, l := range links {
		l.SetRoute(d.routes[i])
	}
}
