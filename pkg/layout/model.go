package layout

import (
	"cmp"
	"slices"

	errs "github.com/matzehuels/strata/pkg/errors"
)

// noVertex marks a dummy node; noLink marks an edge that carries no link or
// whose link has already been written.
const (
	noVertex = -1
	noLink   = -1
)

// =============================================================================
// Working Model
// =============================================================================

// node is a working node. Real nodes wrap one input vertex; dummies carry
// long edges through intermediate layers.
type node struct {
	id     int
	vertex int // index into state.vertices, noVertex for dummies

	x, y          int
	width, height int
	layer         int

	// Margins reserved around the vertex for reversed-edge loops.
	xOffset       int
	yOffset       int
	bottomYOffset int

	preds []int // edge ids
	succs []int // edge ids

	pos            int
	crossingNumber int

	// Port x -> vertical distance from the vertex border to the loop row of a
	// reversed edge attached at the same port. inOffsets are negative (above
	// the top border), outOffsets positive (below the bottom border).
	inOffsets  map[int]int
	outOffsets map[int]int
}

func (n *node) dummy() bool { return n.vertex == noVertex }

// edge is a working edge. After cycle breaking every edge points from the
// upper to the lower endpoint; the link it came from may run the other way.
type edge struct {
	id           int
	from, to     int // node ids
	relativeFrom int
	relativeTo   int
	link         int // index into state.links, or noLink
	vip          bool
}

// state is the working model of one Layout call.
type state struct {
	cfg Config

	vertices []Vertex
	links    []Link
	byID     map[string]int // vertex ID -> node id

	nodes []*node
	edges []*edge

	layers     [][]int // node ids per layer, left to right
	layerCount int

	important map[int]bool // link indexes to follow first during DFS
	reversed  []bool       // per link
	selfLoops []int        // link indexes dropped by the cycle breaker

	// Detour points of reversed links, relative to the owning node origin.
	// startDetours belong to the upper endpoint, endDetours to the lower one.
	startDetours map[int][]Point
	endDetours   map[int][]Point

	// bottomEdges pairs the top stub edge of a split chain with its bottom
	// stub edge.
	bottomEdges map[int]int

	realNodes int
}

// newState wraps the caller's graph. It validates every vertex and link
// before anything is built, so a rejected graph is left untouched.
func newState(cfg Config, g Graph, important []Link) (*state, error) {
	if g == nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrInvalidGraph, "nil graph")
	}

	vertices := slices.Clone(g.Vertices())
	for i, v := range vertices {
		if v == nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrInvalidGraph, "vertex %d is nil", i)
		}
	}
	slices.SortStableFunc(vertices, func(a, b Vertex) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	s := &state{
		cfg:          cfg,
		vertices:     vertices,
		byID:         make(map[string]int, len(vertices)),
		important:    make(map[int]bool),
		startDetours: make(map[int][]Point),
		endDetours:   make(map[int][]Point),
		bottomEdges:  make(map[int]int),
	}

	for i, v := range vertices {
		id := v.ID()
		if _, dup := s.byID[id]; dup {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrDuplicateVertex, "vertex %q", id)
		}
		size := v.Size()
		s.byID[id] = s.addNode(i, size.Width, size.Height)
	}
	s.realNodes = len(s.nodes)

	links := slices.Clone(g.Links())
	for i, l := range links {
		if l == nil || l.From() == nil || l.To() == nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrInvalidGraph, "link %d has no endpoints", i)
		}
		for _, p := range []Port{l.From(), l.To()} {
			v := p.Vertex()
			if v == nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrInvalidGraph, "link %d has a port without vertex", i)
			}
			if _, ok := s.byID[v.ID()]; !ok {
				return nil, errs.Wrap(errs.ErrCodeInvalidInput, ErrUnknownVertex, "link %d references %q", i, v.ID())
			}
		}
	}
	slices.SortStableFunc(links, s.compareLinks)
	s.links = links
	s.reversed = make([]bool, len(links))

	for i, l := range links {
		from, to := l.From(), l.To()
		e := s.addEdge(s.byID[from.Vertex().ID()], s.byID[to.Vertex().ID()],
			from.RelativePosition().X, to.RelativePosition().X)
		e.link = i
		e.vip = l.VIP()
	}

	for _, imp := range important {
		for i, l := range links {
			if l == imp {
				s.important[i] = true
			}
		}
	}
	return s, nil
}

// compareLinks orders links by source vertex, target vertex, then ports.
func (s *state) compareLinks(a, b Link) int {
	if c := cmp.Compare(s.byID[a.From().Vertex().ID()], s.byID[b.From().Vertex().ID()]); c != 0 {
		return c
	}
	if c := cmp.Compare(s.byID[a.To().Vertex().ID()], s.byID[b.To().Vertex().ID()]); c != 0 {
		return c
	}
	if c := cmp.Compare(a.From().RelativePosition().X, b.From().RelativePosition().X); c != 0 {
		return c
	}
	return cmp.Compare(a.To().RelativePosition().X, b.To().RelativePosition().X)
}

// =============================================================================
// Arena Helpers
// =============================================================================

func (s *state) addNode(vertex, width, height int) int {
	n := &node{
		id:         len(s.nodes),
		vertex:     vertex,
		width:      width,
		height:     height,
		layer:      -1,
		pos:        -1,
		inOffsets:  make(map[int]int),
		outOffsets: make(map[int]int),
	}
	s.nodes = append(s.nodes, n)
	return n.id
}

func (s *state) addDummy(layer int) *node {
	n := s.nodes[s.addNode(noVertex, s.cfg.DummyWidth, s.cfg.DummyHeight)]
	n.layer = layer
	return n
}

// addEdge creates an edge and appends it to both adjacency lists.
func (s *state) addEdge(from, to, relFrom, relTo int) *edge {
	e := &edge{
		id:           len(s.edges),
		from:         from,
		to:           to,
		relativeFrom: relFrom,
		relativeTo:   relTo,
		link:         noLink,
	}
	s.edges = append(s.edges, e)
	s.nodes[from].succs = append(s.nodes[from].succs, e.id)
	s.nodes[to].preds = append(s.nodes[to].preds, e.id)
	return e
}

func (s *state) source(e *edge) *node { return s.nodes[e.from] }

func (s *state) target(e *edge) *node { return s.nodes[e.to] }

// removeID deletes the first occurrence of id, keeping order.
func removeID(ids []int, id int) []int {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

func (s *state) vipCount(ids []int) int {
	n := 0
	for _, id := range ids {
		if s.edges[id].vip {
			n++
		}
	}
	return n
}
