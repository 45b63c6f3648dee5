package layout

import "testing"

type testVertex struct {
	id     string
	w, h   int
	root   bool
	pos    Point
	placed bool
}

func (v *testVertex) ID() string           { return v.id }
func (v *testVertex) Size() Size           { return Size{Width: v.w, Height: v.h} }
func (v *testVertex) Root() bool           { return v.root }
func (v *testVertex) SetPosition(p Point)  { v.pos, v.placed = p, true }
func (v *testVertex) center() int          { return v.pos.X + v.w/2 }
func (v *testVertex) bottom() int          { return v.pos.Y + v.h }
func (v *testVertex) port(x int) testPort  { return testPort{v: v, rel: Point{X: x}} }
func (v *testVertex) centerPort() testPort { return v.port(v.w / 2) }

type testPort struct {
	v   *testVertex
	rel Point
}

func (p testPort) Vertex() Vertex          { return p.v }
func (p testPort) RelativePosition() Point { return p.rel }

type testLink struct {
	from, to testPort
	vip      bool
	route    Route
	routed   bool
}

func (l *testLink) From() Port       { return l.from }
func (l *testLink) To() Port         { return l.to }
func (l *testLink) VIP() bool        { return l.vip }
func (l *testLink) SetRoute(r Route) { l.route, l.routed = r, true }

type testGraph struct {
	vertices []*testVertex
	links    []*testLink
	byID     map[string]*testVertex
}

func newTestGraph() *testGraph {
	return &testGraph{byID: make(map[string]*testVertex)}
}

// vertex adds a 20x10 vertex, or returns the existing one.
func (g *testGraph) vertex(id string) *testVertex {
	if v, ok := g.byID[id]; ok {
		return v
	}
	v := &testVertex{id: id, w: 20, h: 10}
	g.vertices = append(g.vertices, v)
	g.byID[id] = v
	return v
}

// link connects the bottom center of from to the top center of to.
func (g *testGraph) link(from, to string) *testLink {
	l := &testLink{from: g.vertex(from).centerPort(), to: g.vertex(to).centerPort()}
	g.links = append(g.links, l)
	return l
}

func (g *testGraph) chain(ids ...string) {
	for i := 1; i < len(ids); i++ {
		g.link(ids[i-1], ids[i])
	}
}

func (g *testGraph) Vertices() []Vertex {
	out := make([]Vertex, len(g.vertices))
	for i, v := range g.vertices {
		out[i] = v
	}
	return out
}

func (g *testGraph) Links() []Link {
	out := make([]Link, len(g.links))
	for i, l := range g.links {
		out[i] = l
	}
	return out
}

func checkedConfig() Config {
	cfg := DefaultConfig()
	cfg.CheckInvariants = true
	return cfg
}

func mustState(t *testing.T, cfg Config, g Graph) *state {
	t.Helper()
	s, err := newState(cfg, g, nil)
	if err != nil {
		t.Fatalf("newState() error = %v", err)
	}
	return s
}

func mustLayout(t *testing.T, cfg Config, g Graph, important ...Link) Stats {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	st, err := e.Layout(g, important...)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return st
}
