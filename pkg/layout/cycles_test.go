package layout

import "testing"

func TestBreakCycles_NoCycles(t *testing.T) {
	g := newTestGraph()
	g.chain("a", "b", "c")

	s := mustState(t, DefaultConfig(), g)
	s.breakCycles()

	for i, r := range s.reversed {
		if r {
			t.Errorf("link %d reversed in an acyclic graph", i)
		}
	}
	if err := s.checkAcyclic(); err != nil {
		t.Errorf("checkAcyclic() = %v", err)
	}
}

func TestBreakCycles_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		build    func(*testGraph)
		reversed int
	}{
		{"two-cycle", func(g *testGraph) { g.link("a", "b"); g.link("b", "a") }, 1},
		{"triangle", func(g *testGraph) { g.chain("a", "b", "c", "a") }, 1},
		{"two separate cycles", func(g *testGraph) { g.chain("a", "b", "a"); g.chain("c", "d", "c") }, 2},
		{"nested", func(g *testGraph) { g.chain("a", "b", "c", "d", "a"); g.link("c", "b") }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph()
			tt.build(g)
			s := mustState(t, DefaultConfig(), g)
			s.breakCycles()

			if err := s.checkAcyclic(); err != nil {
				t.Fatalf("checkAcyclic() = %v", err)
			}
			got := 0
			for _, r := range s.reversed {
				if r {
					got++
				}
			}
			if got != tt.reversed {
				t.Errorf("reversed %d links, want %d", got, tt.reversed)
			}
		})
	}
}

func TestBreakCycles_SelfLoop(t *testing.T) {
	g := newTestGraph()
	g.link("a", "a")
	g.link("a", "b")

	s := mustState(t, DefaultConfig(), g)
	s.breakCycles()

	if len(s.selfLoops) != 1 {
		t.Fatalf("selfLoops = %v, want one", s.selfLoops)
	}
	a := s.nodes[s.byID["a"]]
	if len(a.preds) != 0 || len(a.succs) != 1 {
		t.Errorf("a has %d preds and %d succs, want 0 and 1", len(a.preds), len(a.succs))
	}
}

func TestBreakCycles_RootInputsReversed(t *testing.T) {
	g := newTestGraph()
	g.link("x", "r")
	g.vertex("r").root = true

	s := mustState(t, DefaultConfig(), g)
	s.breakCycles()

	r := s.nodes[s.byID["r"]]
	if len(r.preds) != 0 || len(r.succs) != 1 {
		t.Errorf("root has %d preds and %d succs, want 0 and 1", len(r.preds), len(r.succs))
	}
	if !s.reversed[0] {
		t.Error("link into root not marked reversed")
	}
}

func TestBreakCycles_RootWithRootPredKept(t *testing.T) {
	g := newTestGraph()
	g.link("p", "r")
	g.vertex("p").root = true
	g.vertex("r").root = true

	s := mustState(t, DefaultConfig(), g)
	s.breakCycles()

	if s.reversed[0] {
		t.Error("link between two roots reversed")
	}
}

func TestBreakCycles_ImportantLinksKeepDirection(t *testing.T) {
	// Without hints the DFS from a reverses c->a.
	g := newTestGraph()
	g.chain("a", "b", "c")
	back := g.link("c", "a")

	s, err := newState(DefaultConfig(), g, []Link{back})
	if err != nil {
		t.Fatal(err)
	}
	s.breakCycles()
	if err := s.checkAcyclic(); err != nil {
		t.Fatalf("checkAcyclic() = %v", err)
	}

	for i, l := range s.links {
		if l == Link(back) && s.reversed[i] {
			t.Error("important link was reversed")
		}
	}
}

func TestReserveReversedSpace(t *testing.T) {
	g := newTestGraph()
	g.link("a", "b")
	g.link("b", "a")

	cfg := DefaultConfig()
	s := mustState(t, cfg, g)
	s.breakCycles()

	gap := cfg.XOffset + cfg.DummyWidth
	a := s.nodes[s.byID["a"]]
	b := s.nodes[s.byID["b"]]

	// b->a is reversed: a now owns the start of a loop above its top
	// border, b the end of a loop below its bottom border.
	if a.yOffset != gap || a.height != 10+gap {
		t.Errorf("a: yOffset=%d height=%d, want %d and %d", a.yOffset, a.height, gap, 10+gap)
	}
	if a.width != 20+gap {
		t.Errorf("a: width=%d, want %d", a.width, 20+gap)
	}
	if b.bottomYOffset != gap || b.height != 10+gap {
		t.Errorf("b: bottomYOffset=%d height=%d, want %d and %d", b.bottomYOffset, b.height, gap, 10+gap)
	}
	if _, ok := a.inOffsets[10]; !ok {
		t.Errorf("a.inOffsets = %v, want entry for port 10", a.inOffsets)
	}
	if _, ok := b.outOffsets[10]; !ok {
		t.Errorf("b.outOffsets = %v, want entry for port 10", b.outOffsets)
	}
}

func TestReserveReversedSpace_BothSides(t *testing.T) {
	// m has a reversed outgoing edge (to a) and a reversed incoming edge
	// (from z); the incoming loop moves to the left side.
	g := newTestGraph()
	g.chain("a", "m", "z")
	g.link("m", "a")
	g.link("z", "m")

	s := mustState(t, DefaultConfig(), g)
	// Force the reversal pattern on m directly.
	for _, e := range s.edges {
		if s.vertices[s.nodes[e.from].vertex].ID() == "m" && s.vertices[s.nodes[e.to].vertex].ID() == "a" {
			s.reverseEdge(e)
		}
		if s.vertices[s.nodes[e.from].vertex].ID() == "z" && s.vertices[s.nodes[e.to].vertex].ID() == "m" {
			s.reverseEdge(e)
		}
	}
	m := s.nodes[s.byID["m"]]
	s.reserveReversedSpace(m)

	gap := s.cfg.XOffset + s.cfg.DummyWidth
	if m.xOffset != gap {
		t.Errorf("xOffset = %d, want %d", m.xOffset, gap)
	}
	if m.width != 20+2*gap {
		t.Errorf("width = %d, want %d", m.width, 20+2*gap)
	}
	for _, id := range m.preds {
		e := s.edges[id]
		if s.reversed[e.link] && e.relativeTo != 0 {
			t.Errorf("left slot at %d, want 0", e.relativeTo)
		}
	}
}
