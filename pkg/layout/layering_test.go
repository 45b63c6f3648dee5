package layout

import "testing"

func layersOf(t *testing.T, cfg Config, g *testGraph) (map[string]int, int) {
	t.Helper()
	s := mustState(t, cfg, g)
	s.breakCycles()
	s.assignLayers()
	if err := s.checkLayering(); err != nil {
		t.Fatalf("checkLayering() = %v", err)
	}
	got := make(map[string]int)
	for _, n := range s.nodes {
		got[s.vertices[n.vertex].ID()] = n.layer
	}
	return got, s.layerCount
}

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name   string
		build  func(*testGraph)
		want   map[string]int
		layers int
	}{
		{
			name:   "chain",
			build:  func(g *testGraph) { g.chain("a", "b", "c") },
			want:   map[string]int{"a": 0, "b": 1, "c": 2},
			layers: 3,
		},
		{
			name:   "shortcut",
			build:  func(g *testGraph) { g.chain("a", "b", "c"); g.link("a", "c") },
			want:   map[string]int{"a": 0, "b": 1, "c": 2},
			layers: 3,
		},
		{
			name:   "late source pulled down",
			build:  func(g *testGraph) { g.chain("a", "b", "c", "d"); g.link("x", "d") },
			want:   map[string]int{"a": 0, "b": 1, "c": 2, "x": 2, "d": 3},
			layers: 4,
		},
		{
			name:   "isolated vertex",
			build:  func(g *testGraph) { g.chain("a", "b"); g.vertex("i") },
			want:   map[string]int{"a": 0, "b": 1, "i": 0},
			layers: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph()
			tt.build(g)
			got, layers := layersOf(t, DefaultConfig(), g)
			if layers != tt.layers {
				t.Errorf("layerCount = %d, want %d", layers, tt.layers)
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("layer(%s) = %d, want %d", id, got[id], want)
				}
			}
		})
	}
}

func TestAssignLayers_MinLayerDifference(t *testing.T) {
	g := newTestGraph()
	g.chain("a", "b")

	cfg := DefaultConfig()
	cfg.MinLayerDifference = 2
	got, layers := layersOf(t, cfg, g)

	if got["a"] != 0 || got["b"] != 2 {
		t.Errorf("layers = %v, want a=0 b=2", got)
	}
	if layers != 3 {
		t.Errorf("layerCount = %d, want 3", layers)
	}
}
