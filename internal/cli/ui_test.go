package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/pipeline"
)

func TestStatsTable(t *testing.T) {
	out := statsTable(layout.Stats{Vertices: 12, Crossings: 7, ReversedLinks: 2})
	for _, want := range []string{"Vertices", "12", "Crossings", "7", "Reversed links", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(&layout.Stats{Vertices: 3, Layers: 2, Width: 40, Height: 50}, true)
	for _, want := range []string{"3 vertices", "2 layers", "40x50", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if line := statsLine(nil, false); !strings.Contains(line, iconFresh) {
		t.Errorf("line %q missing %q", line, iconFresh)
	}
}

func TestBatchTable(t *testing.T) {
	results := []pipeline.BatchResult{
		{Path: "dir/a.json", Graph: &graph.Graph{Stats: &layout.Stats{Vertices: 4, Layers: 3}}, CacheHit: true},
		{Path: "dir/b.json", Err: errors.New("boom")},
	}
	out := batchTable(results)
	for _, want := range []string{"a.json", "b.json", iconCached, iconFailed} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestGraphListModel(t *testing.T) {
	files := []GraphFile{{Path: "a.json", Format: graph.FormatJSON}, {Path: "b.yaml", Format: graph.FormatYAML}}
	var m tea.Model = NewGraphListModel(files)

	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j")) // stays on the last row
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.(GraphListModel)
	if got.Selected == nil || got.Selected.Path != "b.yaml" {
		t.Fatalf("Selected = %+v, want b.yaml", got.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
	if view := got.View(); !strings.Contains(view, "a.json") || !strings.Contains(view, "[2/2]") {
		t.Errorf("view:\n%s", view)
	}
}

func TestGraphListModelQuit(t *testing.T) {
	m, cmd := NewGraphListModel(nil).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.(GraphListModel).Selected != nil || cmd == nil {
		t.Error("esc should quit without a selection")
	}
	if _, cmd := NewGraphListModel(nil).Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}
