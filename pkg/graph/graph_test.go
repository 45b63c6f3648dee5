package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
)

const diamondJSON = `{
  "vertices": [
    {"id": "a", "width": 20, "height": 10},
    {"id": "b", "width": 20, "height": 10},
    {"id": "c", "width": 20, "height": 10},
    {"id": "d", "width": 20, "height": 10}
  ],
  "links": [
    {"from": {"vertex": "a"}, "to": {"vertex": "b"}},
    {"from": {"vertex": "a"}, "to": {"vertex": "c"}},
    {"from": {"vertex": "b"}, "to": {"vertex": "d"}},
    {"from": {"vertex": "c"}, "to": {"vertex": "d"}, "vip": true}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(diamondJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(g.Vertices) != 4 || len(g.Links) != 4 {
		t.Fatalf("got %d vertices, %d links", len(g.Vertices), len(g.Links))
	}
	if !g.Links[3].VIP {
		t.Error("vip flag lost")
	}
	if g.Laid() {
		t.Error("fresh graph reports Laid")
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     errs.Code
		sentinel error
	}{
		{
			name:  "Malformed",
			input: `{"vertices": [`,
			code:  errs.ErrCodeInvalidFormat,
		},
		{
			name:  "UnknownField",
			input: `{"vertices": [{"id": "a", "colour": "red"}]}`,
			code:  errs.ErrCodeInvalidFormat,
		},
		{
			name:  "EmptyID",
			input: `{"vertices": [{"id": ""}]}`,
			code:  errs.ErrCodeInvalidInput,
		},
		{
			name:     "Duplicate",
			input:    `{"vertices": [{"id": "a"}, {"id": "a"}]}`,
			code:     errs.ErrCodeInvalidInput,
			sentinel: layout.ErrDuplicateVertex,
		},
		{
			name:     "NegativeSize",
			input:    `{"vertices": [{"id": "a", "width": -1}]}`,
			code:     errs.ErrCodeInvalidInput,
			sentinel: layout.ErrInvalidGraph,
		},
		{
			name:     "UnknownVertex",
			input:    `{"vertices": [{"id": "a"}], "links": [{"from": {"vertex": "a"}, "to": {"vertex": "z"}}]}`,
			code:     errs.ErrCodeInvalidInput,
			sentinel: layout.ErrUnknownVertex,
		},
		{
			name:     "NullLink",
			input:    `{"vertices": [{"id": "a"}], "links": [null]}`,
			code:     errs.ErrCodeInvalidInput,
			sentinel: layout.ErrInvalidGraph,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("graph returned alongside error")
			}
			if !errs.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errs.GetCode(err), tt.code)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not wrap %v", err, tt.sentinel)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	input := `
vertices:
  - id: app
    label: Application
    root: true
  - id: lib
links:
  - from: {vertex: app, x: 5}
    to: {vertex: lib, y: 2}
    important: true
`
	g, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	app := g.Vertex("app")
	if app == nil || !app.Root || app.DisplayLabel() != "Application" {
		t.Fatalf("app = %+v", app)
	}
	if got := g.Vertex("lib").DisplayLabel(); got != "lib" {
		t.Errorf("lib label = %q, want lib", got)
	}
	l := g.Links[0]
	if l.From.X == nil || *l.From.X != 5 || l.To.X != nil || l.To.Y != 2 || !l.Important {
		t.Errorf("link = %+v", l)
	}
}

func TestReadYAML_Empty(t *testing.T) {
	g, err := ReadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if len(g.Vertices) != 0 {
		t.Errorf("got %d vertices", len(g.Vertices))
	}
}

func TestReadYAML_UnknownField(t *testing.T) {
	_, err := ReadYAML(strings.NewReader("vertices:\n  - id: a\n    shape: box\n"))
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestReadDOT(t *testing.T) {
	input := `digraph deps {
  app [width=20, height=10, root=true, label="Application"];
  lib;
  util;
  app -> lib [vip=true, tailport=5];
  app -> util [important=true];
  lib -> util;
}`
	g, err := ReadDOT(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDOT: %v", err)
	}
	if len(g.Vertices) != 3 || len(g.Links) != 3 {
		t.Fatalf("got %d vertices, %d links", len(g.Vertices), len(g.Links))
	}

	app := g.Vertex("app")
	if app == nil || app.Width != 20 || app.Height != 10 || !app.Root || app.Label != "Application" {
		t.Errorf("app = %+v", app)
	}
	if lib := g.Vertex("lib"); lib == nil || lib.Label != "" || lib.Size().Width != DefaultWidth {
		t.Errorf("lib = %+v", lib)
	}

	var vip, important int
	for _, l := range g.Links {
		if l.VIP {
			vip++
			if l.From.Vertex != "app" || l.To.Vertex != "lib" || l.From.X == nil || *l.From.X != 5 {
				t.Errorf("vip link = %+v", l)
			}
		}
		if l.Important {
			important++
		}
	}
	if vip != 1 || important != 1 {
		t.Errorf("vip = %d, important = %d, want 1, 1", vip, important)
	}
}

func TestReadDOT_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Syntax", "digraph { a -> }"},
		{"BadWidth", `digraph { a [width="wide"]; }`},
		{"BadPort", `digraph { a -> b [tailport="left"]; }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDOT(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"g.json", FormatJSON, false},
		{"dir/g.YAML", FormatYAML, false},
		{"g.yml", FormatYAML, false},
		{"g.dot", FormatDOT, false},
		{"g.gv", FormatDOT, false},
		{"g.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteRead_YAMLKeepsLayout(t *testing.T) {
	g := mustLaidOut(t)

	data, err := Marshal(g, FormatYAML)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data, FormatYAML)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Laid() || back.Stats.Layers != g.Stats.Layers {
		t.Errorf("stats lost: %+v", back.Stats)
	}
	if *back.Vertex("d").Position != *g.Vertex("d").Position {
		t.Errorf("position changed: %v vs %v", back.Vertex("d").Position, g.Vertex("d").Position)
	}
}

func TestWrite_DOTUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&Graph{}, &buf, FormatDOT)
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")
	if err := os.WriteFile(path, []byte(diamondJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(g.Vertices) != 4 {
		t.Errorf("got %d vertices", len(g.Vertices))
	}

	out := filepath.Join(dir, "out.yaml")
	if err := WriteFile(g, out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadFile(out); err != nil {
		t.Errorf("reading written file: %v", err)
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBind_Layout(t *testing.T) {
	g := &Graph{
		Vertices: []*Vertex{
			{ID: "app", Width: 20, Height: 10},
			{ID: "lib", Width: 20, Height: 10},
		},
		Links: []*Link{{From: Center("app"), To: Center("lib")}},
	}
	b, err := g.Bind()
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if b.Graph() != g || len(b.Vertices()) != 2 || len(b.Links()) != 1 {
		t.Fatalf("binding = %+v", b)
	}

	engine, err := layout.New(layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Layout(b, b.Important()...); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	if p := g.Vertex("app").Position; p == nil || *p != (Point{X: 0, Y: 0}) {
		t.Errorf("app position = %v", p)
	}
	if p := g.Vertex("lib").Position; p == nil || *p != (Point{X: 0, Y: 40}) {
		t.Errorf("lib position = %v", p)
	}
	route := layout.Route{Segments: g.Links[0].Route}
	want := []Point{{X: 10, Y: 10}, {X: 10, Y: 40}}
	got := route.Points()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("route = %v, want %v", got, want)
	}
}

func TestBind_PortOffsets(t *testing.T) {
	g := &Graph{
		Vertices: []*Vertex{{ID: "a"}, {ID: "b", Width: 40}},
		Links:    []*Link{{From: At("a", 7), To: Port{Vertex: "b", Y: 3}}},
	}
	b, err := g.Bind()
	if err != nil {
		t.Fatal(err)
	}
	l := b.Links()[0]
	if got := l.From().RelativePosition(); got != (Point{X: 7}) {
		t.Errorf("from = %v, want {7 0}", got)
	}
	if got := l.To().RelativePosition(); got != (Point{X: 20, Y: 3}) {
		t.Errorf("to = %v, want {20 3}", got)
	}
	if l.From().Vertex().ID() != "a" || l.From().Vertex().Size().Width != DefaultWidth {
		t.Errorf("from vertex = %v", l.From().Vertex())
	}
}

func TestBind_Invalid(t *testing.T) {
	g := &Graph{Vertices: []*Vertex{{ID: "a"}, {ID: "a"}}}
	if _, err := g.Bind(); !errors.Is(err, layout.ErrDuplicateVertex) {
		t.Errorf("err = %v, want ErrDuplicateVertex", err)
	}
}

func TestHash(t *testing.T) {
	a, err := ReadJSON(strings.NewReader(diamondJSON))
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()
	b.Vertices[0], b.Vertices[3] = b.Vertices[3], b.Vertices[0]
	b.Links[0], b.Links[2] = b.Links[2], b.Links[0]
	if a.Hash() != b.Hash() {
		t.Error("hash depends on element order")
	}

	laid := mustLaidOut(t)
	if laid.Hash() != a.Hash() {
		t.Error("hash depends on layout output")
	}

	c := a.Clone()
	c.Links[3].VIP = false
	if c.Hash() == a.Hash() {
		t.Error("hash ignores vip flag")
	}

	d := a.Clone()
	d.Vertices[0].Width = 0
	e := a.Clone()
	e.Vertices[0].Width = DefaultWidth
	if d.Hash() != e.Hash() {
		t.Error("hash distinguishes default and explicit size")
	}
	if len(a.Hash()) != 64 {
		t.Errorf("hash length = %d, want 64", len(a.Hash()))
	}
}

func TestClone_Independent(t *testing.T) {
	g := mustLaidOut(t)
	c := g.Clone()

	c.Vertex("a").Position.X = 999
	c.Links[0].Route[0][0].X = 999
	c.Stats.Layers = 999

	if g.Vertex("a").Position.X == 999 || g.Links[0].Route[0][0].X == 999 || g.Stats.Layers == 999 {
		t.Error("clone shares layout output with original")
	}

	c.Reset()
	if c.Laid() || c.Vertex("a").Position != nil || c.Links[0].Route != nil {
		t.Error("Reset left layout output")
	}
	if !g.Laid() {
		t.Error("Reset on clone affected original")
	}
}

func TestExtent(t *testing.T) {
	g := mustLaidOut(t)
	if w, h := g.Extent(); w != g.Stats.Width || h != g.Stats.Height {
		t.Errorf("Extent() = %d,%d, want stats %d,%d", w, h, g.Stats.Width, g.Stats.Height)
	}

	loose := &Graph{
		Vertices: []*Vertex{
			{ID: "a", Width: 20, Height: 10, Position: &Point{X: 5, Y: 0}},
			{ID: "b"},
		},
		Links: []*Link{{
			From:  Center("a"),
			To:    Center("b"),
			Route: []layout.Segment{{{X: 15, Y: 10}, {X: 40, Y: 70}}},
		}},
	}
	if w, h := loose.Extent(); w != 40 || h != 70 {
		t.Errorf("Extent() = %d,%d, want 40,70", w, h)
	}
}

func mustLaidOut(t *testing.T) *Graph {
	t.Helper()
	g, err := ReadJSON(strings.NewReader(diamondJSON))
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Bind()
	if err != nil {
		t.Fatal(err)
	}
	engine, err := layout.New(layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	st, err := engine.Layout(b, b.Important()...)
	if err != nil {
		t.Fatal(err)
	}
	g.Stats = &st
	return g
}
