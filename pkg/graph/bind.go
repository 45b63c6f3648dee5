package graph

import (
	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
)

// Validate checks vertex IDs, sizes and link endpoints.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Vertices))
	for i, v := range g.Vertices {
		if v == nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, layout.ErrInvalidGraph, "vertex %d is null", i)
		}
		if err := errs.ValidateVertexID(v.ID); err != nil {
			return err
		}
		if seen[v.ID] {
			return errs.Wrap(errs.ErrCodeInvalidInput, layout.ErrDuplicateVertex, "vertex %q", v.ID)
		}
		seen[v.ID] = true
		if v.Width < 0 || v.Height < 0 {
			return errs.Wrap(errs.ErrCodeInvalidInput, layout.ErrInvalidGraph,
				"vertex %q has negative size %dx%d", v.ID, v.Width, v.Height)
		}
	}
	for i, l := range g.Links {
		if l == nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, layout.ErrInvalidGraph, "link %d is null", i)
		}
		for _, p := range []Port{l.From, l.To} {
			if !seen[p.Vertex] {
				return errs.Wrap(errs.ErrCodeInvalidInput, layout.ErrUnknownVertex,
					"link %d (%s -> %s) references %q", i, l.From.Vertex, l.To.Vertex, p.Vertex)
			}
		}
	}
	return nil
}

// Binding is a validated view of a Graph implementing layout.Graph.
// Positions and routes set by the engine are written into the Graph.
type Binding struct {
	g         *Graph
	vertices  []layout.Vertex
	links     []layout.Link
	important []layout.Link
}

// Bind validates g and returns its layout view.
func (g *Graph) Bind() (*Binding, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	b := &Binding{g: g}
	byID := make(map[string]*vertexView, len(g.Vertices))
	for _, v := range g.Vertices {
		vv := &vertexView{v: v}
		byID[v.ID] = vv
		b.vertices = append(b.vertices, vv)
	}
	for _, l := range g.Links {
		lv := &linkView{
			l:    l,
			from: byID[l.From.Vertex].port(l.From),
			to:   byID[l.To.Vertex].port(l.To),
		}
		b.links = append(b.links, lv)
		if l.Important {
			b.important = append(b.important, lv)
		}
	}
	return b, nil
}

// Vertices implements layout.Graph.
func (b *Binding) Vertices() []layout.Vertex { return b.vertices }

// Links implements layout.Graph.
func (b *Binding) Links() []layout.Link { return b.links }

// Important returns the links marked important, for Engine.Layout.
func (b *Binding) Important() []layout.Link { return b.important }

// Graph returns the bound graph.
func (b *Binding) Graph() *Graph { return b.g }

type vertexView struct {
	v *Vertex
}

func (w *vertexView) ID() string          { return w.v.ID }
func (w *vertexView) Size() layout.Size   { return w.v.Size() }
func (w *vertexView) Root() bool          { return w.v.Root }
func (w *vertexView) SetPosition(p Point) { w.v.Position = &p }

func (w *vertexView) port(p Port) portView {
	x := w.Size().Width / 2
	if p.X != nil {
		x = *p.X
	}
	return portView{v: w, rel: Point{X: x, Y: p.Y}}
}

type portView struct {
	v   *vertexView
	rel Point
}

func (p portView) Vertex() layout.Vertex          { return p.v }
func (p portView) RelativePosition() layout.Point { return p.rel }

type linkView struct {
	l        *Link
	from, to portView
}

func (w *linkView) From() layout.Port { return w.from }
func (w *linkView) To() layout.Port   { return w.to }
func (w *linkView) VIP() bool         { return w.l.VIP }
func (w *linkView) SetRoute(r layout.Route) {
	w.l.Route = r.Segments
}
