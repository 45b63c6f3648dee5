package graph

import (
	"github.com/matzehuels/strata/pkg/layout"
)

// Default vertex size for vertices that do not specify one.
const (
	DefaultWidth  = 80
	DefaultHeight = 30
)

// Point is a drawing coordinate.
type Point = layout.Point

// Graph is the canonical serialization format for layout input and output.
type Graph struct {
	Vertices []*Vertex `json:"vertices" yaml:"vertices" bson:"vertices"`
	Links    []*Link   `json:"links" yaml:"links" bson:"links"`

	// Stats is set once the graph has been laid out.
	Stats *layout.Stats `json:"stats,omitempty" yaml:"stats,omitempty" bson:"stats,omitempty"`
}

// Vertex is a box to be placed.
type Vertex struct {
	ID     string `json:"id" yaml:"id" bson:"id"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Width  int    `json:"width,omitempty" yaml:"width,omitempty" bson:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty" bson:"height,omitempty"`

	// Root vertices are pulled to the top: their incoming links are drawn
	// reversed unless one comes from another root.
	Root bool `json:"root,omitempty" yaml:"root,omitempty" bson:"root,omitempty"`

	// Position is the top-left corner, set by layout.
	Position *Point `json:"position,omitempty" yaml:"position,omitempty" bson:"position,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (v *Vertex) DisplayLabel() string {
	if v.Label != "" {
		return v.Label
	}
	return v.ID
}

// Size returns the vertex size with defaults applied.
func (v *Vertex) Size() layout.Size {
	s := layout.Size{Width: v.Width, Height: v.Height}
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	return s
}

// Port is a link endpoint on a vertex.
type Port struct {
	Vertex string `json:"vertex" yaml:"vertex" bson:"vertex"`

	// X is the attachment offset from the left edge of the vertex. Nil
	// attaches at the center.
	X *int `json:"x,omitempty" yaml:"x,omitempty" bson:"x,omitempty"`

	// Y is added to the attachment point on the vertex border.
	Y int `json:"y,omitempty" yaml:"y,omitempty" bson:"y,omitempty"`
}

// At returns a port on vertex at offset x.
func At(vertex string, x int) Port {
	return Port{Vertex: vertex, X: &x}
}

// Center returns a port at the center of vertex.
func Center(vertex string) Port {
	return Port{Vertex: vertex}
}

// Link is a directed link between two ports.
type Link struct {
	From Port `json:"from" yaml:"from" bson:"from"`
	To   Port `json:"to" yaml:"to" bson:"to"`

	// VIP links are weighted more heavily and drawn as straight as possible.
	VIP bool `json:"vip,omitempty" yaml:"vip,omitempty" bson:"vip,omitempty"`

	// Important links are kept pointing downward during cycle breaking
	// whenever possible.
	Important bool `json:"important,omitempty" yaml:"important,omitempty" bson:"important,omitempty"`

	// Route is set by layout. A link whose dummy chain was split has two
	// segments.
	Route []layout.Segment `json:"route,omitempty" yaml:"route,omitempty" bson:"route,omitempty"`
}

// Laid reports whether the graph carries layout output.
func (g *Graph) Laid() bool {
	return g.Stats != nil
}

// Vertex returns the vertex with the given ID, or nil.
func (g *Graph) Vertex(id string) *Vertex {
	for _, v := range g.Vertices {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Extent returns the drawing size, from the layout stats when present and
// otherwise from the positions and routes.
func (g *Graph) Extent() (width, height int) {
	if g.Stats != nil {
		return g.Stats.Width, g.Stats.Height
	}
	for _, v := range g.Vertices {
		if v.Position == nil {
			continue
		}
		s := v.Size()
		width = max(width, v.Position.X+s.Width)
		height = max(height, v.Position.Y+s.Height)
	}
	for _, l := range g.Links {
		for _, seg := range l.Route {
			for _, pt := range seg {
				width, height = max(width, pt.X), max(height, pt.Y)
			}
		}
	}
	return width, height
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Vertices: make([]*Vertex, len(g.Vertices)),
		Links:    make([]*Link, len(g.Links)),
	}
	for i, v := range g.Vertices {
		c := *v
		if v.Position != nil {
			p := *v.Position
			c.Position = &p
		}
		out.Vertices[i] = &c
	}
	for i, l := range g.Links {
		c := *l
		c.From, c.To = l.From.clone(), l.To.clone()
		if l.Route != nil {
			c.Route = make([]layout.Segment, len(l.Route))
			for j, seg := range l.Route {
				c.Route[j] = append(layout.Segment(nil), seg...)
			}
		}
		out.Links[i] = &c
	}
	if g.Stats != nil {
		st := *g.Stats
		out.Stats = &st
	}
	return out
}

func (p Port) clone() Port {
	if p.X != nil {
		x := *p.X
		p.X = &x
	}
	return p
}

// Reset drops all layout output.
func (g *Graph) Reset() {
	for _, v := range g.Vertices {
		v.Position = nil
	}
	for _, l := range g.Links {
		l.Route = nil
	}
	g.Stats = nil
}
