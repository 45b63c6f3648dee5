package layout

// Point is an integer position in drawing coordinates. Y grows downward.
type Point struct {
	X int `json:"x" yaml:"x" bson:"x"`
	Y int `json:"y" yaml:"y" bson:"y"`
}

// Size is the extent of a vertex.
type Size struct {
	Width  int
	Height int
}

// Vertex is a caller-owned node of the input graph.
//
// IDs must be unique within a graph; their lexical order is the total order
// used to produce deterministic initial orderings.
type Vertex interface {
	ID() string
	Size() Size
	Root() bool
	SetPosition(Point)
}

// Port is a link endpoint: an owning vertex and an attachment offset.
//
// RelativePosition().X is measured from the vertex's left edge. Y is added to
// the attachment point on the vertex border (bottom for sources, top for
// targets).
type Port interface {
	Vertex() Vertex
	RelativePosition() Point
}

// Link is a caller-owned directed edge between two ports.
type Link interface {
	From() Port
	To() Port
	VIP() bool
	SetRoute(Route)
}

// Graph exposes the vertices and links to lay out.
type Graph interface {
	Vertices() []Vertex
	Links() []Link
}

// Segment is a continuous run of route points.
type Segment []Point

// Route is the drawn path of a link, ordered from the source port to the
// target port. A link whose dummy chain was split because it exceeded the
// maximum layer length is drawn as two segments with a gap between them.
type Route struct {
	Segments []Segment
}

// Points returns all points of all segments in order.
func (r Route) Points() []Point {
	var n int
	for _, s := range r.Segments {
		n += len(s)
	}
	pts := make([]Point, 0, n)
	for _, s := range r.Segments {
		pts = append(pts, s...)
	}
	return pts
}

// Split reports whether the route consists of more than one segment.
func (r Route) Split() bool {
	return len(r.Segments) > 1
}

// Empty reports whether the route has no points.
func (r Route) Empty() bool {
	for _, s := range r.Segments {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

func (r *Route) reverse() {
	for i, j := 0, len(r.Segments)-1; i < j; i, j = i+1, j-1 {
		r.Segments[i], r.Segments[j] = r.Segments[j], r.Segments[i]
	}
	for _, s := range r.Segments {
		for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
	}
}

func (r *Route) translate(dx, dy int) {
	for _, s := range r.Segments {
		for i := range s {
			s[i].X += dx
			s[i].Y += dy
		}
	}
}
