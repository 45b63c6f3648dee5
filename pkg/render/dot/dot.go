// Package dot writes laid-out graphs as Graphviz DOT with pinned geometry.
//
// Every vertex gets a fixed-size box with a pos attribute ending in "!",
// and every routed link gets a spline pos built from its segments, so
// running the output through "neato -n2" draws the engine's layout instead
// of computing a new one. Graphviz puts the origin at the bottom left, so y
// coordinates are flipped against the drawing height.
//
// The vip, important and root attributes are written as well, so the file
// reads back with [graph.ReadDOT]. Sizes follow Graphviz and are given in
// inches; port offsets are not written since the routes already carry them.
package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
)

// pointsPerInch converts drawing units, treated as points, to Graphviz
// inches.
const pointsPerInch = 72

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	labels bool
}

// WithLabels toggles vertex labels (on by default). Without labels every
// box gets an empty label.
func WithLabels(show bool) Option { return func(r *renderer) { r.labels = show } }

// RenderDOT renders g. Vertices without a position are written without a
// pos attribute, and links without a route without a spline.
func RenderDOT(g *graph.Graph, opts ...Option) []byte {
	r := renderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := g.Extent()

	var buf bytes.Buffer
	buf.WriteString("digraph strata {\n")
	fmt.Fprintf(&buf, "  graph [bb=\"0,0,%d,%d\", splines=true];\n", w, h)
	buf.WriteString("  node [shape=box, fixedsize=true, style=\"rounded,filled\", fillcolor=\"#f4f1ea\", fontname=\"sans-serif\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(v.ID), strings.Join(r.vertexAttrs(v, h), ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		attrs := linkAttrs(l, h)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quote(l.From.Vertex), quote(l.To.Vertex))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(l.From.Vertex), quote(l.To.Vertex), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

func (r renderer) vertexAttrs(v *graph.Vertex, height int) []string {
	s := v.Size()
	label := ""
	if r.labels {
		label = v.DisplayLabel()
	}
	attrs := []string{
		"label=" + quote(label),
		"width=" + inches(s.Width),
		"height=" + inches(s.Height),
	}
	if v.Position != nil {
		cx := v.Position.X + s.Width/2
		cy := v.Position.Y + s.Height/2
		attrs = append(attrs, fmt.Sprintf("pos=\"%d,%d!\"", cx, height-cy))
	}
	if v.Root {
		attrs = append(attrs, "root=true")
	}
	return attrs
}

func linkAttrs(l *graph.Link, height int) []string {
	var attrs []string
	if l.VIP {
		attrs = append(attrs, "vip=true", "penwidth=2", "color=\"#b03a2e\"")
	}
	if l.Important {
		attrs = append(attrs, "important=true")
	}
	if pos := splinePos(l.Route, height); pos != "" {
		attrs = append(attrs, "pos="+quote(pos))
	}
	return attrs
}

// splinePos encodes each segment as a B-spline whose control points sit on
// the polyline corners, which Graphviz draws as straight pieces. Segments of
// a split route are joined with ";".
func splinePos(route []layout.Segment, height int) string {
	var splines []string
	for _, seg := range route {
		if len(seg) < 2 {
			continue
		}
		pts := []string{point(seg[0], height)}
		for i := 1; i < len(seg); i++ {
			prev, cur := point(seg[i-1], height), point(seg[i], height)
			pts = append(pts, prev, cur, cur)
		}
		splines = append(splines, strings.Join(pts, " "))
	}
	return strings.Join(splines, ";")
}

func point(p layout.Point, height int) string {
	return fmt.Sprintf("%d,%d", p.X, height-p.Y)
}

func inches(units int) string {
	return fmt.Sprintf("%.4g", float64(units)/pointsPerInch)
}

// quote writes s as a DOT quoted string. Only the double quote is special
// inside one.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
