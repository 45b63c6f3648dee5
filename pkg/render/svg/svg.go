// Package svg draws laid-out graphs as standalone SVG documents.
//
// Vertices become rectangles with centered labels, and each route segment
// becomes a polyline. The last segment of a route carries an arrow marker;
// VIP links are drawn heavier. Vertices without a position and links
// without a route are skipped, so the input should come from a finished
// layout.
//
//	data := svg.RenderSVG(g, svg.WithPadding(20))
package svg

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/matzehuels/strata/pkg/graph"
)

// DefaultPadding is the margin around the drawing.
const DefaultPadding = 10

const css = `
    .vertex { fill: #f4f1ea; stroke: #333; stroke-width: 1; }
    .label { font-family: sans-serif; fill: #222; text-anchor: middle; dominant-baseline: central; }
    .link { fill: none; stroke: #555; stroke-width: 1; }
    .link.vip { stroke: #b03a2e; stroke-width: 2; }`

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	padding int
	labels  bool
}

// WithPadding sets the margin around the drawing. Negative values are
// treated as zero.
func WithPadding(p int) Option { return func(r *renderer) { r.padding = max(p, 0) } }

// WithLabels toggles vertex labels (on by default).
func WithLabels(show bool) Option { return func(r *renderer) { r.labels = show } }

// RenderSVG renders g. Output is deterministic for a given graph.
func RenderSVG(g *graph.Graph, opts ...Option) []byte {
	r := renderer{padding: DefaultPadding, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := g.Extent()
	p := r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%d %d %d %d" width="%d" height="%d">`+"\n",
		-p, -p, w+2*p, h+2*p, w+2*p, h+2*p)
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#555"/>
    </marker>
  </defs>
`)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", css)

	for _, l := range sortedLinks(g.Links) {
		renderLink(&buf, l)
	}
	for _, v := range g.Vertices {
		if v.Position == nil {
			continue
		}
		renderVertex(&buf, v, r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// sortedLinks puts VIP links last so they are drawn on top.
func sortedLinks(links []*graph.Link) []*graph.Link {
	out := slices.Clone(links)
	slices.SortStableFunc(out, func(a, b *graph.Link) int {
		return cmp.Compare(boolInt(a.VIP), boolInt(b.VIP))
	})
	return out
}

func renderLink(buf *bytes.Buffer, l *graph.Link) {
	class := "link"
	if l.VIP {
		class += " vip"
	}
	for i, seg := range l.Route {
		if len(seg) < 2 {
			continue
		}
		pts := make([]string, len(seg))
		for j, pt := range seg {
			pts[j] = fmt.Sprintf("%d,%d", pt.X, pt.Y)
		}
		marker := ""
		if i == len(l.Route)-1 {
			marker = ` marker-end="url(#arrow)"`
		}
		fmt.Fprintf(buf, `  <polyline class="%s" data-from="%s" data-to="%s" points="%s"%s/>`+"\n",
			class, html.EscapeString(l.From.Vertex), html.EscapeString(l.To.Vertex), strings.Join(pts, " "), marker)
	}
}

func renderVertex(buf *bytes.Buffer, v *graph.Vertex, label bool) {
	s := v.Size()
	x, y := v.Position.X, v.Position.Y
	fmt.Fprintf(buf, `  <rect class="vertex" id="vertex-%s" x="%d" y="%d" width="%d" height="%d" rx="3"/>`+"\n",
		html.EscapeString(v.ID), x, y, s.Width, s.Height)
	if !label || s.Height == 0 {
		return
	}
	fmt.Fprintf(buf, `  <text class="label" x="%d" y="%d" font-size="%d">%s</text>`+"\n",
		x+s.Width/2, y+s.Height/2, fontSize(s.Height), html.EscapeString(v.DisplayLabel()))
}

func fontSize(height int) int {
	return max(min(12, height*3/5), 1)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
