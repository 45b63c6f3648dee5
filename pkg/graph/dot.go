package graph

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/strata/pkg/errors"
)

// ReadDOT parses a Graphviz DOT digraph.
//
// Node attributes: width and height in points, label, root=true. Edge
// attributes: vip=true, important=true, and tailport/headport given as a
// numeric x offset. Node order follows the DOT source.
func ReadDOT(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	dg, err := graphviz.ParseBytes(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer dg.Close()

	g := &Graph{}
	n, err := dg.FirstNode()
	for ; err == nil && n != nil; n, err = dg.NextNode(n) {
		name, err := n.Name()
		if err != nil {
			return nil, fmt.Errorf("node name: %w", err)
		}
		v := &Vertex{ID: name, Root: isTrue(n.GetStr("root"))}
		if label := n.GetStr("label"); label != "" && label != name && label != `\N` {
			v.Label = label
		}
		if v.Width, err = dotSize(n.GetStr("width")); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %s width", name)
		}
		if v.Height, err = dotSize(n.GetStr("height")); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %s height", name)
		}
		g.Vertices = append(g.Vertices, v)
	}
	if err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}

	n, err = dg.FirstNode()
	for ; err == nil && n != nil; n, err = dg.NextNode(n) {
		e, err := dg.FirstOut(n)
		for ; err == nil && e != nil; e, err = dg.NextOut(e) {
			l, err := dotLink(e)
			if err != nil {
				return nil, err
			}
			g.Links = append(g.Links, l)
		}
		if err != nil {
			return nil, fmt.Errorf("iterate edges: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func dotLink(e *graphviz.Edge) (*Link, error) {
	tail, err := e.Tail()
	if err != nil {
		return nil, fmt.Errorf("edge tail: %w", err)
	}
	head, err := e.Head()
	if err != nil {
		return nil, fmt.Errorf("edge head: %w", err)
	}
	from, err := tail.Name()
	if err != nil {
		return nil, fmt.Errorf("edge tail: %w", err)
	}
	to, err := head.Name()
	if err != nil {
		return nil, fmt.Errorf("edge head: %w", err)
	}

	l := &Link{
		From:      Center(from),
		To:        Center(to),
		VIP:       isTrue(e.GetStr("vip")),
		Important: isTrue(e.GetStr("important")),
	}
	if p := e.GetStr("tailport"); p != "" {
		x, err := strconv.Atoi(p)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %s -> %s: tailport %q is not an offset", from, to, p)
		}
		l.From = At(from, x)
	}
	if p := e.GetStr("headport"); p != "" {
		x, err := strconv.Atoi(p)
		if err != nil {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %s -> %s: headport %q is not an offset", from, to, p)
		}
		l.To = At(to, x)
	}
	return l, nil
}

// dotSize converts a DOT size in points to drawing units. Empty means
// default.
func dotSize(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative size %s", s)
	}
	return int(math.Round(f)), nil
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}
