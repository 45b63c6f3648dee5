package graph

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// Hash returns a SHA-256 hex digest of the graph structure. Layout output
// (positions, routes, stats) is ignored, as is the order of vertices and
// links, so a graph hashes the same before and after layout.
func (g *Graph) Hash() string {
	c := g.Clone()
	c.Reset()

	for _, v := range c.Vertices {
		size := v.Size()
		v.Width, v.Height = size.Width, size.Height
	}
	slices.SortFunc(c.Vertices, func(a, b *Vertex) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortStableFunc(c.Links, func(a, b *Link) int {
		return cmp.Or(
			comparePorts(a.From, b.From),
			comparePorts(a.To, b.To),
			compareBool(a.VIP, b.VIP),
			compareBool(a.Important, b.Important),
		)
	})

	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func comparePorts(a, b Port) int {
	return cmp.Or(
		cmp.Compare(a.Vertex, b.Vertex),
		compareOffset(a.X, b.X),
		cmp.Compare(a.Y, b.Y),
	)
}

func compareOffset(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return cmp.Compare(*a, *b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}
