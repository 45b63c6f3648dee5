package layout

import (
	"cmp"
	"math"
	"slices"
)

// nodeRow places the nodes of one layer one at a time. Each node is clamped
// between its already placed left and right neighbors (by pos) so that the
// gaps of the packed layer are never shrunk.
type nodeRow struct {
	packed []int // packed x per pos
	placed []*node
}

func newNodeRow(packed []int) *nodeRow {
	return &nodeRow{packed: packed}
}

// gap is the packed distance between the right border of left and the left
// border of right.
func (r *nodeRow) gap(left, right *node) int {
	return r.packed[right.pos] - (r.packed[left.pos] + left.width)
}

// place moves n as close to x as its placed neighbors allow.
func (r *nodeRow) place(n *node, x int) {
	i, _ := slices.BinarySearchFunc(r.placed, n.pos, func(m *node, pos int) int {
		return cmp.Compare(m.pos, pos)
	})

	lo := math.MinInt
	if i > 0 {
		left := r.placed[i-1]
		lo = left.x + left.width + r.gap(left, n)
	}
	hi := math.MaxInt
	if i < len(r.placed) {
		right := r.placed[i]
		hi = right.x - r.gap(n, right) - n.width
	}

	switch {
	case x < lo:
		n.x = lo
	case x > hi:
		n.x = hi
	default:
		n.x = x
	}
	r.placed = slices.Insert(r.placed, i, n)
}
