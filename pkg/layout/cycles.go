package layout

import "slices"

// breakCycles turns the working graph into a DAG.
//
// Self-loops are dropped, root vertices whose predecessors are not roots get
// all their incoming edges reversed, and every back edge found by a DFS is
// reversed. With important links, a first DFS only descends along them;
// a second, unrestricted DFS then breaks whatever cycles remain.
func (s *state) breakCycles() {
	s.removeSelfLoops()
	s.reverseRootInputs()
	if len(s.important) > 0 {
		s.reverseBackEdges(true)
	}
	s.reverseBackEdges(false)
	for _, n := range s.nodes {
		s.reserveReversedSpace(n)
	}
}

func (s *state) removeSelfLoops() {
	for _, n := range s.nodes {
		for _, id := range slices.Clone(n.succs) {
			e := s.edges[id]
			if e.to != n.id {
				continue
			}
			n.succs = removeID(n.succs, id)
			n.preds = removeID(n.preds, id)
			s.selfLoops = append(s.selfLoops, e.link)
		}
	}
}

func (s *state) reverseRootInputs() {
	for _, n := range s.nodes {
		if !s.vertices[n.vertex].Root() {
			continue
		}
		rootPred := false
		for _, id := range n.preds {
			if s.vertices[s.source(s.edges[id]).vertex].Root() {
				rootPred = true
				break
			}
		}
		if rootPred {
			continue
		}
		for _, id := range slices.Clone(n.preds) {
			s.reverseEdge(s.edges[id])
		}
	}
}

// reverseEdge swaps the endpoints and attachment offsets of e and toggles
// the reversed mark of its link.
func (s *state) reverseEdge(e *edge) {
	from, to := s.nodes[e.from], s.nodes[e.to]
	from.succs = removeID(from.succs, e.id)
	to.preds = removeID(to.preds, e.id)

	e.from, e.to = e.to, e.from
	e.relativeFrom, e.relativeTo = e.relativeTo, e.relativeFrom

	to.succs = append(to.succs, e.id)
	from.preds = append(from.preds, e.id)
	s.reversed[e.link] = !s.reversed[e.link]
}

// dfsFrame is one entry of the explicit DFS stack. succs is a snapshot taken
// when the node was entered.
type dfsFrame struct {
	node  int
	succs []int
	next  int
}

// reverseBackEdges runs an iterative DFS from every unvisited node and
// reverses each edge that points to a node on the current path.
//
// With important links, DFS roots are the heads of important chains first
// and important edges are explored before the others, so that back edges
// tend to fall on ordinary links.
func (s *state) reverseBackEdges(importantOnly bool) {
	visited := make([]bool, len(s.nodes))
	active := make([]bool, len(s.nodes))

	for _, root := range s.dfsRoots() {
		if visited[root] {
			continue
		}
		visited[root], active[root] = true, true
		stack := []dfsFrame{{node: root, succs: s.dfsSuccs(root)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.succs) {
				active[top.node] = false
				stack = stack[:len(stack)-1]
				continue
			}
			e := s.edges[top.succs[top.next]]
			top.next++

			switch {
			case active[e.to]:
				s.reverseEdge(e)
			case visited[e.to]:
			case importantOnly && !s.important[e.link]:
			default:
				visited[e.to], active[e.to] = true, true
				stack = append(stack, dfsFrame{node: e.to, succs: s.dfsSuccs(e.to)})
			}
		}
	}
}

// dfsRoots returns node ids in vertex order, with nodes that start an
// important chain moved to the front.
func (s *state) dfsRoots() []int {
	roots := make([]int, len(s.nodes))
	for i := range roots {
		roots[i] = i
	}
	if len(s.important) == 0 {
		return roots
	}
	head := func(id int) bool {
		n := s.nodes[id]
		for _, eid := range n.preds {
			if s.important[s.edges[eid].link] {
				return false
			}
		}
		for _, eid := range n.succs {
			if s.important[s.edges[eid].link] {
				return true
			}
		}
		return false
	}
	slices.SortStableFunc(roots, func(a, b int) int {
		ha, hb := head(a), head(b)
		switch {
		case ha == hb:
			return 0
		case ha:
			return -1
		default:
			return 1
		}
	})
	return roots
}

// dfsSuccs snapshots the outgoing edges of a node, important ones first.
func (s *state) dfsSuccs(id int) []int {
	succs := slices.Clone(s.nodes[id].succs)
	if len(s.important) > 0 {
		slices.SortStableFunc(succs, func(a, b int) int {
			ia, ib := s.important[s.edges[a].link], s.important[s.edges[b].link]
			switch {
			case ia == ib:
				return 0
			case ia:
				return -1
			default:
				return 1
			}
		})
	}
	return succs
}

// reserveReversedSpace widens n and adds top and bottom margins so that its
// reversed edges can be drawn as loops around the vertex.
//
// A reversed outgoing edge enters the vertex from the top in the drawing:
// it leaves through a slot on the right, climbs to a row in the top margin
// and drops into its port. A reversed incoming edge leaves the vertex from
// the bottom: it descends to a row in the bottom margin and runs to a slot
// on the right, or on the left when the right side is already taken by
// outgoing loops, where it meets the edge arriving from above.
func (s *state) reserveReversedSpace(n *node) {
	var down, up []int
	for _, id := range n.succs {
		if e := s.edges[id]; s.reversed[e.link] {
			down = append(down, e.relativeFrom)
		}
	}
	for _, id := range n.preds {
		if e := s.edges[id]; s.reversed[e.link] {
			up = append(up, e.relativeTo)
		}
	}
	if len(down) == 0 && len(up) == 0 {
		return
	}

	slices.Sort(down)
	down = slices.Compact(down)
	slices.Sort(up)
	up = slices.Compact(up)
	leftSide := len(down) > 0 && len(up) > 0
	if !leftSide {
		// Rightmost port first: its loop is the innermost one.
		slices.Reverse(up)
	}

	gap := s.cfg.XOffset + s.cfg.DummyWidth
	width := n.width

	shift := 0
	if leftSide {
		shift = len(up) * gap
		for _, id := range n.succs {
			s.edges[id].relativeFrom += shift
		}
		for _, id := range n.preds {
			s.edges[id].relativeTo += shift
		}
		n.xOffset = shift
	}

	top := len(down) * gap
	for k, pos := range down {
		slot := shift + width + (len(down)-k)*gap
		row := k * gap
		port := pos + shift
		for _, id := range n.succs {
			e := s.edges[id]
			if s.reversed[e.link] && e.relativeFrom == port {
				e.relativeFrom = slot
				s.startDetours[e.link] = []Point{{slot, row}, {port, row}, {port, top}}
			}
		}
		n.inOffsets[port] = row - top
	}
	n.yOffset = top
	n.height += top
	n.width = shift + width + len(down)*gap

	bottom := n.height
	for k, pos := range up {
		var slot int
		if leftSide {
			slot = shift - (k+1)*gap
		} else {
			slot = n.width + (k+1)*gap
		}
		row := bottom + (k+1)*gap
		port := pos + shift
		for _, id := range n.preds {
			e := s.edges[id]
			if s.reversed[e.link] && e.relativeTo == port {
				e.relativeTo = slot
				s.endDetours[e.link] = []Point{{slot, row}, {port, row}, {port, bottom}}
			}
		}
		n.outOffsets[port] = (k + 1) * gap
	}
	n.bottomYOffset = len(up) * gap
	n.height += n.bottomYOffset
	if !leftSide {
		n.width += len(up) * gap
	}
}
