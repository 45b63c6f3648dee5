// Package layout computes hierarchical (layered) drawings of directed graphs.
//
// # Overview
//
// The engine takes caller-owned vertices and links, described by the
// [Vertex], [Link], [Port] and [Graph] interfaces, and writes back an integer
// position for every vertex and a [Route] for every link. Links flow downward
// through discrete layers, edge crossings between adjacent layers are
// reduced, and VIP links are drawn as straight as the ordering allows.
//
// # Phases
//
// A call to [Engine.Layout] runs these phases in order, each once:
//
//  1. Build: wrap vertices and links into an arena of nodes and edges.
//  2. Cycle breaking: drop self-loops, reverse the incoming edges of root
//     vertices, then reverse every back edge found by an iterative DFS.
//     Reversed edges reserve margin space on their endpoints so the final
//     route can loop around the vertex.
//  3. Layering: two longest-path wave sweeps; the upward sweep is kept.
//  4. Dummy insertion: edges spanning several layers become chains of
//     unit-size dummy nodes, optionally shared per source port
//     ([CombineSameOutputs]).
//  5. Crossing reduction: barycenter down/up sweeps with VIP weighting.
//  6. X assignment: median pulls clamped against already placed neighbors so
//     that the within-layer order and spacing are preserved.
//  7. Y assignment: one band per layer, extra space for skewed edges.
//  8. Result writing: every link is walked once, dummy chains and reversal
//     detours are merged into a route, and the drawing is translated so
//     that its minimum coordinates are zero.
//
// # Concurrency
//
// An [Engine] holds configuration only. Every call builds its own working
// state, so one engine may serve concurrent calls on distinct graphs.
//
// # Usage
//
//	engine, err := layout.New(layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	stats, err := engine.Layout(g)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(stats.Layers, stats.Crossings)
//
// # Invariant Checks
//
// Setting [Config.CheckInvariants] verifies the graph after each phase
// (acyclicity, monotone layers, adjacent-layer edges, layer membership) and
// fails with [ErrInvariant]. The checks are meant for tests and debugging.
package layout
