// Package graph provides the serialization types for layout input and output.
//
// A [Graph] is a list of [Vertex] values and [Link] values between their
// ports. The same type is read before layout and written after it: the
// layout engine fills in [Vertex.Position] and [Link.Route].
//
// # Formats
//
// Graphs are read from JSON, YAML or Graphviz DOT and written as JSON or
// YAML:
//
//	{
//	  "vertices": [{"id": "app", "width": 80, "height": 30}, {"id": "lib"}],
//	  "links": [{"from": {"vertex": "app"}, "to": {"vertex": "lib"}, "vip": true}]
//	}
//
// [ReadFile] and [WriteFile] pick the format from the file extension.
// DOT input reads the node attributes width, height (in points), label and
// root=true, and the edge attributes vip=true and important=true.
//
// # Defaults
//
// Vertices without a size get [DefaultWidth] x [DefaultHeight]. Ports without
// an explicit X attach at the horizontal center of their vertex.
//
// # Layout
//
// [Graph.Bind] validates the graph and returns a view implementing
// layout.Graph whose setters write back into the Graph:
//
//	b, err := g.Bind()
//	if err != nil {
//	    return err
//	}
//	stats, err := engine.Layout(b, b.Important()...)
//
// # Concurrency
//
// A Graph is a plain value. Concurrent reads are safe; laying out the same
// Graph from two goroutines is not.
package graph
