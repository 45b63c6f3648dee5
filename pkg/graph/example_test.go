package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
)

func ExampleGraph_Bind() {
	g, err := graph.ReadYAML(strings.NewReader(`
vertices:
  - {id: app, width: 20, height: 10}
  - {id: lib, width: 20, height: 10}
links:
  - {from: {vertex: app}, to: {vertex: lib}}
`))
	if err != nil {
		panic(err)
	}

	b, err := g.Bind()
	if err != nil {
		panic(err)
	}
	engine, _ := layout.New(layout.DefaultConfig())
	if _, err := engine.Layout(b, b.Important()...); err != nil {
		panic(err)
	}

	for _, v := range g.Vertices {
		fmt.Println(v.ID, *v.Position)
	}
	fmt.Println(g.Links[0].Route)
	// Output:
	// app {0 0}
	// lib {0 40}
	// [[{10 10} {10 40}]]
}
