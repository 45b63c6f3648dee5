// Package pkg provides the libraries behind strata, a layered graph layout
// engine.
//
// # Overview
//
// Strata draws directed graphs top to bottom in layers: links point down,
// long links are routed through dummy points between layers, and vertices
// within a layer are ordered to keep crossings low. The pkg directory is
// organized into these areas:
//
//  1. [layout] - The engine (cycle breaking, layering, ordering, placement, routing)
//  2. [graph] - Serializable graphs and the adapter that feeds them to the engine
//  3. render/svg, render/dot - SVG and Graphviz DOT output for laid-out graphs
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [store] - Result caching and persistence of laid-out graphs
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML / DOT file
//	         ↓
//	   graph.ReadFile
//	         ↓
//	   graph.Bind ──→ layout.Engine.Layout
//	         ↓
//	   svg.RenderSVG / dot.RenderDOT
//
// The engine only sees the [layout.Graph] interfaces, so callers with their
// own graph types can implement those instead of going through [graph].
//
// # Supporting Packages
//
//   - [errors] - Coded errors with user-facing messages
//   - [observability] - Hooks for metrics and logging
//   - [buildinfo] - Version information set at build time
package pkg
