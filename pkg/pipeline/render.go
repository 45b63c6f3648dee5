package pipeline

import (
	"fmt"

	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/render/dot"
	"github.com/matzehuels/strata/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
func Render(g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(g, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat generates a single artifact.
func RenderFormat(g *graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.Marshal(g, graph.FormatJSON)
	case FormatYAML:
		return graph.Marshal(g, graph.FormatYAML)
	case FormatSVG:
		return svg.RenderSVG(g, svgOptions(opts)...), nil
	case FormatDOT:
		return dot.RenderDOT(g, dot.WithLabels(!opts.NoLabel)), nil
	}
	return nil, ValidateFormat(format)
}

func svgOptions(opts Options) []svg.Option {
	return []svg.Option{
		svg.WithPadding(opts.Padding),
		svg.WithLabels(!opts.NoLabel),
	}
}
