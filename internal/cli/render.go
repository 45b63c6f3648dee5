package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/pipeline"
)

// renderCommand creates the render command, which draws a graph that was
// already laid out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		outDir   string
		noCache  bool
		noLabels bool
		padding  int
	)

	cmd := &cobra.Command{
		Use:   "render <layout>",
		Short: "Render a laid-out graph to SVG",
		Long: `Render a laid-out graph (the json or yaml output of 'layout').

Vertex positions and link routes are taken from the input as they are; no
layout is computed. The default output is <name>.svg next to the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := pipelineOptions(cfg)
			if err != nil {
				return err
			}
			opts.Formats = []string{pipeline.FormatSVG}
			opts.NoLabel = noLabels
			if padding > 0 {
				opts.Padding = padding
			}

			g, err := graph.ReadFile(input)
			if err != nil {
				return fmt.Errorf("load layout %s: %w", input, err)
			}
			if !g.Laid() {
				return errs.New(errs.ErrCodeInvalidInput, "%s has no layout; run '%s layout' first", input, appName)
			}

			runner, err := c.newRunner(cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			artifacts, cacheHit, err := runner.RenderWithCacheInfo(cmd.Context(), g, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", input, err)
			}
			paths, err := writeArtifacts(input, outDir, renderInfix, opts.Formats, artifacts)
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			printSuccess("Render complete")
			for _, p := range paths {
				printFile(p)
			}
			printStats(g.Stats, cacheHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default: next to the input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit vertex labels")
	cmd.Flags().IntVar(&padding, "padding", 0, "padding around the drawing")

	return cmd
}
