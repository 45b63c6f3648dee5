package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// layoutCommand creates the layout command for laying out one graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "layout <graph>",
		Short: "Compute a layered layout for a graph",
		Long: `Compute a layered layout for a graph.

The input is a JSON, YAML or Graphviz DOT graph ("-" reads stdin and needs
--input-format). The result is written next to the input as
<name>.layout.<format>: json and yaml carry the graph with vertex positions
and link routes, svg is a drawing.

Engine options come from strata.toml ([layout] section) and are overridden
by flags. Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, err := c.prepare(cmd, &flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, args[0], flags.inputFormat, flags.outDir, opts)
		},
	}
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, lays it out and writes every requested format.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, input, inputFormat, outDir string, opts pipeline.Options) error {
	g, err := pipeline.LoadGraph(input, inputFormat)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d vertices...", len(g.Vertices)))
	spinner.Start()

	laid, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout %s: %w", input, err)
	}
	artifacts, err := runner.Render(ctx, laid, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(input, outDir, layoutInfix, opts.Formats, artifacts)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(laid.Stats, cacheHit)

	if i := slices.Index(opts.Formats, pipeline.FormatJSON); i >= 0 && !slices.Contains(opts.Formats, pipeline.FormatSVG) {
		printNewline()
		printNextStep("Render", appName+" render "+paths[i])
	}
	return nil
}
