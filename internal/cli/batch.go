package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// batchCommand creates the batch command for laying out many graphs
// concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags   runFlags
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch <graph>...",
		Short: "Lay out many graphs concurrently",
		Long: `Lay out many graphs concurrently.

Each input is handled like 'layout'. A failing input is reported and does not
stop the others; the command fails if any input failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, err := c.prepare(cmd, &flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runBatch(cmd.Context(), runner, args, flags.outDir, opts, workers)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", pipeline.DefaultWorkers, "number of concurrent layouts")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, runner *pipeline.Runner, inputs []string, outDir string, opts pipeline.Options, workers int) error {
	sw := startStopwatch(c.Logger)

	results, err := runner.Batch(ctx, inputs, opts, workers)
	if err != nil {
		return err
	}

	failed := 0
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			failed++
			continue
		}
		artifacts, err := runner.Render(ctx, r.Graph, opts)
		if err == nil {
			_, err = writeArtifacts(r.Path, outDir, layoutInfix, opts.Formats, artifacts)
		}
		if err != nil {
			r.Err = err
			failed++
		}
	}

	fmt.Println(batchTable(results))
	sw.done("Laid out %d of %d graphs", len(results)-failed, len(results))

	for _, r := range results {
		if r.Err != nil {
			printError("%s: %v", r.Path, r.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d graphs failed", failed, len(results))
	}
	return nil
}

// batchTable renders one row per batch input.
func batchTable(results []pipeline.BatchResult) string {
	rows := make([][]string, len(results))
	for i, r := range results {
		row := []string{filepath.Base(r.Path), "-", "-", "-", iconFailed}
		if r.Err == nil && r.Graph.Stats != nil {
			st := r.Graph.Stats
			row[1] = strconv.Itoa(st.Vertices)
			row[2] = strconv.Itoa(st.Layers)
			row[3] = strconv.Itoa(st.Crossings)
			row[4] = iconFresh
			if r.CacheHit {
				row[4] = iconCached
			}
		}
		rows[i] = row
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Graph", "Vertices", "Layers", "Crossings", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col != 4 {
				return StyleValue
			}
			switch rows[row][4] {
			case iconCached:
				return styleCached
			case iconFailed:
				return styleFailed
			}
			return styleComputed
		}).
		Render()
}
