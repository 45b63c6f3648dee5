package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/pipeline"
)

// statsCommand creates the stats command, which lays out a graph and prints
// its statistics without writing any output files.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		flags  runFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats <graph>",
		Short: "Print layout statistics for a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, err := c.prepare(cmd, &flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, err := pipeline.LoadGraph(args[0], flags.inputFormat)
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			laid, _, err := runner.LayoutWithCacheInfo(cmd.Context(), g, opts)
			if err != nil {
				return fmt.Errorf("layout %s: %w", args[0], err)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(laid.Stats)
			}
			fmt.Println(StyleTitle.Render(args[0]))
			fmt.Println(statsTable(*laid.Stats))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}
