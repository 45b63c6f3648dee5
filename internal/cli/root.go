package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Strata draws directed graphs in layers",
		Long: `Strata computes layered (Sugiyama-style) drawings of directed graphs.

Vertices are assigned to horizontal layers so that links point downward,
ordered to reduce crossings and placed so that links run straight. Input
graphs are JSON, YAML or Graphviz DOT; results are written as laid-out
JSON/YAML graphs or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(c.commandContext(cmd.Context()))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./"+configFileName+" if present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
