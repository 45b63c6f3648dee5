package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/pipeline"
)

// engineFlags mirrors layout.Config on the command line. Flags only
// override the config file when they are set explicitly.
type engineFlags struct {
	combine            string
	maxLayerLength     int
	minLayerDifference int
	dummyWidth         int
	dummyHeight        int
	xOffset            int
	layerOffset        int
	crossingIterations int
	sweepIterations    int
	vipBonus           int
}

func (f *engineFlags) register(cmd *cobra.Command) {
	def := layout.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.combine, "combine", def.Combine.String(), "long edge merging: none, same-outputs")
	fs.IntVar(&f.maxLayerLength, "max-layer-length", def.MaxLayerLength, "split merged chains longer than this (negative: unlimited)")
	fs.IntVar(&f.minLayerDifference, "min-layer-difference", def.MinLayerDifference, "minimum layer distance of every link")
	fs.IntVar(&f.dummyWidth, "dummy-width", def.DummyWidth, "width of routing points")
	fs.IntVar(&f.dummyHeight, "dummy-height", def.DummyHeight, "height of routing points")
	fs.IntVar(&f.xOffset, "x-offset", def.XOffset, "horizontal gap between neighbors")
	fs.IntVar(&f.layerOffset, "layer-offset", def.LayerOffset, "vertical gap between layers")
	fs.IntVar(&f.crossingIterations, "crossing-iterations", def.CrossingIterations, "crossing reduction passes")
	fs.IntVar(&f.sweepIterations, "sweep-iterations", def.SweepIterations, "down/up sweeps per pass")
	fs.IntVar(&f.vipBonus, "vip-bonus", def.VIPBonus, "crossing weight of VIP links")
}

// apply copies every explicitly set flag into cfg.
func (f *engineFlags) apply(cmd *cobra.Command, cfg *layout.Config) error {
	fs := cmd.Flags()
	if fs.Changed("combine") {
		c, err := layout.ParseCombine(f.combine)
		if err != nil {
			return err
		}
		cfg.Combine = c
	}
	ints := []struct {
		name string
		src  int
		dst  *int
	}{
		{"max-layer-length", f.maxLayerLength, &cfg.MaxLayerLength},
		{"min-layer-difference", f.minLayerDifference, &cfg.MinLayerDifference},
		{"dummy-width", f.dummyWidth, &cfg.DummyWidth},
		{"dummy-height", f.dummyHeight, &cfg.DummyHeight},
		{"x-offset", f.xOffset, &cfg.XOffset},
		{"layer-offset", f.layerOffset, &cfg.LayerOffset},
		{"crossing-iterations", f.crossingIterations, &cfg.CrossingIterations},
		{"sweep-iterations", f.sweepIterations, &cfg.SweepIterations},
		{"vip-bonus", f.vipBonus, &cfg.VIPBonus},
	}
	for _, i := range ints {
		if fs.Changed(i.name) {
			*i.dst = i.src
		}
	}
	return nil
}

// runFlags are the flags shared by every command that lays out graphs.
type runFlags struct {
	engine      engineFlags
	inputFormat string
	formats     string
	outDir      string
	noCache     bool
	refresh     bool
	check       bool
	noLabels    bool
	padding     int
}

func (f *runFlags) register(cmd *cobra.Command) {
	f.engine.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.inputFormat, "input-format", "", "input format: json, yaml, dot (default: from extension)")
	fs.StringVarP(&f.formats, "format", "f", "", "output formats: json, yaml, svg, dot (comma-separated)")
	fs.StringVarP(&f.outDir, "output", "o", "", "output directory (default: next to the input)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
	fs.BoolVar(&f.check, "check", false, "verify layout invariants after every phase")
	fs.BoolVar(&f.noLabels, "no-labels", false, "omit vertex labels in SVG output")
	fs.IntVar(&f.padding, "padding", 0, "SVG padding around the drawing")
}

// prepare loads the config file, applies the flags and builds a runner.
func (c *CLI) prepare(cmd *cobra.Command, f *runFlags) (*pipeline.Runner, pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	if err := f.engine.apply(cmd, &cfg.Layout); err != nil {
		return nil, pipeline.Options{}, err
	}
	opts, err := pipelineOptions(cfg)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	opts.Formats = parseFormats(f.formats)
	opts.Check = f.check
	opts.Refresh = f.refresh
	opts.NoLabel = f.noLabels
	if f.padding > 0 {
		opts.Padding = f.padding
	}
	if err := opts.Validate(); err != nil {
		return nil, pipeline.Options{}, err
	}

	runner, err := c.newRunner(cfg.Cache, f.noCache)
	if err != nil {
		return nil, pipeline.Options{}, err
	}
	return runner, opts, nil
}
