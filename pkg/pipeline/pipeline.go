// Package pipeline provides the read → layout → render pipeline shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a graph file (JSON, YAML or DOT) and validate it
//  2. Layout: run the layered layout engine, with result caching
//  3. Render: produce artifacts (JSON, YAML, SVG) from a laid-out graph
//
// Each stage can be run independently. The [Runner] owns the cache and the
// logger; it is safe for concurrent use.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	g, err := pipeline.LoadGraph("deps.dot", "")
//	laid, err := runner.Layout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, laid, opts)
//	svg := artifacts["svg"]
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/strata/pkg/cache"
	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCacheTTL is how long laid-out graphs and artifacts are cached.
	DefaultCacheTTL = 7 * 24 * time.Hour

	// DefaultWorkers is the batch concurrency when none is given.
	DefaultWorkers = 4
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Layout is the engine configuration.
	Layout layout.Config `json:"layout"`

	// Check enables the engine's invariant checks.
	Check bool `json:"check,omitempty"`

	// Refresh skips cache lookups (results are still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Padding int      `json:"padding,omitempty"`
	NoLabel bool     `json:"no_labels,omitempty"`

	// CacheTTL applies to every cache write. Zero means DefaultCacheTTL.
	CacheTTL time.Duration `json:"-"`
}

// DefaultOptions returns options with the default engine configuration and
// JSON output.
func DefaultOptions() Options {
	o := Options{Layout: layout.DefaultConfig()}
	o.SetDefaults()
	return o
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Padding == 0 {
		o.Padding = svg.DefaultPadding
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
}

// Validate checks the engine configuration and formats.
func (o *Options) Validate() error {
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// EngineConfig returns the engine configuration with Check applied.
func (o *Options) EngineConfig() layout.Config {
	cfg := o.Layout
	if o.Check {
		cfg.CheckInvariants = true
	}
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Config: o.Layout}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		opts.Padding = o.Padding
		opts.Labels = !o.NoLabel
	case FormatDOT:
		opts.Labels = !o.NoLabel
	}
	return opts
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, yaml, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid and not repeated.
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if slices.Contains(formats[:i], f) {
			return errs.New(errs.ErrCodeInvalidFormat, "format %q given twice", f)
		}
	}
	return nil
}
