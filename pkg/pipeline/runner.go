package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/strata/pkg/cache"
	errs "github.com/matzehuels/strata/pkg/errors"
	"github.com/matzehuels/strata/pkg/graph"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// LayoutWithCacheInfo lays out a copy of g and reports whether the result
// came from the cache. The input graph is not modified. Any layout output
// already present on g is ignored.
//
// A cached result carries the vertex and link order of the graph that
// produced it, which may differ from g's when only the order differs.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(g.Hash(), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := graph.Unmarshal(data, graph.FormatJSON)
			if err == nil && cached.Laid() {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
				r.logger(ctx).Debug("layout cache hit", "key", cacheKey)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.logger(ctx).Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	laid, err := r.compute(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.Marshal(laid, graph.FormatJSON); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, opts.CacheTTL); err != nil {
			r.logger(ctx).Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}
	return laid, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, error) {
	laid, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return laid, err
}

// compute runs the engine on a clone of g.
func (r *Runner) compute(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, error) {
	work := g.Clone()
	work.Reset()

	engine, err := layout.New(opts.EngineConfig())
	if err != nil {
		return nil, err
	}
	b, err := work.Bind()
	if err != nil {
		return nil, err
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(work.Vertices), len(work.Links))
	start := time.Now()
	stats, err := engine.Layout(b, b.Important()...)
	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, stats, elapsed, err)
	if err != nil {
		return nil, err
	}
	work.Stats = &stats

	r.logger(ctx).Info("computed layout",
		"vertices", stats.Vertices,
		"links", stats.Links,
		"layers", stats.Layers,
		"dummies", stats.Dummies,
		"reversed", stats.ReversedLinks,
		"crossings", stats.Crossings,
		"duration", elapsed)
	return work, nil
}

// RenderWithCacheInfo renders a laid-out graph in every requested format
// and reports whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if !g.Laid() {
		return nil, false, errs.New(errs.ErrCodeInvalidInput, "graph has no layout; run layout first")
	}

	layoutData, err := graph.Marshal(g, graph.FormatJSON)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
		}
	}
	r.logger(ctx).Debug("rendered outputs", "formats", opts.Formats, "duration", time.Since(start))
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the logger attached to ctx with log.WithContext, so that
// request fields end up on pipeline log lines, or the runner's own.
func (r *Runner) logger(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(log.ContextKey).(*log.Logger); ok && l != nil {
		return l
	}
	return r.Logger
}
