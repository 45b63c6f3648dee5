package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/strata/pkg/graph"
)

// BatchResult is the outcome of one batch input. Err is set instead of
// Graph when the input failed; other inputs are unaffected.
type BatchResult struct {
	Path     string
	Graph    *graph.Graph
	CacheHit bool
	Duration time.Duration
	Err      error
}

// Batch loads and lays out every path with at most workers goroutines.
// Results are returned in input order. The returned error is only set when
// ctx is cancelled.
func (r *Runner) Batch(ctx context.Context, paths []string, opts Options, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	opts.SetDefaults()

	results := make([]BatchResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res := BatchResult{Path: path}
			in, err := LoadGraph(path, "")
			if err == nil {
				res.Graph, res.CacheHit, err = r.LayoutWithCacheInfo(ctx, in, opts)
			}
			res.Err = err
			res.Duration = time.Since(start)
			results[i] = res
			if err != nil {
				r.logger(ctx).Warn("layout failed", "path", path, "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
