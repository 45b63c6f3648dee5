// Package observability lets the binaries watch layout runs, renders, cache
// traffic and served requests without the libraries importing a metrics
// backend.
//
// Libraries report events through the package-level accessors:
//
//	observability.Layout().OnLayoutStart(ctx, len(g.Vertices), len(g.Links))
//	stats, err := engine.Layout(b, b.Important()...)
//	observability.Layout().OnLayoutComplete(ctx, stats, time.Since(start), err)
//
// Nothing is recorded until a binary installs real hooks at startup, which
// the server does with its prometheus collectors:
//
//	observability.SetLayoutHooks(metrics)
//	observability.SetCacheHooks(metrics)
//	observability.SetHTTPHooks(metrics)
package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/matzehuels/strata/pkg/layout"
)

// LayoutHooks receives events from layout and render runs. Stats is the
// zero value when err is set.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, vertices, links int)
	OnLayoutComplete(ctx context.Context, stats layout.Stats, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is one of the cache package's
// KeyType constants.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives finished requests of the HTTP API. Route is the
// matched route pattern, not the raw path.
type HTTPHooks interface {
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopLayoutHooks ignores every event.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, int, int)                              {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, layout.Stats, time.Duration, error) {}
func (NoopLayoutHooks) OnRenderStart(context.Context, []string)                              {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, []string, time.Duration, error)     {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registered holds one hook set. Values are swapped whole so readers never
// lock.
type registered[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func (r *registered[T]) get() T {
	if p := r.v.Load(); p != nil {
		return *p
	}
	return r.noop
}

var (
	layoutHooks = registered[LayoutHooks]{noop: NoopLayoutHooks{}}
	cacheHooks  = registered[CacheHooks]{noop: NoopCacheHooks{}}
	httpHooks   = registered[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetLayoutHooks installs h. A nil h is ignored.
func SetLayoutHooks(h LayoutHooks) {
	if h != nil {
		layoutHooks.v.Store(&h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.v.Store(&h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpHooks.v.Store(&h)
	}
}

// Layout returns the installed layout hooks.
func Layout() LayoutHooks { return layoutHooks.get() }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op hooks. Tests use it to undo Set calls.
func Reset() {
	layoutHooks.v.Store(nil)
	cacheHooks.v.Store(nil)
	httpHooks.v.Store(nil)
}
