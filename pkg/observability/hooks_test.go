package observability

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/strata/pkg/layout"
)

type recordingHooks struct {
	NoopLayoutHooks
	started   int
	completed []layout.Stats
}

func (r *recordingHooks) OnLayoutStart(context.Context, int, int) { r.started++ }

func (r *recordingHooks) OnLayoutComplete(_ context.Context, st layout.Stats, _ time.Duration, _ error) {
	r.completed = append(r.completed, st)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("Layout() = %T, want NoopLayoutHooks", Layout())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}
}

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	r := &recordingHooks{}
	SetLayoutHooks(r)
	SetLayoutHooks(nil) // ignored

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, 3, 2)
	Layout().OnLayoutComplete(ctx, layout.Stats{Layers: 2}, time.Millisecond, nil)
	Layout().OnRenderStart(ctx, []string{"svg"})

	if r.started != 1 || len(r.completed) != 1 || r.completed[0].Layers != 2 {
		t.Errorf("recorded started=%d completed=%v", r.started, r.completed)
	}

	Reset()
	if Layout() == LayoutHooks(r) {
		t.Error("Reset kept custom hooks")
	}
}
