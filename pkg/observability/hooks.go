// Package observability lets the CLI attach logging or metrics to the
// library without the library importing either.
//
// Three event families exist: pipeline stages (load, layout, render), cache
// lookups, and outgoing HTTP requests. Each has an interface, a no-op
// default and a process-wide slot set once at startup:
//
//	observability.SetPipelineHooks(observability.LogHooks{Logger: logger})
//	observability.SetCacheHooks(prom.New())
//
// Library code reads the slot at the point of the event:
//
//	observability.Pipeline().OnLoadStart(ctx, url)
//
// See the prom subpackage for a Prometheus backend.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives load, layout and render events.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, leafCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, tiling string, leafCount int)
	OnLayoutComplete(ctx context.Context, tiling string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is one of "dataset", "layout"
// or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for dataset fetches.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError is called for transport failures only; HTTP error statuses
	// arrive through OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

type nopHooks struct{}

func (nopHooks) OnLoadStart(context.Context, string)                                    {}
func (nopHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)      {}
func (nopHooks) OnLayoutStart(context.Context, string, int)                             {}
func (nopHooks) OnLayoutComplete(context.Context, string, time.Duration, error)         {}
func (nopHooks) OnRenderStart(context.Context, []string)                                {}
func (nopHooks) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (nopHooks) OnCacheHit(context.Context, string)                                     {}
func (nopHooks) OnCacheMiss(context.Context, string)                                    {}
func (nopHooks) OnCacheSet(context.Context, string, int)                                {}
func (nopHooks) OnRequest(context.Context, string, string, string)                      {}
func (nopHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (nopHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is replaced wholesale on every Set call, so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }

func Cache() CacheHooks { return current.Load().cache }

func HTTP() HTTPHooks { return current.Load().http }

// Reset puts the no-op hooks back. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{pipeline: nopHooks{}, cache: nopHooks{}, http: nopHooks{}})
}
