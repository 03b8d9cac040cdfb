package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level.
// The CLI installs it when running with --verbose.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load start", "source", source)
}

func (h LogHooks) OnLoadComplete(_ context.Context, source string, leafCount int, d time.Duration, err error) {
	h.Logger.Debug("load done", "source", source, "leaves", leafCount, "took", d, "err", err)
}

func (h LogHooks) OnLayoutStart(_ context.Context, tiling string, leafCount int) {
	h.Logger.Debug("layout start", "tiling", tiling, "leaves", leafCount)
}

func (h LogHooks) OnLayoutComplete(_ context.Context, tiling string, d time.Duration, err error) {
	h.Logger.Debug("layout done", "tiling", tiling, "took", d, "err", err)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("render done", "formats", formats, "took", d, "err", err)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, code int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", code, "took", d)
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

// Fanout combines pipeline hooks so several backends receive each event.
type Fanout []PipelineHooks

func (f Fanout) OnLoadStart(ctx context.Context, source string) {
	for _, h := range f {
		h.OnLoadStart(ctx, source)
	}
}

func (f Fanout) OnLoadComplete(ctx context.Context, source string, leafCount int, d time.Duration, err error) {
	for _, h := range f {
		h.OnLoadComplete(ctx, source, leafCount, d, err)
	}
}

func (f Fanout) OnLayoutStart(ctx context.Context, tiling string, leafCount int) {
	for _, h := range f {
		h.OnLayoutStart(ctx, tiling, leafCount)
	}
}

func (f Fanout) OnLayoutComplete(ctx context.Context, tiling string, d time.Duration, err error) {
	for _, h := range f {
		h.OnLayoutComplete(ctx, tiling, d, err)
	}
}

func (f Fanout) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range f {
		h.OnRenderStart(ctx, formats)
	}
}

func (f Fanout) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range f {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
	_ PipelineHooks = Fanout(nil)
)
