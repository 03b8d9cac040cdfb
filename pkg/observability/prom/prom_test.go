package prom

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/salesmap/pkg/observability"
)

func TestMetricsRecordStages(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnLoadComplete(ctx, "sales.json", 100, 20*time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "squarify", time.Millisecond, nil)
	m.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(m.leaves); got != 100 {
		t.Errorf("leaves gauge = %v, want 100", got)
	}
	if got := testutil.ToFloat64(m.stageTotal.WithLabelValues("load", "ok")); got != 1 {
		t.Errorf("load ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.stageTotal.WithLabelValues("render", "error")); got != 1 {
		t.Errorf("render error = %v, want 1", got)
	}
}

func TestMetricsRecordCacheAndHTTP(t *testing.T) {
	ctx := context.Background()
	m := New()

	m.OnCacheMiss(ctx, "dataset")
	m.OnCacheSet(ctx, "dataset", 2048)
	m.OnCacheHit(ctx, "dataset")
	m.OnResponse(ctx, "GET", "cdn.example.com", "/data.json", 200, time.Millisecond)
	m.OnError(ctx, "GET", "cdn.example.com", "/data.json", errors.New("timeout"))

	if got := testutil.ToFloat64(m.cacheBytes); got != 2048 {
		t.Errorf("cache bytes = %v, want 2048", got)
	}
	if got := testutil.ToFloat64(m.cacheEvents.WithLabelValues("dataset", "hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("cdn.example.com", "200")); got != 1 {
		t.Errorf("http 200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.httpErrors); got != 1 {
		t.Errorf("http errors = %v, want 1", got)
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.OnLayoutComplete(context.Background(), "binary", time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "salesmap.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `salesmap_stage_total{stage="layout",status="ok"} 1`) {
		t.Errorf("textfile missing layout counter:\n%s", data)
	}
}

func TestRegister(t *testing.T) {
	defer observability.Reset()

	m := New()
	m.Register()
	if observability.Pipeline() != m || observability.Cache() != m || observability.HTTP() != m {
		t.Error("Register() should install m for all hook kinds")
	}
}
