package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("cached dataset") }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"warn at info", LogInfo, func(l *log.Logger) { l.Warn("cache write failed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v (%q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestNewLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("ready")
	if !strings.Contains(buf.String(), appName) {
		t.Errorf("log line %q lacks prefix %q", buf.String(), appName)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Rendered sales.json")

	out := buf.String()
	if !strings.Contains(out, "Rendered sales.json (") {
		t.Errorf("done output = %q", out)
	}
	if strings.Contains(out, "stage timings") {
		t.Errorf("stage timings logged at info level: %q", out)
	}
}

func TestProgressLaps(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogDebug))

	prog.lap("load")
	time.Sleep(2 * time.Millisecond)
	prog.lap("layout")

	if len(prog.stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(prog.stages))
	}
	if prog.stages[1].took < 2*time.Millisecond {
		t.Errorf("layout lap = %v, want >= 2ms", prog.stages[1].took)
	}
	b := prog.breakdown()
	if !strings.HasPrefix(b, "load=") || !strings.Contains(b, " layout=") {
		t.Errorf("breakdown = %q", b)
	}

	prog.done("Rendered")
	if !strings.Contains(buf.String(), "stage timings") {
		t.Errorf("debug output lacks stage timings: %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, LogInfo)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("attached logger not returned")
	}

	if loggerFromContext(withLogger(context.Background(), nil)) != log.Default() {
		t.Error("nil logger should fall back to log.Default()")
	}
}
