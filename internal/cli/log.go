// Package cli implements the salesmap command-line interface.
//
// Commands:
//   - render: fetch, lay out and draw in one step
//   - layout: write the computed layout as <name>.layout.json
//   - visualize: draw a previously written layout
//   - legend: print the platform colour table or write the legend SVG
//   - explore: browse the tiles interactively, or print a platform summary
//   - cache, config, completion: manage local state and shell integration
//
// The root command loads the config file before any subcommand runs and
// attaches the charmbracelet logger to the command context. -v lowers the
// level to debug, which also routes cache and HTTP events to the log.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger that prints short wall-clock timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          appName,
	})
}

// stageTime is one completed step of a command.
type stageTime struct {
	name string
	took time.Duration
}

// progress times a command stage by stage. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
	stages []stageTime
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// lap closes the current stage under name.
func (p *progress) lap(name string) {
	now := time.Now()
	p.stages = append(p.stages, stageTime{name: name, took: now.Sub(p.last)})
	p.last = now
}

// breakdown formats the recorded stages, e.g. "load=12ms layout=1ms".
func (p *progress) breakdown() string {
	parts := make([]string, len(p.stages))
	for i, s := range p.stages {
		parts[i] = fmt.Sprintf("%s=%s", s.name, s.took.Round(time.Millisecond))
	}
	return strings.Join(parts, " ")
}

// done logs msg with the total elapsed time. The per-stage split goes to
// the debug level.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
	if len(p.stages) > 0 {
		p.logger.Debug("stage timings", "stages", p.breakdown())
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the attached logger, or log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && l != nil {
		return l
	}
	return log.Default()
}
