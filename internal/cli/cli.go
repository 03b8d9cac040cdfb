package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/salesmap/pkg/buildinfo"
	"github.com/matzehuels/salesmap/pkg/cache"
	"github.com/matzehuels/salesmap/pkg/config"
	"github.com/matzehuels/salesmap/pkg/observability"
	"github.com/matzehuels/salesmap/pkg/observability/prom"
	"github.com/matzehuels/salesmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "salesmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before every command from --config (or the default
	// location). Flags that are set explicitly take precedence over it.
	Config config.Config

	configPath  string
	cacheTarget string
	metricsFile string
	metrics     *prom.Metrics
	verbose     bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Salesmap renders sales data as a treemap",
		Long: `Salesmap fetches a hierarchical sales dataset (platform → game → units sold),
lays it out as a squarified treemap and renders it as SVG, HTML, JSON, PNG or PDF,
with one colour per platform and a legend.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging and cache/HTTP event logs")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")
	root.PersistentFlags().StringVar(&c.cacheTarget, "cache", "", `cache backend: directory, "none" or redis://host:port/db`)
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the command")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and installs observability hooks.
func (c *CLI) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.installHooks()
	return nil
}

// installHooks registers debug logging (at debug level) and Prometheus
// metrics (when --metrics-file is set). Cache and HTTP events go to metrics
// when enabled, otherwise to the log.
func (c *CLI) installHooks() {
	var pipelineHooks observability.Fanout
	logHooks := observability.LogHooks{Logger: c.Logger}
	if c.Logger.GetLevel() <= log.DebugLevel {
		pipelineHooks = append(pipelineHooks, logHooks)
		observability.SetCacheHooks(logHooks)
		observability.SetHTTPHooks(logHooks)
	}
	if c.metricsFile != "" {
		c.metrics = prom.New()
		pipelineHooks = append(pipelineHooks, c.metrics)
		observability.SetCacheHooks(c.metrics)
		observability.SetHTTPHooks(c.metrics)
	}
	if len(pipelineHooks) > 0 {
		observability.SetPipelineHooks(pipelineHooks)
	}
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteFile(c.metricsFile); err != nil {
		return err
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.Config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// openCache resolves the cache backend: --no-cache, then --cache, then the
// config file, then the XDG cache directory.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	target := c.cacheTarget
	if target == "" {
		target = c.Config.Cache.Target
	}
	dir, err := cacheDir()
	if err != nil && target == "" {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, target, dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/salesmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionsFromConfig seeds pipeline options from the loaded config.
func (c *CLI) optionsFromConfig() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Source:      cfg.Source.URL,
		Delay:       cfg.Source.Delay(),
		Retries:     cfg.Source.Retries,
		Width:       cfg.Layout.Width,
		Height:      cfg.Layout.Height,
		Tiling:      cfg.Layout.Tiling,
		Round:       cfg.Layout.Round,
		Formats:     append([]string(nil), cfg.Render.Formats...),
		Style:       cfg.Render.Style,
		Tooltips:    cfg.Render.Tooltips,
		Title:       cfg.Render.Title,
		Description: cfg.Render.Description,
		Scale:       cfg.Render.Scale,
		Palette:     cfg.Palette,
		Logger:      c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}
