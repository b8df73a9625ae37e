// Package cli implements the coursemap command-line interface.
//
// The commands read curriculum maps (.json, .yaml or .yml), validate their
// prerequisite structure, compute positions, and render diagrams:
//
//   - layout: compute positions and write a layout file or the map itself
//   - validate: report cycles and dangling prerequisites
//   - check: report whether stored positions need a new layout
//   - render: write SVG, PNG or DOT diagrams
//   - watch: re-validate and re-lay-out a map whenever it changes
//   - cache: inspect or clear the layout cache
//
// Settings come from a TOML config file and are overridden by flags.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/buildinfo"
	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/observability"
	"github.com/matzehuels/coursemap/pkg/observability/prom"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "coursemap"

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
	Config Config

	configPath string
	metrics    *prom.Metrics
	out        io.Writer
	spin       io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
		out:    os.Stdout,
		spin:   os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output to w and silences the spinner.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
	c.spin = nil
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Coursemap lays out and validates prerequisite maps",
		Long: `Coursemap computes deterministic positions for curriculum maps (courses,
modules and programs connected by prerequisites) and reports circular or
dangling prerequisites.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/coursemap/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	c.flushOnExit(root)
	return root
}

// flushOnExit wraps every RunE in the tree so metrics are flushed whether
// the command succeeds or fails. Cobra skips post-run hooks on error.
func (c *CLI) flushOnExit(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer c.flushMetrics()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		c.flushOnExit(sub)
	}
}

// setup loads the config file and installs metrics hooks when a metrics
// file is configured.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	if cfg.MetricsFile != "" && c.metrics == nil {
		c.metrics = prom.New(prometheus.NewRegistry())
		c.metrics.Register()
	}
	return nil
}

// flushMetrics writes collected metrics to the configured textfile. Write
// failures are logged, never returned.
func (c *CLI) flushMetrics() {
	if c.metrics == nil {
		return
	}
	defer func() {
		observability.Reset()
		c.metrics = nil
	}()
	if err := c.metrics.WriteTextfile(c.Config.MetricsFile); err != nil {
		c.Logger.Warn("write metrics", "path", c.Config.MetricsFile, "error", err)
		return
	}
	c.Logger.Debug("wrote metrics", "path", c.Config.MetricsFile)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// openCache opens the configured cache backend. A file cache that cannot
// be created degrades to no caching.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg, err := c.cacheConfig()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendRedis {
			return nil, err
		}
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

func (c *CLI) cacheConfig() (cache.Config, error) {
	cfg := cache.Config{
		Backend:  c.Config.Cache.Backend,
		Dir:      c.Config.Cache.Dir,
		RedisURL: c.Config.Cache.RedisURL,
	}
	if cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cfg, err
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/coursemap/).
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

// configDir returns the config directory using XDG standard (~/.config/coursemap/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by every command that lays out a map.
type layoutFlags struct {
	mode      string
	heuristic string
	precision int
	force     bool
	noCache   bool
	refresh   bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "layout mode: column, row (default: by map kind)")
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "", "layout-needed heuristic: overlap, majority (default: by map kind)")
	cmd.Flags().IntVar(&f.precision, "precision", 0, "decimal places of computed coordinates (1-6)")
	cmd.Flags().BoolVar(&f.force, "force", false, "recompute positions even when stored ones look fine")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts and overwrite them")
}

// options merges config values and flags into pipeline options. Flags win;
// anything left unset falls back to the map kind's defaults in the pipeline.
func (c *CLI) options(f layoutFlags) pipeline.Options {
	opts := pipeline.Options{
		Mode:      c.Config.Mode,
		Heuristic: c.Config.Heuristic,
		Precision: c.Config.Precision,
		Force:     f.force,
		Refresh:   f.refresh,
		Logger:    c.Logger,
	}
	if f.mode != "" {
		opts.Mode = f.mode
	}
	if f.heuristic != "" {
		opts.Heuristic = f.heuristic
	}
	if f.precision != 0 {
		opts.Precision = f.precision
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputBase returns the input path without its extension.
func outputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}
