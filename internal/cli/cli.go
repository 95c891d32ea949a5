package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperview/pkg/buildinfo"
	"github.com/matzehuels/hyperview/pkg/cache"
	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hyperview"

	// redisURLEnv names the environment variable read when --redis-url is unset.
	redisURLEnv = "HYPERVIEW_REDIS_URL"

	// redisScope prefixes every key written to Redis.
	redisScope = appName + ":"
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

	configPath  string
	metricsFile string
	registry    *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Hyperview lays out and renders hypergraphs",
		Long:         `Hyperview is a CLI tool for laying out hypergraphs (edges joining any number of nodes) and rendering them to images, DOT, or an interactive terminal view.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.startMetrics()
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml, .json)")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Metrics
// =============================================================================

// loadConfig returns the --config file, or the defaults when none is given.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// startMetrics installs Prometheus hooks when --metrics-file is set.
func (c *CLI) startMetrics() {
	if c.metricsFile == "" || c.registry != nil {
		return
	}
	c.registry = prometheus.NewRegistry()
	observability.NewPrometheusHooks(c.registry).Register()
}

// writeMetrics dumps the collected metrics in the text exposition format.
func (c *CLI) writeMetrics() error {
	if c.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.metricsFile, c.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", c.metricsFile, err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the cache backend: none with --no-cache, Redis when a URL
// is given, otherwise the per-user file cache. A file cache that cannot be
// created degrades to no caching. Redis keys are scoped under the app name
// since the server may be shared.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisURL string) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if noCache {
		return cache.NewNullCache(), keyer, nil
	}
	if redisURL == "" {
		redisURL = os.Getenv(redisURLEnv)
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Debug("using redis cache")
		return cache.Observe(rc), cache.NewScopedKeyer(keyer, redisScope), nil
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), keyer, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), keyer, nil
	}
	return cache.Observe(fc), keyer, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hyperview/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// splitList parses a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
