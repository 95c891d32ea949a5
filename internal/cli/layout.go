package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hyperview/pkg/cache"
	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	hio "github.com/matzehuels/hyperview/pkg/io"
	"github.com/matzehuels/hyperview/pkg/layout"
)

// layoutFlags are the flags shared by every command that may lay out a graph.
// Zero values keep the configured settings.
type layoutFlags struct {
	algorithm  string
	width      float64
	height     float64
	iterations int
	noCache    bool
	redisURL   string
}

func (f *layoutFlags) register(cmd *cobra.Command, algoHelp string) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", algoHelp)
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "force layout iterations (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "cache in Redis instead of the local cache dir (env "+redisURLEnv+")")
}

// apply overlays the flags on cfg and revalidates it.
func (f *layoutFlags) apply(cfg *config.Config) error {
	if f.algorithm != "" {
		cfg.Layout.Algorithm = f.algorithm
	}
	if f.width != 0 {
		cfg.Canvas.Width = f.width
	}
	if f.height != 0 {
		cfg.Canvas.Height = f.height
	}
	if f.iterations != 0 {
		cfg.Layout.Iterations = f.iterations
	}
	return cfg.Validate()
}

// layoutCommand creates the layout command for positioning a graph's nodes.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a hypergraph",
		Long: `Compute node positions for a hypergraph.

The layout command reads a graph.json file (produced by 'generate' or by hand)
and writes it back with every node positioned by the chosen strategy:
force, circular, grid, hierarchical or spiral.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], output, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd, "layout algorithm: force (default), circular, grid, hierarchical, spiral")

	return cmd
}

// runLayout loads the graph, lays it out, and writes the positioned graph.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, input, output string, flags *layoutFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}

	raw, m, err := readGraph(input)
	if err != nil {
		return err
	}

	store, keyer, err := c.newCache(ctx, flags.noCache, flags.redisURL)
	if err != nil {
		return err
	}
	defer store.Close()

	laid, cached, err := c.layoutGraph(ctx, store, keyer, raw, m, cfg)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}
	if err := hio.ExportJSON(laid, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	out := report{w: w}
	out.success("Layout complete")
	out.file(outputPath)
	out.graph(laid, cached)
	out.next("Render", "render "+outputPath)

	return nil
}

// readGraph reads a graph file, returning its raw bytes for cache keys.
func readGraph(path string) ([]byte, *hypergraph.Model, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, errors.New(errors.ErrCodeFileNotFound, "graph file not found: %s", path)
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph %s", path)
	}
	m, err := hio.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	return raw, m, nil
}

// layoutKeyOpts returns the settings that determine a layout result.
func layoutKeyOpts(cfg *config.Config) cache.LayoutKeyOpts {
	opts := cfg.LayoutOptions()
	return cache.LayoutKeyOpts{
		Algorithm:  string(cfg.Algorithm()),
		Width:      opts.Width,
		Height:     opts.Height,
		Spacing:    opts.Spacing,
		Iterations: opts.Iterations,
		Margin:     opts.Margin,
		Attraction: opts.Attraction,
	}
}

// layoutGraph lays out m with the configured algorithm, consulting store
// first. raw is the graph file the model was read from and keys the entry.
// A cache read or write failure is logged and otherwise ignored.
func (c *CLI) layoutGraph(ctx context.Context, store cache.Cache, keyer cache.Keyer, raw []byte, m *hypergraph.Model, cfg *config.Config) (*hypergraph.Model, bool, error) {
	logger := loggerFromContext(ctx)
	algo := cfg.Algorithm()
	key := keyer.LayoutKey(cache.Hash(raw), layoutKeyOpts(cfg))

	data, hit, err := store.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("cache read failed", "err", err)
	case hit:
		laid, err := hio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			logger.Debug("layout cache hit", "algorithm", algo)
			return laid, true, nil
		}
		logger.Warn("discarding unreadable cache entry", "err", err)
	}

	opts := cfg.LayoutOptions()
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", algo))
	spinner.Start()
	err = layout.Apply(ctx, m, algo, opts)
	spinner.Stop()
	if err != nil {
		return nil, false, fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %d nodes with %s", m.NodeCount(), algo))

	var buf bytes.Buffer
	if err := hio.WriteJSON(m, &buf); err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, buf.Bytes(), cache.LayoutTTL); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	return m, false, nil
}
