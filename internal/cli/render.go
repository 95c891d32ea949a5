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
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hyperview/pkg/cache"
	"github.com/matzehuels/hyperview/pkg/config"
	"github.com/matzehuels/hyperview/pkg/errors"
	hio "github.com/matzehuels/hyperview/pkg/io"
	"github.com/matzehuels/hyperview/pkg/visualizer"
)

const defaultFormat = visualizer.FormatSVG

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string  // output file (single format) or base path (multiple)
	formats    string  // comma-separated output formats
	scale      float64 // PNG pixel scale
	embedFont  bool    // inline the label font into SVG output
	noLabels   bool    // hide node labels
	edgeLabels bool    // draw hyperedge labels
	layout     layoutFlags
}

// renderCommand creates the render command for exporting a graph to files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a hypergraph to PNG, SVG, DOT or JSON",
		Long: `Render a hypergraph to PNG, SVG, DOT or JSON.

Node positions are taken from the file as-is unless --algorithm is given, in
which case the graph is laid out first (with the same cache as 'layout').
Multiple formats are rendered concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "hide node labels")
	cmd.Flags().BoolVar(&opts.edgeLabels, "edge-labels", false, "draw hyperedge labels")
	opts.layout.register(cmd, "lay out first: force, circular, grid, hierarchical, spiral")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to svg.
func parseFormats(s string) ([]visualizer.Format, error) {
	names := splitList(s)
	if len(names) == 0 {
		return []visualizer.Format{defaultFormat}, nil
	}
	seen := make(map[visualizer.Format]bool, len(names))
	formats := make([]visualizer.Format, 0, len(names))
	for _, name := range names {
		f, err := visualizer.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := visualizer.ParseFormat(strings.TrimPrefix(ext, ".")); ext != "" && err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths names one file per format. A single format with an explicit
// output uses that path unchanged.
func outputPaths(output, input string, formats []visualizer.Format) []string {
	if len(formats) == 1 && output != "" {
		return []string{output}
	}
	base := basePath(output, input)
	paths := make([]string, len(formats))
	for i, f := range formats {
		paths[i] = base + "." + string(f)
	}
	return paths
}

// runRender loads the graph, optionally lays it out, and writes every
// requested format.
func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	paths := outputPaths(opts.output, input, formats)
	for _, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
		if filepath.Clean(p) == filepath.Clean(input) {
			return errors.New(errors.ErrCodeInvalidInput, "output %s would overwrite the input; pass --output", p)
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if err := opts.layout.apply(cfg); err != nil {
		return err
	}
	if opts.noLabels {
		cfg.Rendering.ShowLabels = false
	}
	if opts.edgeLabels {
		cfg.Rendering.ShowEdgeLabels = true
	}

	raw, m, err := readGraph(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", m.NodeCount(), m.EdgeCount())

	store, keyer, err := c.newCache(ctx, opts.layout.noCache, opts.layout.redisURL)
	if err != nil {
		return err
	}
	defer store.Close()

	cached := false
	if opts.layout.algorithm != "" {
		if m, cached, err = c.layoutGraph(ctx, store, keyer, raw, m, cfg); err != nil {
			return err
		}
	}

	var doc bytes.Buffer
	if err := hio.WriteJSON(m, &doc); err != nil {
		return err
	}
	layoutHash := cache.Hash(doc.Bytes())

	v, err := visualizer.New(cfg, visualizer.WithModel(m), visualizer.WithLogger(logger))
	if err != nil {
		return err
	}
	defer v.Close()

	job := renderJob{
		view:   v,
		store:  store,
		keyer:  keyer,
		hash:   layoutHash,
		cfg:    cfg,
		export: visualizer.ExportOptions{Scale: opts.scale, EmbedFont: opts.embedFont},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			if err := job.run(gctx, f, paths[i]); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := report{w: w}
	out.success("Rendered %d file(s)", len(paths))
	for _, p := range paths {
		out.file(p)
	}
	out.graph(m, cached)
	return nil
}

// renderJob exports one positioned graph; run is safe to call concurrently.
type renderJob struct {
	view   *visualizer.Visualizer
	store  cache.Cache
	keyer  cache.Keyer
	hash   string
	cfg    *config.Config
	export visualizer.ExportOptions
}

func (j renderJob) artifactKey(f visualizer.Format) string {
	opts := cache.ArtifactKeyOpts{
		Format:     string(f),
		Background: j.cfg.Canvas.Background,
		Labels:     j.cfg.Rendering.ShowLabels,
		EdgeLabels: j.cfg.Rendering.ShowEdgeLabels,
	}
	switch f {
	case visualizer.FormatPNG:
		opts.Scale = j.export.Scale
	case visualizer.FormatSVG:
		opts.EmbedFont = j.export.EmbedFont
	}
	return j.keyer.ArtifactKey(j.hash, opts)
}

// run exports f, going through the artifact cache, and writes it to path.
func (j renderJob) run(ctx context.Context, f visualizer.Format, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	key := j.artifactKey(f)

	data, hit, err := j.store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "format", f, "err", err)
	}
	if !hit {
		if data, err = j.view.Export(f, j.export); err != nil {
			return err
		}
		if err := j.store.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			logger.Warn("cache write failed", "format", f, "err", err)
		}
	}
	logger.Debugf("Generated %s: %d bytes (cached: %v)", f, len(data), hit)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
