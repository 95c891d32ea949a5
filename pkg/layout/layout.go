package layout

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/observability"
)

// Algorithm selects a layout strategy.
type Algorithm string

const (
	Force        Algorithm = "force"
	Circular     Algorithm = "circular"
	Grid         Algorithm = "grid"
	Hierarchical Algorithm = "hierarchical"
	Spiral       Algorithm = "spiral"
)

// Algorithms lists every supported strategy in a stable order.
var Algorithms = []Algorithm{Force, Circular, Grid, Hierarchical, Spiral}

// ParseAlgorithm converts a name into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Force, Circular, Grid, Hierarchical, Spiral:
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout algorithm: %q (must be one of: force, circular, grid, hierarchical, spiral)", s)
}

// MinDistance floors the pair distance used by the repulsion term.
const MinDistance = 1.0

// Options configures a layout run. Width and Height describe the canvas;
// zero Spacing, Iterations and Attraction fall back to DefaultOptions.
type Options struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Spacing    float64 `json:"spacing"`
	Iterations int     `json:"iterations"`
	Margin     float64 `json:"margin"`
	Attraction float64 `json:"attraction"`

	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		Spacing:    100,
		Iterations: 100,
		Margin:     50,
		Attraction: 0.05,
	}
}

// Bounds returns the rectangle every force-layout position is clamped into.
func (o Options) Bounds() geometry.Rect {
	return geometry.R(0, 0, o.Width, o.Height).Inset(o.Margin)
}

// Center returns the canvas center.
func (o Options) Center() geometry.Point {
	return geometry.Pt(o.Width/2, o.Height/2)
}

func (o Options) validate() (Options, error) {
	if err := errors.ValidateCanvasSize(o.Width, o.Height); err != nil {
		return o, err
	}
	if math.IsNaN(o.Margin) || o.Margin < 0 {
		return o, errors.New(errors.ErrCodeInvalidCanvas, "invalid canvas margin: %v", o.Margin)
	}
	d := DefaultOptions()
	if o.Spacing <= 0 || math.IsInf(o.Spacing, 0) || math.IsNaN(o.Spacing) {
		o.Spacing = d.Spacing
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.Attraction <= 0 || o.Attraction >= 1 || math.IsNaN(o.Attraction) {
		o.Attraction = d.Attraction
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o, nil
}

// Apply repositions the nodes of m in place using algo.
//
// An unknown algorithm fails with ErrCodeInvalidLayout and a malformed
// canvas with ErrCodeInvalidCanvas, both before any node is touched. A model
// with zero nodes is a valid no-op. The force strategy checks ctx between
// iterations and returns ctx.Err() if it is cancelled, leaving the
// positions of the last completed iteration in place.
func Apply(ctx context.Context, m *hypergraph.Model, algo Algorithm, opts Options) error {
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return err
	}
	opts, err := opts.validate()
	if err != nil {
		return err
	}
	if m.NodeCount() == 0 {
		return nil
	}

	start := time.Now()
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, string(algo), m.NodeCount())

	iterations := 0
	switch algo {
	case Force:
		sim := newSimulation(m, opts)
		err = sim.Run(ctx)
		iterations = sim.Done()
	case Circular:
		circular(m, opts)
	case Grid:
		grid(m, opts)
	case Hierarchical:
		hierarchical(m, opts)
	case Spiral:
		spiral(m, opts)
	}

	elapsed := time.Since(start)
	hooks.OnLayoutComplete(ctx, string(algo), iterations, elapsed, err)
	opts.Logger.Debug("layout applied", "algorithm", algo, "nodes", m.NodeCount(), "iterations", iterations, "elapsed", elapsed)
	return err
}

// AttractionTarget returns the point the force layout pulls the members of
// a hyperedge toward: the centroid of their positions. The renderer draws
// n-ary hyperedges around the same point.
func AttractionTarget(members []*hypergraph.Node) geometry.Point {
	pts := make([]geometry.Point, len(members))
	for i, n := range members {
		pts[i] = n.Pos
	}
	return geometry.Centroid(pts)
}
