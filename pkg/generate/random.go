package generate

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// Palette is the set of node colors Random draws from.
var Palette = []string{"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2", "#b279a2"}

// RandomOptions configures Random.
type RandomOptions struct {
	Nodes    int
	Edges    int
	MaxArity int // largest hyperedge; values below 2 mean 3
	Seed     uint64
	Width    float64 // canvas the initial positions are scattered over
	Height   float64
}

// DefaultRandomOptions returns 20 nodes and 15 hyperedges of arity up to 4
// on an 800x600 canvas.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{Nodes: 20, Edges: 15, MaxArity: 4, Seed: 1, Width: 800, Height: 600}
}

// Random builds a random hypergraph. Node ids are n0..n(N-1) and edge ids
// e0..e(M-1). Each hyperedge draws its arity uniformly from
// [2, min(MaxArity, Nodes)] and its members without repetition. The same
// options always produce the same model.
func Random(opts RandomOptions) *hypergraph.Model {
	m := hypergraph.New()
	if opts.Nodes <= 0 {
		return m
	}
	if opts.MaxArity < 2 {
		opts.MaxArity = 3
	}
	if !(opts.Width > 0) || !(opts.Height > 0) {
		d := DefaultRandomOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	shapes := hypergraph.Shapes

	for i := range opts.Nodes {
		_ = m.AddNode(hypergraph.Node{
			ID:    fmt.Sprintf("n%d", i),
			Label: fmt.Sprintf("Node %d", i),
			Pos:   geometry.Pt(rng.Float64()*opts.Width, rng.Float64()*opts.Height),
			Style: hypergraph.NodeStyle{
				Color: Palette[rng.IntN(len(Palette))],
				Size:  8 + float64(rng.IntN(5)),
				Shape: shapes[rng.IntN(len(shapes))],
			},
		})
	}
	if opts.Nodes < 2 {
		return m
	}

	maxArity := min(opts.MaxArity, opts.Nodes)
	patterns := []hypergraph.Pattern{hypergraph.PatternSolid, hypergraph.PatternSolid, hypergraph.PatternDashed, hypergraph.PatternDotted}
	for i := range max(opts.Edges, 0) {
		arity := 2 + rng.IntN(maxArity-1)
		perm := rng.Perm(opts.Nodes)[:arity]
		ids := make([]string, arity)
		for j, k := range perm {
			ids[j] = fmt.Sprintf("n%d", k)
		}
		_ = m.AddEdge(hypergraph.Hyperedge{
			ID:      fmt.Sprintf("e%d", i),
			NodeIDs: ids,
			Style:   hypergraph.EdgeStyle{Pattern: patterns[rng.IntN(len(patterns))]},
		})
	}
	return m
}
