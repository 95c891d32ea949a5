package layout

import (
	"math"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// Levels assigns every node of m a level for the hierarchical layout.
//
// Hyperedges are undirected, so direction is read from member order: the
// first resolvable member of a live hyperedge is its source and every other
// member is reachable from it. Roots are the nodes that are never a
// non-first member of a live hyperedge. Levels come from a breadth-first
// traversal seeded with the roots in insertion order; nodes still
// unreached afterwards (cycles, or components hanging off no root) seed a
// fresh traversal at level 0, again in insertion order.
func Levels(m *hypergraph.Model) map[string]int {
	nodes := m.Nodes()
	out := make(map[string][]string, len(nodes))
	targeted := make(map[string]bool, len(nodes))
	for _, r := range m.Resolve() {
		src := r.Members[0].ID
		for _, n := range r.Members[1:] {
			out[src] = append(out[src], n.ID)
			targeted[n.ID] = true
		}
	}

	level := make(map[string]int, len(nodes))
	bfs := func(seeds []string) {
		queue := make([]string, 0, len(seeds))
		for _, id := range seeds {
			if _, seen := level[id]; !seen {
				level[id] = 0
				queue = append(queue, id)
			}
		}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range out[id] {
				if _, seen := level[next]; seen {
					continue
				}
				level[next] = level[id] + 1
				queue = append(queue, next)
			}
		}
	}

	var roots []string
	for _, n := range nodes {
		if !targeted[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	bfs(roots)
	for _, n := range nodes {
		if _, seen := level[n.ID]; !seen {
			bfs([]string{n.ID})
		}
	}
	return level
}

// hierarchical lays each level out on its own horizontal band, top to
// bottom, nodes within a band centered and evenly spaced in insertion
// order. Gaps shrink below Spacing when a band or the stack of bands would
// not fit inside the margin.
func hierarchical(m *hypergraph.Model, opts Options) {
	level := Levels(m)
	var bands [][]*hypergraph.Node
	for _, n := range m.Nodes() {
		l := level[n.ID]
		for len(bands) <= l {
			bands = append(bands, nil)
		}
		bands[l] = append(bands[l], n)
	}

	bounds := opts.Bounds()
	c := opts.Center()
	dy := gap(opts.Spacing, bounds.Height(), len(bands))
	y0 := c.Y - float64(len(bands)-1)*dy/2
	for l, band := range bands {
		dx := gap(opts.Spacing, bounds.Width(), len(band))
		x0 := c.X - float64(len(band)-1)*dx/2
		for i, n := range band {
			m.SetPosition(n.ID, bounds.Clamp(geometry.Pt(x0+float64(i)*dx, y0+float64(l)*dy)))
		}
	}
}

func gap(spacing, extent float64, count int) float64 {
	if count < 2 {
		return spacing
	}
	return math.Min(spacing, extent/float64(count-1))
}
