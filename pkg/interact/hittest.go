package interact

import (
	"math"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// HitTest returns the topmost node under p, or nil. Nodes are drawn in
// insertion order, so the last matching node wins.
//
// Circles hit within Size of the node position; the other shapes hit
// within their Size half-extent box.
func HitTest(m *hypergraph.Model, p geometry.Point) *hypergraph.Node {
	nodes := m.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if Hits(nodes[i], p) {
			return nodes[i]
		}
	}
	return nil
}

// Hits reports whether p falls on n.
func Hits(n *hypergraph.Node, p geometry.Point) bool {
	size := n.Style.Size
	if n.Style.Shape == hypergraph.ShapeCircle || n.Style.Shape == "" {
		return p.Dist(n.Pos) <= size
	}
	return math.Abs(p.X-n.Pos.X) <= size && math.Abs(p.Y-n.Pos.Y) <= size
}
