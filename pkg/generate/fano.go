package generate

import (
	"fmt"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// FanoLines lists the seven lines of the Fano plane over points 1..7.
var FanoLines = [7][3]int{
	{1, 2, 3}, {1, 4, 5}, {1, 6, 7},
	{2, 4, 6}, {2, 5, 7}, {3, 4, 7}, {3, 5, 6},
}

// Fano builds the Fano plane: 7 points, 7 lines of 3 points, every pair of
// points on exactly one line and every pair of lines meeting in exactly one
// point. Points are p1..p7 and lines l1..l7.
//
// Positions follow the usual triangle drawing inside a width x height
// canvas: p3, p5 and p7 are the corners, p2, p4 and p6 the side midpoints,
// and p1 the center. Line l4 {p2, p4, p6} is the one drawn as a circle.
func Fano(width, height float64) *hypergraph.Model {
	if !(width > 0) || !(height > 0) {
		width, height = 800, 600
	}
	margin := 0.1 * min(width, height)
	top := geometry.Pt(width/2, margin)
	left := geometry.Pt(margin, height-margin)
	right := geometry.Pt(width-margin, height-margin)

	pos := map[int]geometry.Point{
		3: top,
		5: left,
		7: right,
		2: left.Lerp(right, 0.5),
		4: top.Lerp(right, 0.5),
		6: top.Lerp(left, 0.5),
		1: geometry.Centroid([]geometry.Point{top, left, right}),
	}

	m := hypergraph.New()
	for i := 1; i <= 7; i++ {
		_ = m.AddNode(hypergraph.Node{
			ID:    fanoPoint(i),
			Label: fmt.Sprint(i),
			Pos:   pos[i],
		})
	}
	for i, line := range FanoLines {
		_ = m.AddEdge(hypergraph.Hyperedge{
			ID:      fmt.Sprintf("l%d", i+1),
			NodeIDs: []string{fanoPoint(line[0]), fanoPoint(line[1]), fanoPoint(line[2])},
			Style:   hypergraph.EdgeStyle{Color: Palette[i%len(Palette)], Width: 2},
		})
	}
	return m
}

func fanoPoint(i int) string { return fmt.Sprintf("p%d", i) }
