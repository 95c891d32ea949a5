package layout

import (
	"math"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// CircleRadius returns the radius of the circular layout for opts.
func CircleRadius(opts Options) float64 {
	return 0.8 * math.Min(opts.Width, opts.Height) / 2
}

// circular places nodes on one circle around the canvas center, starting at
// the top and going clockwise in insertion order.
func circular(m *hypergraph.Model, opts Options) {
	nodes := m.Nodes()
	c := opts.Center()
	r := CircleRadius(opts)
	step := 2 * math.Pi / float64(len(nodes))
	for i, n := range nodes {
		theta := -math.Pi/2 + float64(i)*step
		m.SetPosition(n.ID, geometry.Pt(c.X+r*math.Cos(theta), c.Y+r*math.Sin(theta)))
	}
}

// grid places nodes row-major in a centered grid with ceil(sqrt(n))
// columns and one Spacing per cell.
func grid(m *hypergraph.Model, opts Options) {
	nodes := m.Nodes()
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	rows := (len(nodes) + cols - 1) / cols
	c := opts.Center()
	x0 := c.X - float64(cols-1)*opts.Spacing/2
	y0 := c.Y - float64(rows-1)*opts.Spacing/2
	for i, n := range nodes {
		col, row := i%cols, i/cols
		m.SetPosition(n.ID, geometry.Pt(x0+float64(col)*opts.Spacing, y0+float64(row)*opts.Spacing))
	}
}

// spiral places nodes on an Archimedean spiral from the canvas center. The
// radius grows by a fixed step per index, capped so the last node stays
// inside the margin, while the angle advances half a radian per index.
func spiral(m *hypergraph.Model, opts Options) {
	nodes := m.Nodes()
	c := opts.Center()
	bounds := opts.Bounds()
	rstep := opts.Spacing / 5
	if n := len(nodes); n > 1 {
		rstep = math.Min(rstep, math.Min(bounds.Width(), bounds.Height())/2/float64(n-1))
	}
	for i, n := range nodes {
		r := float64(i) * rstep
		theta := float64(i) * 0.5
		m.SetPosition(n.ID, bounds.Clamp(geometry.Pt(c.X+r*math.Cos(theta), c.Y+r*math.Sin(theta))))
	}
}
