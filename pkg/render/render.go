package render

import (
	"image/color"
	"time"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
	"github.com/matzehuels/hyperview/pkg/layout"
	"github.com/matzehuels/hyperview/pkg/observability"
)

// Drawing constants shared by every surface.
const (
	CentroidRadius = 3.0
	OutlineWidth   = 1.5
	LabelSize      = 12.0
	LabelGap       = 4.0
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithBackground sets the color the surface is cleared with. An empty or
// invalid color falls back to white, "transparent" leaves it unpainted.
func WithBackground(hex string) Option {
	return func(r *Renderer) { r.background = ParseColor(hex, DefaultBackground) }
}

// WithLabels toggles node labels.
func WithLabels(on bool) Option { return func(r *Renderer) { r.labels = on } }

// WithEdgeLabels toggles hyperedge labels.
func WithEdgeLabels(on bool) Option { return func(r *Renderer) { r.edgeLabels = on } }

// WithHooks overrides the globally registered render hooks.
func WithHooks(h observability.RenderHooks) Option { return func(r *Renderer) { r.hooks = h } }

// Renderer paints a hypergraph model onto an attached Surface.
//
// Each frame clears the surface, draws every live hyperedge, then every
// node, then labels, so edges never occlude nodes. Render only reads the
// model. Renderer is not safe for concurrent use.
type Renderer struct {
	surface    Surface
	background color.Color
	labels     bool
	edgeLabels bool
	hooks      observability.RenderHooks
}

// New creates a Renderer with labels on, edge labels off and a white
// background.
func New(opts ...Option) *Renderer {
	r := &Renderer{background: DefaultBackground, labels: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach sets the surface subsequent frames are drawn on.
func (r *Renderer) Attach(s Surface) { r.surface = s }

// Detach removes the surface. Render becomes a no-op until the next Attach.
func (r *Renderer) Detach() { r.surface = nil }

// Surface returns the attached surface, or nil.
func (r *Renderer) Surface() Surface { return r.surface }

// SetLabels toggles node labels.
func (r *Renderer) SetLabels(on bool) { r.labels = on }

// Labels reports whether node labels are drawn.
func (r *Renderer) Labels() bool { return r.labels }

// SetEdgeLabels toggles hyperedge labels.
func (r *Renderer) SetEdgeLabels(on bool) { r.edgeLabels = on }

// EdgeLabels reports whether hyperedge labels are drawn.
func (r *Renderer) EdgeLabels() bool { return r.edgeLabels }

// Background returns the clear color, nil when transparent.
func (r *Renderer) Background() color.Color { return r.background }

// Render draws one frame of m. It reports false, drawing nothing, when no
// surface is attached.
func (r *Renderer) Render(m *hypergraph.Model) bool {
	s := r.surface
	if s == nil {
		return false
	}
	start := time.Now()

	s.Clear(r.background)

	resolved := m.Resolve()
	for _, e := range resolved {
		drawEdge(s, e)
	}

	nodes := m.Nodes()
	for _, n := range nodes {
		drawNode(s, n)
	}

	if r.labels {
		for _, n := range nodes {
			s.Text(LabelAnchor(n), n.DisplayLabel(), TextStyle{Size: LabelSize, Color: DefaultLabelColor})
		}
	}
	if r.edgeLabels {
		for _, e := range resolved {
			if e.Edge.Label == "" {
				continue
			}
			at := layout.AttractionTarget(e.Members).Add(geometry.Pt(0, -LabelSize-LabelGap))
			s.Text(at, e.Edge.Label, TextStyle{Size: LabelSize, Color: ParseColor(e.Edge.Style.Color, DefaultEdgeColor)})
		}
	}

	r.hooksOrGlobal().OnFrame(len(nodes), len(resolved), time.Since(start))
	return true
}

func (r *Renderer) hooksOrGlobal() observability.RenderHooks {
	if r.hooks != nil {
		return r.hooks
	}
	return observability.Render()
}

// EdgeSegments returns the segments drawn for a hyperedge whose resolved
// member positions are pts: one segment for two members, and a star from
// the centroid to every member otherwise. It returns nil for fewer than two
// points.
func EdgeSegments(pts []geometry.Point) []geometry.Segment {
	switch {
	case len(pts) < 2:
		return nil
	case len(pts) == 2:
		return []geometry.Segment{{A: pts[0], B: pts[1]}}
	}
	c := geometry.Centroid(pts)
	segs := make([]geometry.Segment, len(pts))
	for i, p := range pts {
		segs[i] = geometry.Segment{A: c, B: p}
	}
	return segs
}

// DashPattern returns the dash array for a line pattern.
func DashPattern(p hypergraph.Pattern) []float64 {
	switch p {
	case hypergraph.PatternDashed:
		return []float64{6, 4}
	case hypergraph.PatternDotted:
		return []float64{2, 3}
	}
	return nil
}

// LabelAnchor returns the top-center point of a node's label, just below
// its shape.
func LabelAnchor(n *hypergraph.Node) geometry.Point {
	return n.Pos.Add(geometry.Pt(0, n.Style.Size+LabelGap))
}

// ShapePoints returns the outline vertices of a polygonal node shape, or
// nil for circles and squares, which surfaces draw natively.
func ShapePoints(shape hypergraph.Shape, c geometry.Point, size float64) []geometry.Point {
	switch shape {
	case hypergraph.ShapeTriangle:
		return []geometry.Point{
			{X: c.X, Y: c.Y - size},
			{X: c.X + size, Y: c.Y + size},
			{X: c.X - size, Y: c.Y + size},
		}
	case hypergraph.ShapeDiamond:
		return []geometry.Point{
			{X: c.X, Y: c.Y - size},
			{X: c.X + size, Y: c.Y},
			{X: c.X, Y: c.Y + size},
			{X: c.X - size, Y: c.Y},
		}
	}
	return nil
}

func drawEdge(s Surface, e hypergraph.Resolved) {
	stroke := ParseColor(e.Edge.Style.Color, DefaultEdgeColor)
	paint := Paint{Stroke: stroke, LineWidth: e.Edge.Style.Width, Dash: DashPattern(e.Edge.Style.Pattern)}

	pts := e.Positions()
	for _, seg := range EdgeSegments(pts) {
		s.Polyline([]geometry.Point{seg.A, seg.B}, paint)
	}
	if len(pts) > 2 {
		s.Circle(geometry.Centroid(pts), CentroidRadius, Paint{Fill: stroke})
	}
}

func drawNode(s Surface, n *hypergraph.Node) {
	fill := ParseColor(n.Style.Color, DefaultNodeColor)
	paint := Paint{Fill: fill, Stroke: Outline(fill), LineWidth: OutlineWidth}
	size := n.Style.Size

	switch n.Style.Shape {
	case hypergraph.ShapeSquare:
		s.Rect(geometry.R(n.Pos.X-size, n.Pos.Y-size, n.Pos.X+size, n.Pos.Y+size), paint)
	case hypergraph.ShapeTriangle, hypergraph.ShapeDiamond:
		s.Polygon(ShapePoints(n.Style.Shape, n.Pos, size), paint)
	default:
		s.Circle(n.Pos, size, paint)
	}
}
