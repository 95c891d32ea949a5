// Package geometry provides the 2D primitives shared by layout, rendering
// and interaction: points, rectangles, segments and the hyperedge centroid.
//
// All coordinates are in surface units (pixels for raster output) with the
// origin at the top-left corner and y growing downward.
package geometry

import "math"

// Point is a position or displacement on the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool { return finite(p.X) && finite(p.Y) }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Centroid returns the arithmetic mean of points.
// An empty input yields the origin; callers filter degenerate hyperedges
// before reaching this point.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{sx / n, sy / n}
}

// Segment is a straight line between two points.
type Segment struct {
	A, B Point
}

// Midpoint returns the point halfway between A and B.
func (s Segment) Midpoint() Point { return s.A.Lerp(s.B, 0.5) }

// Len returns the length of the segment.
func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Rect is an axis-aligned rectangle. Min is the top-left corner and Max the
// bottom-right corner.
type Rect struct {
	Min, Max Point
}

// R builds the rectangle spanning x0..x1 and y0..y1.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{min(x0, x1), min(y0, y1)}, Max: Point{max(x0, x1), max(y0, y1)}}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return r.Min.Lerp(r.Max, 0.5) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns the point of r closest to p. Non-finite coordinates are
// replaced by the center of r so the result is always finite.
func (r Rect) Clamp(p Point) Point {
	c := r.Center()
	if !finite(p.X) {
		p.X = c.X
	}
	if !finite(p.Y) {
		p.Y = c.Y
	}
	return Point{
		X: math.Max(r.Min.X, math.Min(r.Max.X, p.X)),
		Y: math.Max(r.Min.Y, math.Min(r.Max.Y, p.Y)),
	}
}

// Inset shrinks r by d on every side. The inset is limited so the result
// never inverts; an over-large inset collapses to the center line.
func (r Rect) Inset(d float64) Rect {
	dx := math.Min(d, r.Width()/2)
	dy := math.Min(d, r.Height()/2)
	return Rect{
		Min: Point{r.Min.X + dx, r.Min.Y + dy},
		Max: Point{r.Max.X - dx, r.Max.Y - dy},
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
