package render

import (
	"image/color"

	"github.com/matzehuels/hyperview/pkg/geometry"
)

// Surface is a rectangular 2D drawing target. Coordinates are surface-local
// with the origin at the top-left corner.
//
// Implementations live in the [sink] subpackage; tests use an in-memory
// recorder.
type Surface interface {
	// Size returns the surface dimensions.
	Size() (width, height float64)
	// Clear fills the whole surface with c, or makes it transparent when c
	// is nil.
	Clear(c color.Color)
	// FillRect fills r with c.
	FillRect(r geometry.Rect, c color.Color)
	// Circle draws a circle centered on c.
	Circle(c geometry.Point, radius float64, p Paint)
	// Rect draws an axis-aligned rectangle.
	Rect(r geometry.Rect, p Paint)
	// Polyline strokes an open path through pts. Fill is ignored.
	Polyline(pts []geometry.Point, p Paint)
	// Polygon draws a closed path through pts.
	Polygon(pts []geometry.Point, p Paint)
	// Text draws s horizontally centered on at, with at marking the top of
	// the text box.
	Text(at geometry.Point, s string, t TextStyle)
}

// Paint describes how a shape is filled and stroked. A nil Fill or Stroke
// skips that part of the shape.
type Paint struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
	// Dash alternates on and off lengths. Nil draws a solid line.
	Dash []float64
}

// TextStyle describes a text draw.
type TextStyle struct {
	Size  float64
	Color color.Color
}
