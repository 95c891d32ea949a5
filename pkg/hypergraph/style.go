package hypergraph

import (
	"strings"

	"github.com/matzehuels/hyperview/pkg/errors"
)

// Shape selects how a node is drawn.
type Shape string

const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeDiamond  Shape = "diamond"
)

// Shapes lists every supported node shape.
var Shapes = []Shape{ShapeCircle, ShapeSquare, ShapeTriangle, ShapeDiamond}

// ParseShape converts a name into a Shape. The empty string maps to
// ShapeCircle.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case "":
		return ShapeCircle, nil
	case ShapeCircle, ShapeSquare, ShapeTriangle, ShapeDiamond:
		return sh, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid shape: %q (must be one of: circle, square, triangle, diamond)", s)
}

// Pattern is the line pattern of a hyperedge. It is a display hint only.
type Pattern string

const (
	PatternSolid  Pattern = "solid"
	PatternDashed Pattern = "dashed"
	PatternDotted Pattern = "dotted"
)

// ParsePattern converts a name into a Pattern. The empty string maps to
// PatternSolid.
func ParsePattern(s string) (Pattern, error) {
	switch p := Pattern(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PatternSolid, nil
	case PatternSolid, PatternDashed, PatternDotted:
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid line pattern: %q (must be one of: solid, dashed, dotted)", s)
}
