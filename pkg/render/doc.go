// Package render draws hypergraph models onto 2D surfaces.
//
// # Overview
//
// A [Renderer] paints a [hypergraph.Model] onto whatever [Surface] is
// attached to it. The surface abstraction is deliberately small: clear,
// fill-rect, circle, rect, polyline, polygon and text. Concrete surfaces
// live in subpackages:
//
//   - [sink]: PNG raster, SVG vector and terminal character-cell surfaces
//   - [nodelink]: Graphviz DOT export of the same star interpretation
//
// # Hyperedge Geometry
//
// A hyperedge with two resolvable members is drawn as one segment. A
// hyperedge with three or more is drawn as a small centroid marker plus one
// segment from the centroid to each member. [EdgeSegments] returns exactly
// the geometry drawn, and the centroid is the same point the force layout
// attracts members toward ([layout.AttractionTarget]).
//
//	r := render.New(render.WithBackground("#ffffff"), render.WithLabels(true))
//	r.Attach(sink.NewPNG(800, 600))
//	r.Render(model)
//
// # Render Loop
//
// [Loop] is a start/stop handle that calls a frame function on an interval.
// It owns a single goroutine; see [Loop.Stop] for the shutdown guarantee.
package render
