// Package sink provides the drawing surfaces hypergraphs are rendered on.
//
// # Overview
//
// Every surface implements [render.Surface]:
//
//   - [PNG]: raster output on fogleman/gg, labels set in Go Regular
//   - [SVG]: vector output written with ajstarks/svgo
//   - [Term]: character cells for the terminal viewer, styled with lipgloss
//
// Basic usage:
//
//	png := sink.NewPNG(800, 600, sink.WithScale(2))
//	r := render.New()
//	r.Attach(png)
//	r.Render(model)
//	data, err := png.Encode()
//
// # Terminal Coordinates
//
// [Term] keeps the canvas coordinate system of the other surfaces and maps
// it onto its cell grid. Use [Term.ToCanvas] to convert a mouse position
// reported in cells back to canvas coordinates before hit-testing.
package sink
