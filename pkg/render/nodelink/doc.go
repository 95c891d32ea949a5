// Package nodelink exports hypergraphs as Graphviz node-link diagrams.
//
// [ToDOT] writes an undirected DOT graph with every node pinned at its
// current position, so the Graphviz output matches what the native
// surfaces draw. N-ary hyperedges are expanded into a star around a
// synthetic point-shaped junction node placed at the hyperedge centroid.
//
//	dot := nodelink.ToDOT(model, nodelink.Options{Height: 600})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderSVG] runs the bundled WebAssembly build of Graphviz, so no system
// installation is required.
package nodelink
