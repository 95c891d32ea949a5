// Package visualizer is the engine facade for one interactive view.
//
// A [Visualizer] wires a hypergraph model to the layout engine, a renderer,
// an interaction controller and a render loop:
//
//	v, _ := visualizer.New(cfg, visualizer.WithModel(m), visualizer.WithSurface(term))
//	v.OnNodeClick(func(n *hypergraph.Node) { fmt.Println(n.ID) })
//	_ = v.Layout(ctx)
//	v.Press(p); v.Move(q); v.Release(q)
//	png, _ := v.Export(visualizer.FormatPNG, visualizer.ExportOptions{})
//
// Layouts run synchronously, except force layouts with rendering.animation
// set: those advance one iteration per [Visualizer.Frame], driven either by
// the built-in loop ([Visualizer.StartLoop]) or by a host event loop calling
// Frame itself.
package visualizer
