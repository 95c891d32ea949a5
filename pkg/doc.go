// Package pkg provides the core libraries for Hyperview hypergraph
// visualization.
//
// # Overview
//
// Hyperview lays out and draws hypergraphs: graphs whose edges join any
// number of nodes. The pkg directory is organized into these areas:
//
//  1. [hypergraph] - The model: nodes, hyperedges, styles
//  2. [geometry] - Points, rectangles and centroids
//  3. [layout] - Force, circular, grid, hierarchical and spiral strategies
//  4. [render] - Frame renderer, render loop, and [render/sink] surfaces
//  5. [interact] - Pointer input to drags, clicks and zoom
//  6. [visualizer] - One view wiring all of the above together
//  7. [io], [config], [cache], [generate] - Files, settings, memoization, samples
//
// # Architecture
//
// The typical data flow through Hyperview:
//
//	generate / graph.json
//	         ↓
//	    [hypergraph] model
//	         ↓
//	    [layout] (positions)
//	         ↓
//	    [render] → PNG / SVG / terminal
//	         ↑
//	    [interact] (drag, click, zoom)
//
// # Quick Start
//
//	m := generate.Fano(800, 600)
//	v, _ := visualizer.New(nil, visualizer.WithModel(m))
//	_ = v.ApplyLayout(ctx, layout.Circular)
//	svg, _ := v.Export(visualizer.FormatSVG, visualizer.ExportOptions{})
//
// # Observability
//
// Layout runs, frames, interactions and cache traffic report through the
// hooks in [observability]; [observability.NewPrometheusHooks] exports them
// as Prometheus metrics.
package pkg
