// Package layout positions the nodes of a hypergraph on a 2D canvas.
//
// # Strategies
//
// [Apply] dispatches on a closed set of [Algorithm] values:
//
//   - [Force]: iterative force simulation (see [Simulation])
//   - [Circular]: evenly spaced on a circle around the canvas center
//   - [Grid]: centered row-major grid with ceil(sqrt(n)) columns
//   - [Hierarchical]: breadth-first levels on horizontal bands (see [Levels])
//   - [Spiral]: Archimedean spiral parameterized by node index
//
// Every strategy mutates node positions in place through
// [hypergraph.Model.SetPosition] and only reads the rest of the model.
// Strategies that depend on node order use the model's insertion order, so
// all of them are deterministic.
//
// # Hyperedge Geometry
//
// The force layout attracts the members of every live hyperedge toward its
// centroid, [AttractionTarget]. The same code path handles every arity, so a
// two-node hyperedge is pulled toward its midpoint and an n-ary hyperedge
// toward a shared point. The renderer draws hyperedges around that same
// point.
//
// # Animation
//
// For animated layouts, create a [Simulation] with [NewSimulation] and call
// [Simulation.Step] once per frame until it reports false.
package layout
