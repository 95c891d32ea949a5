// Package generate builds synthetic hypergraphs for demos, tests and
// benchmarks.
//
// [Random] scatters a seeded random topology over a canvas, [Fano] returns
// the 7-point projective plane on its triangle drawing, and [States] builds a
// branching state hierarchy suited to the hierarchical layout.
package generate
