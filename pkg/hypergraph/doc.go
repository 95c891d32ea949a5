// Package hypergraph provides the in-memory hypergraph model rendered by
// Hyperview.
//
// # Overview
//
// A hypergraph is a set of nodes plus hyperedges, relations that may
// connect any number (two or more) of nodes. This package is a pure data
// holder: it stores nodes and hyperedges by ID, keeps their insertion order
// for deterministic iteration, and exposes the small set of mutation
// methods used by the layout engine and the interaction controller.
//
// # Basic Usage
//
// Create a model with [New], then upsert nodes and hyperedges:
//
//	m := hypergraph.New()
//	m.AddNode(hypergraph.Node{ID: "a"})
//	m.AddNode(hypergraph.Node{ID: "b"})
//	m.AddNode(hypergraph.Node{ID: "c"})
//	m.AddEdge(hypergraph.Hyperedge{ID: "abc", NodeIDs: []string{"a", "b", "c"}})
//
// [Model.AddNode] and [Model.AddEdge] overwrite silently when the ID already
// exists (last write wins).
//
// # Weak References
//
// A hyperedge stores member IDs, never node pointers. Use [Model.Members] or
// [Model.Resolve] to look them up; an ID that no longer resolves is skipped.
// A hyperedge with fewer than two resolvable members is dead: it stays in
// the model but contributes nothing to layout or rendering.
//
// [Model.RemoveNode] cascades: every hyperedge referencing the removed node
// is removed with it, so no surviving hyperedge ever names a removed node.
//
// # Positions
//
// Node positions are always finite. [Model.AddNode] rejects non-finite
// positions and [Model.SetPosition] ignores them.
package hypergraph
