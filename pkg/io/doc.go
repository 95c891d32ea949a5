// Package io provides JSON import and export for hypergraph models.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "a", "label": "Alpha", "x": 120, "y": 80,
//	     "style": {"color": "#e45756", "size": 12, "shape": "square"}},
//	    {"id": "b"},
//	    {"id": "c"}
//	  ],
//	  "edges": [
//	    {"id": "abc", "nodes": ["a", "b", "c"],
//	     "style": {"width": 2, "pattern": "dashed"}},
//	    {"nodes": ["a", "b"]}
//	  ]
//	}
//
// Only node "id" and edge "nodes" are required. Missing positions default to
// the origin, missing styles to the model defaults, and a missing edge id to
// a random UUID. "data" holds any JSON value and is carried through untouched.
//
// The first member of an edge is its source for the hierarchical layout.
//
// # Round Trip
//
// [WriteJSON] emits every field [ReadJSON] understands, including filled-in
// style defaults, so export followed by import reproduces the model exactly.
package io
