package hypergraph_test

import (
	"fmt"

	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

func ExampleModel_basic() {
	// Three nodes joined by one ternary hyperedge
	m := hypergraph.New()
	_ = m.AddNode(hypergraph.Node{ID: "a", Pos: geometry.Pt(0, 0)})
	_ = m.AddNode(hypergraph.Node{ID: "b", Pos: geometry.Pt(30, 0)})
	_ = m.AddNode(hypergraph.Node{ID: "c", Pos: geometry.Pt(0, 30)})
	_ = m.AddEdge(hypergraph.Hyperedge{ID: "abc", NodeIDs: []string{"a", "b", "c"}})

	fmt.Println("Nodes:", m.NodeCount())
	fmt.Println("Edges:", m.EdgeCount())
	fmt.Println("Centroid:", m.Resolve()[0].Centroid())
	// Output:
	// Nodes: 3
	// Edges: 1
	// Centroid: {10 10}
}

func ExampleModel_RemoveNode() {
	// Removing a node evicts every hyperedge that names it
	m := hypergraph.New()
	for _, id := range []string{"a", "b", "c"} {
		_ = m.AddNode(hypergraph.Node{ID: id})
	}
	_ = m.AddEdge(hypergraph.Hyperedge{ID: "ab", NodeIDs: []string{"a", "b"}})
	_ = m.AddEdge(hypergraph.Hyperedge{ID: "bc", NodeIDs: []string{"b", "c"}})

	fmt.Println("Evicted:", m.RemoveNode("a"))
	fmt.Println("Edges left:", m.EdgeCount())
	// Output:
	// Evicted: [ab]
	// Edges left: 1
}
