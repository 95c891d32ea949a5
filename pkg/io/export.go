package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID    string    `json:"id"`
	Label string    `json:"label,omitempty"`
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Data  any       `json:"data,omitempty"`
	Style nodeStyle `json:"style,omitzero"`
}

type nodeStyle struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Shape string  `json:"shape,omitempty"`
}

type edge struct {
	ID    string    `json:"id,omitempty"`
	Label string    `json:"label,omitempty"`
	Nodes []string  `json:"nodes"`
	Data  any       `json:"data,omitempty"`
	Style edgeStyle `json:"style,omitzero"`
}

type edgeStyle struct {
	Color   string  `json:"color,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Pattern string  `json:"pattern,omitempty"`
}

// WriteJSON encodes m as a JSON document in insertion order. Positions are
// written with full precision, so a model read back with [ReadJSON] has
// identical coordinates.
func WriteJSON(m *hypergraph.Model, w io.Writer) error {
	doc := document{
		Nodes: make([]node, 0, m.NodeCount()),
		Edges: make([]edge, 0, m.EdgeCount()),
	}
	for _, n := range m.Nodes() {
		doc.Nodes = append(doc.Nodes, node{
			ID:    n.ID,
			Label: n.Label,
			X:     n.Pos.X,
			Y:     n.Pos.Y,
			Data:  n.Data,
			Style: nodeStyle{Color: n.Style.Color, Size: n.Style.Size, Shape: string(n.Style.Shape)},
		})
	}
	for _, e := range m.Edges() {
		doc.Edges = append(doc.Edges, edge{
			ID:    e.ID,
			Label: e.Label,
			Nodes: e.NodeIDs,
			Data:  e.Data,
			Style: edgeStyle{Color: e.Style.Color, Width: e.Style.Width, Pattern: string(e.Style.Pattern)},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *hypergraph.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
