package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/hyperview/pkg/errors"
	"github.com/matzehuels/hyperview/pkg/geometry"
	"github.com/matzehuels/hyperview/pkg/hypergraph"
)

// ReadJSON decodes a JSON hypergraph document from r.
//
// Each node must have an "id"; each edge must list at least two distinct
// "nodes". Edges may reference nodes the document does not define: those
// references stay weak and the edge is skipped by layout and rendering until
// the nodes exist. An edge without an "id" gets a random UUID.
//
// Shapes and line patterns are validated by name. Colors are not: an
// unparseable color falls back to the default palette when drawn.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*hypergraph.Model, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode hypergraph document")
	}

	m := hypergraph.New()
	for i, n := range doc.Nodes {
		if err := errors.ValidateID("node", n.ID); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, ok := m.Node(n.ID); ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		nd, err := n.toNode()
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if err := m.AddNode(nd); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s", n.ID)
		}
	}

	for i, e := range doc.Edges {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if err := errors.ValidateID("edge", e.ID); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if _, ok := m.Edge(e.ID); ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate edge id %q", e.ID)
		}
		he, err := e.toEdge()
		if err != nil {
			return nil, fmt.Errorf("edge %s: %w", e.ID, err)
		}
		if err := m.AddEdge(he); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %s", e.ID)
		}
	}
	return m, nil
}

// ImportJSON reads the JSON document at path.
func ImportJSON(path string) (*hypergraph.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func (n node) toNode() (hypergraph.Node, error) {
	shape, err := hypergraph.ParseShape(n.Style.Shape)
	if err != nil {
		return hypergraph.Node{}, err
	}
	return hypergraph.Node{
		ID:    n.ID,
		Label: n.Label,
		Pos:   geometry.Pt(n.X, n.Y),
		Data:  n.Data,
		Style: hypergraph.NodeStyle{Color: n.Style.Color, Size: n.Style.Size, Shape: shape},
	}, nil
}

func (e edge) toEdge() (hypergraph.Hyperedge, error) {
	pattern, err := hypergraph.ParsePattern(e.Style.Pattern)
	if err != nil {
		return hypergraph.Hyperedge{}, err
	}
	for _, id := range e.Nodes {
		if err := errors.ValidateID("member", id); err != nil {
			return hypergraph.Hyperedge{}, err
		}
	}
	return hypergraph.Hyperedge{
		ID:      e.ID,
		Label:   e.Label,
		NodeIDs: e.Nodes,
		Data:    e.Data,
		Style:   hypergraph.EdgeStyle{Color: e.Style.Color, Width: e.Style.Width, Pattern: pattern},
	}, nil
}
