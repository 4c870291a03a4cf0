package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

type document struct {
	Vertices int64               `json:"vertices"`
	Directed bool                `json:"directed"`
	Edges    [][2]graph.VertexID `json:"edges"`
}

// WriteJSON encodes g as JSON and writes it to w:
//
//	{"vertices": 3, "directed": true, "edges": [[0, 1], [1, 2]]}
//
// Edges are the stored pairs in row-major order, so an undirected graph
// lists both directions. The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Vertices: g.V(),
		Directed: g.Directed(),
		Edges:    make([][2]graph.VertexID, 0, g.E()),
	}
	for _, p := range g.ToCOO() {
		out.Edges = append(out.Edges, [2]graph.VertexID{p.Src, p.Dst})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(g, w) })
}

// JSONFormat identifies documents written by [WriteJSON].
const JSONFormat = "json"

// DecodeJSON decodes a document written by [WriteJSON] into its structure
// and edge list without building it. Undirected documents already list both
// directions, so the structure is marked Mirrored.
func DecodeJSON(r io.Reader) (graph.Structure, []graph.Pair, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return graph.Structure{}, nil, errors.NewParseError(JSONFormat, 0, errors.ReasonMalformedHeader, "%v", err)
	}
	if data.Vertices < 0 {
		return graph.Structure{}, nil, errors.NewParseError(JSONFormat, 0, errors.ReasonMalformedHeader, "negative vertex count %d", data.Vertices)
	}

	s := graph.Structure{V: data.Vertices, E: int64(len(data.Edges)), Direction: graph.Directed}
	if !data.Directed {
		s.Direction = graph.Undirected
		s.Mirrored = true
	}
	coo := make([]graph.Pair, len(data.Edges))
	for i, e := range data.Edges {
		coo[i] = graph.Pair{Src: e[0], Dst: e[1]}
	}
	return s, coo, nil
}

// ReadJSON decodes a graph written by [WriteJSON] and builds it with prop.
// Out-of-range ids are reported as a StructureError.
func ReadJSON(r io.Reader, prop graph.Property) (*graph.Graph, error) {
	s, coo, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	return graph.FromCOO(s, coo, prop)
}

// ImportJSON reads a JSON graph from path.
func ImportJSON(path string, prop graph.Property) (*graph.Graph, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f, prop)
}
