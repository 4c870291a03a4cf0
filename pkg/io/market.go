package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/csrstore/pkg/graph"
)

// MarketHeader is the banner written by [WriteMarket].
const MarketHeader = "%%MatrixMarket matrix coordinate pattern general"

// WriteMarket writes g as a Matrix-Market coordinate pattern file:
//
//	%%MatrixMarket matrix coordinate pattern general
//	V V E
//	row col        (one line per stored edge, 1-indexed)
//
// Edges are written in row-major order. Every stored direction is its own
// line, so an undirected graph lists both (u,v) and (v,u) and reloads as the
// same arrays when read with Property.Directed.
func WriteMarket(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d %d\n", MarketHeader, g.V(), g.V(), g.E()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]byte, 0, 32)
	for v := range g.Vertices().All() {
		for _, d := range v.Neighbors() {
			line = strconv.AppendInt(line[:0], int64(v.ID())+1, 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(d)+1, 10)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return fmt.Errorf("write edge: %w", err)
			}
		}
	}
	return bw.Flush()
}

// ExportMarket writes g as a Matrix-Market file at path.
func ExportMarket(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteMarket(g, w) })
}
