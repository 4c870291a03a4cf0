package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/csrstore/pkg/errors"
	"github.com/matzehuels/csrstore/pkg/graph"
)

// DefaultMaxVertices bounds the graphs ToDOT accepts when Options leaves
// MaxVertices unset. Graphviz layout is superlinear and unreadable well
// before this size.
const DefaultMaxVertices = 5000

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the out- and in-degree to every vertex label.
	Detailed bool

	// MaxVertices rejects larger graphs. Zero means DefaultMaxVertices and a
	// negative value disables the check.
	MaxVertices int64
}

func (o Options) limit() int64 {
	if o.MaxVertices == 0 {
		return DefaultMaxVertices
	}
	return o.MaxVertices
}

// ToDOT converts a graph to Graphviz DOT source.
//
// Directed graphs become a digraph with one arc per stored edge. Undirected
// graphs become a graph and each mirrored pair is written once, from the
// lower id to the higher one.
func ToDOT(g *graph.Graph, opts Options) (string, error) {
	if limit := opts.limit(); limit > 0 && g.V() > limit {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"graph has %d vertices, node-link rendering is limited to %d", g.V(), limit)
	}

	kind, arrow := "digraph", "->"
	if !g.Directed() {
		kind, arrow = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for v := range g.Vertices().All() {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", v.ID(), fmtLabel(v, opts.Detailed))
	}

	buf.WriteString("\n")
	for v := range g.Vertices().All() {
		for _, u := range v.Neighbors() {
			if !g.Directed() && u < v.ID() {
				continue
			}
			fmt.Fprintf(&buf, "  %d %s %d;\n", v.ID(), arrow, u)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(v graph.Vertex, detailed bool) string {
	if !detailed {
		return v.String()
	}
	return fmt.Sprintf("%d\nout: %d in: %d", v.ID(), v.OutDegree(), v.InDegree())
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with a
// zero-origin viewBox so the drawing scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
