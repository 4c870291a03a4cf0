// Package nodelink draws graphs as node-link diagrams with Graphviz.
//
// Vertices are circles labelled with their id; edges are arrows for
// directed graphs and plain lines for undirected ones. The diagram is only
// useful for small graphs, so [ToDOT] refuses graphs above
// [Options.MaxVertices].
//
// # Usage
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	if err != nil {
//	    return err
//	}
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools. [RenderSVG] uses [github.com/goccy/go-graphviz], which embeds
// Graphviz compiled to WebAssembly, so no system installation is required.
package nodelink
