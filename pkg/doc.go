// Package pkg provides the core libraries of csrstore, a compressed sparse
// row (CSR) graph store for the common benchmark file formats.
//
// # Overview
//
// A graph is read once, normalized into CSR form and never mutated again.
// The pkg directory is organized into three areas:
//
//  1. Core - the container, the format parsers and the writers
//  2. Infrastructure - snapshot caching, configuration, hooks
//  3. Surfaces - pipeline orchestration, analysis, rendering, HTTP
//
// # Architecture
//
// The typical data flow:
//
//	graph file (.mtx, .gr, .graph, .txt, out.*, .edges, .csr)
//	         ↓
//	    [formats] package (parse into an edge list + declared counts)
//	         ↓
//	    [graph] package (FromCOO: mirror, dedup, scatter, sort, in-edges)
//	         ↓
//	    [io] package (binary snapshot, Matrix Market, JSON)
//
// # Quick Start
//
// Load a SNAP edge list as an undirected, deduplicated graph and walk it:
//
//	g, err := formats.Load("roadNet-CA.txt", graph.Property{
//	    Undirected: true,
//	    Dedup:      true,
//	    Sorted:     true,
//	})
//	if err != nil {
//	    return err
//	}
//	for v := range g.Vertices().All() {
//	    for e := range v.Edges().All() {
//	        fmt.Println(v.ID(), "->", e.Dest().ID())
//	    }
//	}
//
// Write a binary snapshot that later loads without parsing:
//
//	err = io.ExportBinary(g, "roadNet-CA.csr")
//
// # Main Packages
//
// ## Core
//
// [graph] - The immutable CSR container: offsets, packed neighbor ids,
// degrees, the optional incoming CSR, COO conversion and iteration.
//
// [formats] - One parser per dialect (Matrix Market, DIMACS 9 and 10, SNAP,
// KONECT, Network Repository, JSON, binary) with format detection.
//
// [io] - Binary snapshot reader and writer, Matrix Market and JSON writers,
// atomic file export.
//
// [errors] - Coded errors plus the parse, structure and I/O error types.
//
// ## Infrastructure
//
// [cache] - Snapshot and artifact caching with file, Redis, MongoDB and null
// backends, content hashing and key derivation.
//
// [config] - The TOML configuration file: build defaults, cache backend,
// server address.
//
// [observability] - Hooks for loads, cache traffic and HTTP requests.
//
// ## Surfaces
//
// [pipeline] - Cached loading and export used by the CLI and the server.
//
// [analysis] - Degree statistics, PageRank and connected components.
//
// [render/nodelink] - DOT and SVG renderings of small graphs via Graphviz.
//
// [server] - Read-only JSON HTTP API over a loaded graph.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/formats/...            # Specific package
//	go test -run Example ./pkg/graph     # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/graph
// [formats]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/formats
// [io]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/pipeline
// [analysis]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/analysis
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/render/nodelink
// [server]: https://pkg.go.dev/github.com/matzehuels/csrstore/pkg/server
package pkg
