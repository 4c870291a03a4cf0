// Package io provides persistence for CSR graphs: a binary snapshot codec,
// a Matrix-Market writer and JSON import/export.
//
// # Overview
//
// A parsed graph is expensive to rebuild from text: every id is tokenized,
// validated and scattered into the CSR arrays. The binary snapshot stores the
// arrays themselves, so reloading is a sequential read with no sorting and
// reproduces the arrays bit for bit. The snapshot is the format of the
// on-disk and remote caches.
//
// # Binary Layout
//
// All integers are little-endian:
//
//	magic      [4]byte   "CSRG"
//	version    uint16    1
//	flags      uint16    bit0 directed, bit1 in-edges, bit2 sorted, bit3 weighted
//	V          int64
//	E          int64
//	outOffsets [V+1]int64
//	outEdges   [E]int32
//	inOffsets  [V+1]int64   only if bit1
//	inEdges    [E]int32     only if bit1
//
// Use [WriteBinary] / [ReadBinary] with any stream, or [ExportBinary] /
// [ImportBinary] with file paths:
//
//	if err := io.ExportBinary(g, "web.csr"); err != nil {
//	    log.Fatal(err)
//	}
//	g2, err := io.ImportBinary("web.csr")
//
// # Text Outputs
//
// [WriteMarket] writes a Matrix-Market coordinate pattern file, 1-indexed,
// one line per stored edge. [WriteJSON] writes the vertex count, the
// direction and the edge list:
//
//	{"vertices": 3, "directed": true, "edges": [[0, 1], [1, 2]]}
//
// [ReadJSON] reads it back through the regular CSR builder.
//
// # Atomic Writes
//
// Every Export function writes to a temporary file in the destination
// directory and renames it into place. A failed export leaves any previous
// file untouched. Destination failures are reported as [errors.IOError].
//
// # Concurrency
//
// Writers only read the graph and may run concurrently with other readers.
//
// [errors.IOError]: github.com/matzehuels/csrstore/pkg/errors.IOError
package io
