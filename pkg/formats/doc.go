// Package formats reads graph files in the common benchmark dialects.
//
// # Supported Formats
//
//	Type       Files                 Ids      Notes
//	market     .mtx .mm              1-based  symmetric matrices are undirected
//	dimacs9    .gr .dimacs           1-based  "p sp V E" then "a u v w"
//	dimacs10   .graph .metis         1-based  METIS adjacency lines, undirected
//	snap       .txt .snap .el        0-based  "# Nodes: V Edges: E" comment
//	konect     out.* .konect .tsv    1-based  "% sym|asym|bip weights" line
//	netrepo    .edges .csv           1-based  comma or space separated
//	binary     .csr .bin             -        "CSRG" snapshot, see package io
//	json       .json                 0-based  documents written by io.WriteJSON
//
// Every text parser produces a 0-based edge list plus the declared or
// inferred [graph.Structure]. [graph.Property.IndexBase] overrides the id
// base of a text format.
//
// # Loading
//
// [Load] opens a file, picks the parser and builds the graph:
//
//	g, err := formats.Load("roadNet-CA.txt", graph.Property{Undirected: true, Dedup: true})
//
// [Detect] sniffs the binary magic first, so a snapshot is recognized under
// any name, then asks each parser whether it supports the file name. To
// parse from a stream, call the parser directly and build the [Result]:
//
//	res, err := (&formats.Market{}).Parse(r, prop)
//	if err != nil {
//	    return err
//	}
//	g, err := res.Build(prop)
//
// # Errors
//
// A rejected input returns an [errors.ParseError] naming the format, the
// 1-based line and one of the reasons: malformed header, non-numeric token,
// vertex id out of range, premature end of input or bad magic number.
// Declared counts that disagree with the data surface from the build as an
// [errors.StructureError]. Parsers keep no state between calls and may run
// concurrently on independent inputs.
//
// [errors.ParseError]: github.com/matzehuels/csrstore/pkg/errors.ParseError
// [errors.StructureError]: github.com/matzehuels/csrstore/pkg/errors.StructureError
package formats
