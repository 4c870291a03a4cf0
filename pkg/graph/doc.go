// Package graph provides an immutable Compressed Sparse Row (CSR) graph
// container and its traversal primitives.
//
// # Overview
//
// A [Graph] stores V vertices and E directed edges in packed arrays:
//
//	outOffsets [V+1]   row boundaries: the out-edges of v are
//	outEdges   [E]     outEdges[outOffsets[v]:outOffsets[v+1]]
//	outDegrees [V]     outOffsets[v+1] - outOffsets[v]
//
// Optionally a second, transposed CSR holds the incoming edges. The COO edge
// list the arrays were built from is kept alongside, so writers can replay the
// edges without walking the rows.
//
// Row lookup is O(1) and a row scan is O(degree). The arrays are allocated
// once and never resized; a graph never changes after construction and is
// safe for any number of concurrent readers.
//
// # Construction
//
// [FromCOO] converts an edge list into CSR form. It validates every id
// against the declared [Structure], then applies the options of [Property]:
//
//	g, err := graph.FromCOO(graph.Structure{V: 3}, coo, graph.Property{
//	    Undirected:   true, // store (u,v) and (v,u)
//	    Dedup:        true, // drop self-loops and repeated pairs
//	    Sorted:       true, // sort each row by destination id
//	    BuildInEdges: true, // materialize the incoming CSR
//	})
//
// Without Sorted, the edges of each row keep the order in which they appear
// in the input. [FromCSR] adopts ready-made arrays (as read from a binary
// snapshot) after checking every invariant, and [Graph.ToCOO] inverts the
// conversion.
//
// [New] creates a graph of isolated vertices.
//
// # Traversal
//
// Vertices and edges are visited through small value handles that point back
// into the graph. Handles and cursors are created only by the graph; they
// hold no copy of the data and are valid as long as the graph is.
//
//	for v := range g.Vertices().All() {
//	    for e := range v.Edges().All() {
//	        fmt.Println(e.Src().ID(), "->", e.Dest().ID())
//	    }
//	}
//
// The explicit cursor form allocates nothing per step:
//
//	r := g.Vertex(7).Edges()
//	for it, end := r.Begin(), r.End(); !it.Equal(end); it.Next() {
//	    use(it.Edge().Dest())
//	}
//
// [Vertex.InEdges] walks the incoming CSR: each yielded [Edge] has the
// neighbor as Src and the vertex itself as Dest. There is no separate
// incoming-vertex iterator; [Vertex.InNeighbors] exposes the ids directly.
//
// # Errors
//
// Construction never returns a partially built graph. Declared counts that
// disagree with the data, ids outside [0, V) and malformed CSR arrays are
// reported as [errors.StructureError]. Accessing a vertex or edge outside its
// range through [Graph.Vertex] or [Graph.Edge] panics, like a slice index.
//
// [errors.StructureError]: github.com/matzehuels/csrstore/pkg/errors.StructureError
package graph
