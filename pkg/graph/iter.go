package graph

import (
	"iter"
	"slices"
	"strconv"
)

// Vertex is a lightweight handle on one vertex: its id plus a non-owning
// pointer to the graph. It is only valid while the graph is in use and is
// obtained from [Graph.Vertex] or by iterating [Graph.Vertices].
type Vertex struct {
	g  *Graph
	id VertexID
}

// ID returns the vertex id.
func (v Vertex) ID() VertexID { return v.id }

// OutDegree returns the number of outgoing edges.
func (v Vertex) OutDegree() Degree { return v.g.outDegrees[v.id] }

// InDegree returns the number of incoming edges, or 0 when the incoming
// CSR was not built.
func (v Vertex) InDegree() Degree { return v.g.InDegree(v.id) }

// Edges returns the range of outgoing edges of v.
func (v Vertex) Edges() EdgeRange {
	return EdgeRange{g: v.g, begin: v.g.outOffsets[v.id], end: v.g.outOffsets[v.id+1]}
}

// InEdges returns the range of incoming edges of v. The range is empty
// when the incoming CSR was not built.
func (v Vertex) InEdges() EdgeRange {
	if v.g.inOffsets == nil {
		return EdgeRange{g: v.g, in: true}
	}
	return EdgeRange{g: v.g, begin: v.g.inOffsets[v.id], end: v.g.inOffsets[v.id+1], in: true}
}

// Neighbors returns the destination ids of v's outgoing edges as a view
// into the packed edge array. The slice must not be modified.
func (v Vertex) Neighbors() []VertexID {
	return v.g.outEdges[v.g.outOffsets[v.id]:v.g.outOffsets[v.id+1]]
}

// InNeighbors returns the source ids of v's incoming edges as a view into
// the packed incoming array, or nil when it was not built.
func (v Vertex) InNeighbors() []VertexID {
	if v.g.inOffsets == nil {
		return nil
	}
	return v.g.inEdges[v.g.inOffsets[v.id]:v.g.inOffsets[v.id+1]]
}

// HasNeighbor reports whether v has an outgoing edge to u. It uses binary
// search when the graph was built with sorted rows, a scan otherwise.
func (v Vertex) HasNeighbor(u VertexID) bool {
	row := v.Neighbors()
	if v.g.prop.Sorted {
		_, ok := slices.BinarySearch(row, u)
		return ok
	}
	return slices.Contains(row, u)
}

// String returns the vertex id in decimal.
func (v Vertex) String() string { return strconv.FormatInt(int64(v.id), 10) }

// Edge is a lightweight handle on one edge: its absolute offset in the
// outgoing (or incoming) packed array plus a non-owning pointer to the graph.
type Edge struct {
	g   *Graph
	off EdgeOffset
	in  bool
}

// ID returns the absolute offset of the edge in its packed array.
func (e Edge) ID() EdgeOffset { return e.off }

// Incoming reports whether the edge was reached through the incoming CSR.
func (e Edge) Incoming() bool { return e.in }

// Dest returns the head of the edge. For an outgoing edge this is the
// packed destination id; for an incoming edge it is the vertex owning the
// row, found by binary search over the offsets.
func (e Edge) Dest() Vertex {
	if e.in {
		return Vertex{g: e.g, id: e.g.rowOf(e.g.inOffsets, e.off)}
	}
	return Vertex{g: e.g, id: e.g.outEdges[e.off]}
}

// Src returns the tail of the edge, the mirror image of [Edge.Dest].
func (e Edge) Src() Vertex {
	if e.in {
		return Vertex{g: e.g, id: e.g.inEdges[e.off]}
	}
	return Vertex{g: e.g, id: e.g.rowOf(e.g.outOffsets, e.off)}
}

// String returns the edge offset in decimal.
func (e Edge) String() string { return strconv.FormatInt(int64(e.off), 10) }

// VertexIt is a forward cursor over vertex ids. Dereferencing with
// [VertexIt.Vertex] builds a handle on the fly; nothing is allocated.
//
// Comparing iterators of different graphs is meaningless.
type VertexIt struct {
	g   *Graph
	cur VertexID
}

// Vertex returns the handle at the cursor.
func (it VertexIt) Vertex() Vertex { return Vertex{g: it.g, id: it.cur} }

// Next advances the cursor by one vertex.
func (it *VertexIt) Next() { it.cur++ }

// Equal reports whether both cursors point at the same position.
func (it VertexIt) Equal(o VertexIt) bool { return it.cur == o.cur }

// VertexRange is the sequence of all vertices of a graph, in id order.
type VertexRange struct {
	g *Graph
}

// Vertices returns the range of all vertices.
func (g *Graph) Vertices() VertexRange { return VertexRange{g: g} }

// Begin returns a cursor at vertex 0.
func (r VertexRange) Begin() VertexIt { return VertexIt{g: r.g} }

// End returns the past-the-end cursor.
func (r VertexRange) End() VertexIt { return VertexIt{g: r.g, cur: VertexID(r.g.V())} }

// Len returns the number of vertices.
func (r VertexRange) Len() int { return int(r.g.V()) }

// All yields every vertex in id order.
func (r VertexRange) All() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		for it, end := r.Begin(), r.End(); !it.Equal(end); it.Next() {
			if !yield(it.Vertex()) {
				return
			}
		}
	}
}

// EdgeIt is a forward cursor over a contiguous slice of a packed edge
// array. Dereferencing with [EdgeIt.Edge] builds a handle carrying the
// absolute offset.
type EdgeIt struct {
	g   *Graph
	cur EdgeOffset
	in  bool
}

// Edge returns the handle at the cursor.
func (it EdgeIt) Edge() Edge { return Edge{g: it.g, off: it.cur, in: it.in} }

// Next advances the cursor by one edge.
func (it *EdgeIt) Next() { it.cur++ }

// Equal reports whether both cursors point at the same position.
func (it EdgeIt) Equal(o EdgeIt) bool { return it.cur == o.cur && it.in == o.in }

// EdgeRange is a contiguous run of edges: one vertex's row, or the whole
// outgoing array.
type EdgeRange struct {
	g          *Graph
	begin, end EdgeOffset
	in         bool
}

// Edges returns the range of all outgoing edges, grouped by source.
func (g *Graph) Edges() EdgeRange { return EdgeRange{g: g, end: EdgeOffset(g.E())} }

// Begin returns a cursor at the first edge of the range.
func (r EdgeRange) Begin() EdgeIt { return EdgeIt{g: r.g, cur: r.begin, in: r.in} }

// End returns the past-the-end cursor.
func (r EdgeRange) End() EdgeIt { return EdgeIt{g: r.g, cur: r.end, in: r.in} }

// Len returns the number of edges in the range.
func (r EdgeRange) Len() int { return int(r.end - r.begin) }

// All yields every edge of the range in storage order.
func (r EdgeRange) All() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for it, end := r.Begin(), r.End(); !it.Equal(end); it.Next() {
			if !yield(it.Edge()) {
				return
			}
		}
	}
}
