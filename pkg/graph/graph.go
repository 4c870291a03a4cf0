package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/csrstore/pkg/errors"
)

// MaxVertices is the largest vertex count a Graph can hold.
const MaxVertices = math.MaxInt32

// Graph is an immutable graph in Compressed Sparse Row form, with an
// optional incoming CSR and the normalized COO edge list it was built from.
//
// A Graph is built once by [New], [FromCOO] or [FromCSR] and never changes
// afterwards, so any number of goroutines may read it concurrently.
// The zero value is not usable - use New, FromCOO or FromCSR.
type Graph struct {
	structure Structure
	prop      Property

	outOffsets []EdgeOffset // V+1
	outEdges   []VertexID   // E
	outDegrees []Degree     // V
	inOffsets  []EdgeOffset // V+1, nil unless BuildInEdges
	inEdges    []VertexID   // E, nil unless BuildInEdges
	inDegrees  []Degree     // V, nil unless BuildInEdges
	coo        []Pair       // E
}

// Ensure Graph implements Meta.
var _ Meta = (*Graph)(nil)

// New creates a graph with s.V isolated vertices and no edges.
// It returns a StructureError if s declares edges, since there is no
// edge list to populate them from; use [FromCOO] for that.
func New(s Structure) (*Graph, error) {
	if s.E != 0 {
		return nil, errors.NewStructureError("structure declares %d edges but no edge list was given", s.E)
	}
	return FromCOO(s, nil, Property{})
}

// V returns the number of vertices.
func (g *Graph) V() int64 { return g.structure.V }

// E returns the number of stored (directed) edges.
func (g *Graph) E() int64 { return g.structure.E }

// Structure returns the descriptor of the built graph. Its E is the final
// edge count after mirroring and deduplication.
func (g *Graph) Structure() Structure { return g.structure }

// Property returns the options the graph was built with.
func (g *Graph) Property() Property { return g.prop }

// Directed reports whether edges are ordered pairs.
func (g *Graph) Directed() bool { return g.structure.Direction == Directed }

// HasInEdges reports whether the incoming CSR was built.
func (g *Graph) HasInEdges() bool { return g.inOffsets != nil }

// HasVertex reports whether id is a valid vertex id.
func (g *Graph) HasVertex(id VertexID) bool { return id >= 0 && int64(id) < g.V() }

// HasEdge reports whether off is a valid edge offset.
func (g *Graph) HasEdge(off EdgeOffset) bool { return off >= 0 && int64(off) < g.E() }

// Vertex returns the handle of vertex id. It panics if id is out of range.
func (g *Graph) Vertex(id VertexID) Vertex {
	if !g.HasVertex(id) {
		panic(fmt.Sprintf("graph: vertex %d out of range [0, %d)", id, g.V()))
	}
	return Vertex{g: g, id: id}
}

// Edge returns the handle of the outgoing edge at offset off.
// It panics if off is out of range.
func (g *Graph) Edge(off EdgeOffset) Edge {
	if !g.HasEdge(off) {
		panic(fmt.Sprintf("graph: edge %d out of range [0, %d)", off, g.E()))
	}
	return Edge{g: g, off: off}
}

// OutDegree returns the number of outgoing edges of id.
func (g *Graph) OutDegree(id VertexID) Degree { return g.outDegrees[id] }

// InDegree returns the number of incoming edges of id, or 0 when the
// incoming CSR was not built.
func (g *Graph) InDegree(id VertexID) Degree {
	if g.inDegrees == nil {
		return 0
	}
	return g.inDegrees[id]
}

// The accessors below return views of the internal arrays. Callers must
// treat them as read-only.

// OutOffsets returns the V+1 outgoing offsets.
func (g *Graph) OutOffsets() []EdgeOffset { return g.outOffsets }

// OutEdges returns the E packed destination ids.
func (g *Graph) OutEdges() []VertexID { return g.outEdges }

// OutDegrees returns the V outgoing degrees.
func (g *Graph) OutDegrees() []Degree { return g.outDegrees }

// InOffsets returns the V+1 incoming offsets, or nil.
func (g *Graph) InOffsets() []EdgeOffset { return g.inOffsets }

// InEdges returns the E packed source ids of the incoming CSR, or nil.
func (g *Graph) InEdges() []VertexID { return g.inEdges }

// InDegrees returns the V incoming degrees, or nil.
func (g *Graph) InDegrees() []Degree { return g.inDegrees }

// COO returns the normalized edge list the CSR was built from.
func (g *Graph) COO() []Pair { return g.coo }

// Validate re-checks every CSR invariant: offset array lengths and
// endpoints, monotonicity, destination ranges and degree consistency.
// It returns a StructureError describing the first violation.
func (g *Graph) Validate() error {
	if err := checkCSR("out", g.V(), g.outOffsets, g.outEdges); err != nil {
		return err
	}
	if err := checkDegrees("out", g.outOffsets, g.outDegrees); err != nil {
		return err
	}
	if g.inOffsets == nil {
		return nil
	}
	if err := checkCSR("in", g.V(), g.inOffsets, g.inEdges); err != nil {
		return err
	}
	if len(g.inEdges) != len(g.outEdges) {
		return errors.NewStructureError("in-edges hold %d entries, out-edges %d", len(g.inEdges), len(g.outEdges))
	}
	return checkDegrees("in", g.inOffsets, g.inDegrees)
}

// rowOf returns the vertex whose row in offsets contains off.
func (g *Graph) rowOf(offsets []EdgeOffset, off EdgeOffset) VertexID {
	v := sort.Search(int(g.V()), func(i int) bool { return offsets[i+1] > off })
	return VertexID(v)
}

func checkStructure(s Structure) error {
	if s.V < 0 || s.V > MaxVertices {
		return errors.NewStructureError("vertex count %d outside [0, %d]", s.V, MaxVertices)
	}
	if s.E < 0 {
		return errors.NewStructureError("negative edge count %d", s.E)
	}
	return nil
}

func checkCSR(name string, v int64, offsets []EdgeOffset, edges []VertexID) error {
	if int64(len(offsets)) != v+1 {
		return errors.NewStructureError("%s-offsets hold %d entries, want %d", name, len(offsets), v+1)
	}
	if offsets[0] != 0 {
		return errors.NewStructureError("%s-offsets start at %d, want 0", name, offsets[0])
	}
	if int64(offsets[v]) != int64(len(edges)) {
		return errors.NewStructureError("%s-offsets end at %d, want %d", name, offsets[v], len(edges))
	}
	for i := int64(0); i < v; i++ {
		if offsets[i+1] < offsets[i] {
			return errors.NewStructureError("%s-offsets decrease at vertex %d", name, i)
		}
	}
	for i, d := range edges {
		if d < 0 || int64(d) >= v {
			return errors.NewStructureError("%s-edge %d points to %d, outside [0, %d)", name, i, d, v)
		}
	}
	return nil
}

func checkDegrees(name string, offsets []EdgeOffset, degrees []Degree) error {
	if len(degrees) != len(offsets)-1 {
		return errors.NewStructureError("%s-degrees hold %d entries, want %d", name, len(degrees), len(offsets)-1)
	}
	for i, d := range degrees {
		if EdgeOffset(d) != offsets[i+1]-offsets[i] {
			return errors.NewStructureError("%s-degree of vertex %d is %d, offsets say %d", name, i, d, offsets[i+1]-offsets[i])
		}
	}
	return nil
}
