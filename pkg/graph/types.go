package graph

import "fmt"

// VertexID indexes a vertex in [0, V).
type VertexID int32

// EdgeOffset indexes a packed edge array in [0, E), or an offset array in [0, V].
type EdgeOffset int64

// Degree counts the edges incident to a vertex in one direction.
type Degree int32

// Pair is a single COO entry: a directed edge from Src to Dst.
type Pair struct {
	Src VertexID
	Dst VertexID
}

// Reverse returns the pair with its endpoints swapped.
func (p Pair) Reverse() Pair { return Pair{Src: p.Dst, Dst: p.Src} }

// IsLoop reports whether the pair is a self-loop.
func (p Pair) IsLoop() bool { return p.Src == p.Dst }

// Direction tells whether the edges of a graph are ordered pairs.
type Direction int

const (
	// Directed graphs store every edge once, as read.
	Directed Direction = iota
	// Undirected graphs store every non-loop edge in both directions.
	Undirected
)

// String returns "directed" or "undirected".
func (d Direction) String() string {
	if d == Undirected {
		return "undirected"
	}
	return "directed"
}

// Structure describes a graph independently of its edges: the declared
// counts and the kind of graph. Parsers fill it from file headers; callers
// fill it to build synthetic graphs with [New] or [FromCOO].
type Structure struct {
	V         int64     // Number of vertices
	E         int64     // Declared number of COO entries (0 = not declared)
	Direction Direction // Directed or Undirected
	Weighted  bool      // The source carried a numeric weight per edge
	Mirrored  bool      // The COO already lists both directions of every edge
}

// IndexBase selects whether vertex ids in a text file start at 0 or 1.
type IndexBase int

const (
	// BaseDefault uses the convention of the file format.
	BaseDefault IndexBase = iota
	// BaseZero treats ids as 0-indexed.
	BaseZero
	// BaseOne treats ids as 1-indexed.
	BaseOne
)

// String returns "default", "0" or "1".
func (b IndexBase) String() string {
	switch b {
	case BaseZero:
		return "0"
	case BaseOne:
		return "1"
	default:
		return "default"
	}
}

// ParseIndexBase converts "0", "1" or "default" (or "") into an IndexBase.
func ParseIndexBase(s string) (IndexBase, error) {
	switch s {
	case "", "default":
		return BaseDefault, nil
	case "0":
		return BaseZero, nil
	case "1":
		return BaseOne, nil
	}
	return BaseDefault, fmt.Errorf("invalid index base %q (want 0, 1 or default)", s)
}

// Offset returns the value subtracted from a raw id read from a file whose
// format default is def.
func (b IndexBase) Offset(def IndexBase) int64 {
	if b == BaseDefault {
		b = def
	}
	if b == BaseOne {
		return 1
	}
	return 0
}

// Property configures parsing and CSR construction.
// The zero value builds the graph exactly as read: directed unless the
// file says otherwise, unsorted rows, duplicates kept, no in-edges.
type Property struct {
	Sorted           bool      `toml:"sorted"`             // Sort destination ids within each row
	Dedup            bool      `toml:"dedup"`              // Remove self-loops and repeated pairs
	BuildInEdges     bool      `toml:"build_in_edges"`     // Materialize the incoming CSR
	Undirected       bool      `toml:"undirected"`         // Mirror every edge
	Directed         bool      `toml:"directed"`           // Never mirror, even for symmetric files
	PrintStats       bool      `toml:"print_stats"`        // Verbosity hint for the stats printer
	Randomize        bool      `toml:"randomize"`          // Permute vertex ids before building
	Seed             uint64    `toml:"seed"`               // Permutation seed (0 = fixed default)
	IndexBase        IndexBase `toml:"-"`                  // Override the format's id base
	DirectedByDegree bool      `toml:"directed_by_degree"` // Keep u->v only toward the higher degree
	RemoveSingletons bool      `toml:"remove_singletons"`  // Drop vertices without edges
}

// undirected reports whether a graph described by s is stored in both
// directions once built with p.
func (p Property) undirected(s Structure) bool {
	if p.Directed {
		return false
	}
	return p.Undirected || s.Direction == Undirected
}

// Meta is the graph-wide metadata shared by every container: counts, the
// structure descriptor and the options it was built with. Consumers such
// as the CLI summary line depend on Meta rather than on a concrete type.
type Meta interface {
	V() int64
	E() int64
	Structure() Structure
	Property() Property
}
