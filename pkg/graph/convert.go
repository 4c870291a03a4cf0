package graph

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/csrstore/pkg/errors"
)

// defaultSeed seeds the vertex permutation when Property.Seed is zero, so
// randomized builds are reproducible unless a seed is chosen.
const defaultSeed = 0x5eed

// FromCOO builds a graph from an edge list (COOtoCSR).
//
// The edge list is validated against s first: every id must lie in
// [0, s.V), and when s.E is non-zero the list must hold exactly s.E pairs.
// Violations are reported as a StructureError. coo is copied, never retained.
//
// The build then applies, in order:
//
//  1. Randomize: relabel vertices by a seeded permutation
//  2. Mirroring: for undirected graphs every (u,v) with u != v also
//     yields (v,u), unless s.Mirrored says the list already does
//  3. Dedup: drop self-loops and repeated pairs
//  4. DirectedByDegree: keep (u,v) only when u has the lower degree
//     (ties broken by id)
//  5. RemoveSingletons: drop vertices without edges and compact ids
//  6. Counting sort into the outgoing CSR, stable within each row
//  7. Sorted: sort each row by destination id
//  8. BuildInEdges: the same pass over the reversed pairs
//
// The whole build is O(V+E), plus O(E log E) for Dedup and Sorted.
func FromCOO(s Structure, coo []Pair, prop Property) (*Graph, error) {
	if err := checkStructure(s); err != nil {
		return nil, err
	}
	if s.E > 0 && int64(len(coo)) != s.E {
		return nil, errors.NewStructureError("declared %d edges, observed %d", s.E, len(coo))
	}
	for i, p := range coo {
		if p.Src < 0 || int64(p.Src) >= s.V || p.Dst < 0 || int64(p.Dst) >= s.V {
			return nil, errors.NewStructureError("edge %d (%d, %d) outside [0, %d)", i, p.Src, p.Dst, s.V)
		}
	}

	edges := slices.Clone(coo)
	if edges == nil {
		edges = []Pair{}
	}
	v := s.V

	if prop.Randomize {
		permute(edges, v, prop.Seed)
	}

	dir := Directed
	if prop.undirected(s) {
		dir = Undirected
		if !s.Mirrored {
			edges = mirror(edges)
		}
	}
	if prop.Dedup {
		edges = dedup(edges)
	}
	if prop.DirectedByDegree {
		edges = orientByDegree(edges, v)
		dir = Directed
	}
	if prop.RemoveSingletons {
		edges, v = removeSingletons(edges, v)
	}

	g := &Graph{
		structure: Structure{
			V:         v,
			E:         int64(len(edges)),
			Direction: dir,
			Weighted:  s.Weighted,
		},
		prop: prop,
		coo:  edges,
	}
	g.outOffsets, g.outEdges, g.outDegrees = buildCSR(edges, v, false, prop.Sorted)
	if prop.BuildInEdges {
		g.inOffsets, g.inEdges, g.inDegrees = buildCSR(edges, v, true, prop.Sorted)
	}
	return g, nil
}

// FromCSR builds a graph directly from CSR arrays, taking ownership of them.
// inOffsets and inEdges may both be nil. Every invariant is checked and a
// violation is reported as a StructureError. The COO list is derived with
// [Graph.ToCOO].
//
// s.Direction and s.Weighted are kept; V and E are taken from the arrays.
func FromCSR(s Structure, prop Property, outOffsets []EdgeOffset, outEdges []VertexID, inOffsets []EdgeOffset, inEdges []VertexID) (*Graph, error) {
	s.E = int64(len(outEdges))
	if err := checkStructure(s); err != nil {
		return nil, err
	}
	if err := checkCSR("out", s.V, outOffsets, outEdges); err != nil {
		return nil, err
	}
	if (inOffsets == nil) != (inEdges == nil) {
		return nil, errors.NewStructureError("in-offsets and in-edges must be given together")
	}
	prop.BuildInEdges = inOffsets != nil
	g := &Graph{
		structure:  Structure{V: s.V, E: s.E, Direction: s.Direction, Weighted: s.Weighted},
		prop:       prop,
		outOffsets: outOffsets,
		outEdges:   outEdges,
		outDegrees: degreesOf(outOffsets),
	}
	if inOffsets != nil {
		if err := checkCSR("in", s.V, inOffsets, inEdges); err != nil {
			return nil, err
		}
		if len(inEdges) != len(outEdges) {
			return nil, errors.NewStructureError("in-edges hold %d entries, out-edges %d", len(inEdges), len(outEdges))
		}
		g.inOffsets, g.inEdges, g.inDegrees = inOffsets, inEdges, degreesOf(inOffsets)
	}
	g.coo = g.ToCOO()
	return g, nil
}

// ToCOO expands the outgoing CSR into a freshly allocated edge list
// (CSRtoCOO). Pairs appear in row-major order: ascending source, then the
// order of each row. The result always holds exactly E pairs.
func (g *Graph) ToCOO() []Pair {
	out := make([]Pair, 0, len(g.outEdges))
	for v := int64(0); v < g.V(); v++ {
		for _, d := range g.outEdges[g.outOffsets[v]:g.outOffsets[v+1]] {
			out = append(out, Pair{Src: VertexID(v), Dst: d})
		}
	}
	return out
}

// buildCSR counts degrees, prefix-sums them into offsets and scatters
// every pair into its row. The scatter walks the input once with a cursor
// per row, so the input order is kept within each row.
func buildCSR(edges []Pair, v int64, transpose, sorted bool) ([]EdgeOffset, []VertexID, []Degree) {
	key := func(p Pair) (VertexID, VertexID) { return p.Src, p.Dst }
	if transpose {
		key = func(p Pair) (VertexID, VertexID) { return p.Dst, p.Src }
	}

	degrees := make([]Degree, v)
	for _, p := range edges {
		src, _ := key(p)
		degrees[src]++
	}

	offsets := make([]EdgeOffset, v+1)
	for i, d := range degrees {
		offsets[i+1] = offsets[i] + EdgeOffset(d)
	}

	adj := make([]VertexID, len(edges))
	cursor := slices.Clone(offsets[:v])
	for _, p := range edges {
		src, dst := key(p)
		adj[cursor[src]] = dst
		cursor[src]++
	}

	if sorted {
		for i := int64(0); i < v; i++ {
			slices.Sort(adj[offsets[i]:offsets[i+1]])
		}
	}
	return offsets, adj, degrees
}

func degreesOf(offsets []EdgeOffset) []Degree {
	degrees := make([]Degree, len(offsets)-1)
	for i := range degrees {
		degrees[i] = Degree(offsets[i+1] - offsets[i])
	}
	return degrees
}

// permute relabels every id through a random permutation of [0, v).
func permute(edges []Pair, v int64, seed uint64) {
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(int(v))
	for i, p := range edges {
		edges[i] = Pair{Src: VertexID(perm[p.Src]), Dst: VertexID(perm[p.Dst])}
	}
}

// mirror appends the reverse of every non-loop pair.
func mirror(edges []Pair) []Pair {
	out := make([]Pair, 0, 2*len(edges))
	for _, p := range edges {
		out = append(out, p)
		if !p.IsLoop() {
			out = append(out, p.Reverse())
		}
	}
	return out
}

// dedup sorts the pairs, then drops repeats and self-loops.
func dedup(edges []Pair) []Pair {
	slices.SortFunc(edges, comparePairs)
	edges = slices.Compact(edges)
	return slices.DeleteFunc(edges, Pair.IsLoop)
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Src, b.Src); c != 0 {
		return c
	}
	return cmp.Compare(a.Dst, b.Dst)
}

// orientByDegree keeps each pair only in the direction of the endpoint
// with the higher out-degree, breaking ties toward the higher id.
// Self-loops never survive.
func orientByDegree(edges []Pair, v int64) []Pair {
	deg := make([]Degree, v)
	for _, p := range edges {
		deg[p.Src]++
	}
	return slices.DeleteFunc(edges, func(p Pair) bool {
		du, dv := deg[p.Src], deg[p.Dst]
		return !(du < dv || (du == dv && p.Src < p.Dst))
	})
}

// removeSingletons drops vertices that appear in no pair and renumbers the
// rest densely, keeping their relative order.
func removeSingletons(edges []Pair, v int64) ([]Pair, int64) {
	used := make([]bool, v)
	for _, p := range edges {
		used[p.Src] = true
		used[p.Dst] = true
	}
	remap := make([]VertexID, v)
	next := VertexID(0)
	for i, u := range used {
		if u {
			remap[i] = next
			next++
		}
	}
	for i, p := range edges {
		edges[i] = Pair{Src: remap[p.Src], Dst: remap[p.Dst]}
	}
	return edges, int64(next)
}
