// Package analysis computes whole-graph measures over a built CSR graph.
//
// Degree statistics are read straight from the CSR arrays. Ranking and
// connectivity go through a [gonum.org/v1/gonum/graph/simple] adapter, so
// they cost one pass to copy the edges into gonum's adjacency maps; use them
// on graphs that fit comfortably in memory twice.
package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/csrstore/pkg/graph"
)

// Default PageRank parameters.
const (
	DefaultDamping   = 0.85
	DefaultTolerance = 1e-6
)

// Score is the rank of one vertex.
type Score struct {
	Vertex graph.VertexID `json:"vertex"`
	Rank   float64        `json:"rank"`
}

// DegreeStats summarizes the outgoing degree distribution.
type DegreeStats struct {
	Min      graph.Degree `json:"min"`
	Max      graph.Degree `json:"max"`
	Mean     float64      `json:"mean"`
	StdDev   float64      `json:"stddev"`
	Isolated int64        `json:"isolated"` // Vertices with no out- or in-edges
	Loops    int64        `json:"loops"`    // Self-loops
}

// Degrees computes the out-degree distribution of g and counts isolated
// vertices and self-loops.
func Degrees(g *graph.Graph) DegreeStats {
	var s DegreeStats
	if g.V() == 0 {
		return s
	}

	degrees := g.OutDegrees()
	xs := make([]float64, len(degrees))
	s.Min, s.Max = degrees[0], degrees[0]
	for i, d := range degrees {
		xs[i] = float64(d)
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		s.StdDev = 0
	}

	touched := make([]bool, g.V())
	for v := range g.Vertices().All() {
		for _, u := range v.Neighbors() {
			touched[v.ID()], touched[u] = true, true
			if u == v.ID() {
				s.Loops++
			}
		}
	}
	for _, t := range touched {
		if !t {
			s.Isolated++
		}
	}
	return s
}

// Directed copies g into a gonum directed graph. Vertex ids become node ids.
// Self-loops are dropped and parallel edges collapse, since gonum's simple
// graphs support neither.
func Directed(g *graph.Graph) *simple.DirectedGraph {
	d := simple.NewDirectedGraph()
	for v := range g.Vertices().All() {
		d.AddNode(simple.Node(v.ID()))
	}
	for v := range g.Vertices().All() {
		for _, u := range v.Neighbors() {
			if u != v.ID() {
				d.SetEdge(simple.Edge{F: simple.Node(v.ID()), T: simple.Node(u)})
			}
		}
	}
	return d
}

// Undirected copies g into a gonum undirected graph, ignoring edge
// direction. Self-loops are dropped.
func Undirected(g *graph.Graph) *simple.UndirectedGraph {
	u := simple.NewUndirectedGraph()
	for v := range g.Vertices().All() {
		u.AddNode(simple.Node(v.ID()))
	}
	for v := range g.Vertices().All() {
		for _, w := range v.Neighbors() {
			if w != v.ID() {
				u.SetEdge(simple.Edge{F: simple.Node(v.ID()), T: simple.Node(w)})
			}
		}
	}
	return u
}

// PageRank ranks every vertex of g, highest first. Ties are ordered by id.
func PageRank(g *graph.Graph, damping, tol float64) []Score {
	ranks := network.PageRank(Directed(g), damping, tol)
	scores := make([]Score, 0, len(ranks))
	for id, r := range ranks {
		scores = append(scores, Score{Vertex: graph.VertexID(id), Rank: r})
	}
	slices.SortFunc(scores, func(a, b Score) int {
		if c := cmp.Compare(b.Rank, a.Rank); c != 0 {
			return c
		}
		return cmp.Compare(a.Vertex, b.Vertex)
	})
	return scores
}

// TopK returns the first k scores. A k outside [0, len) returns all of them.
func TopK(scores []Score, k int) []Score {
	if k < 0 || k >= len(scores) {
		return scores
	}
	return scores[:k]
}

// Components returns the weakly connected components of g, each sorted by
// vertex id, largest component first.
func Components(g *graph.Graph) [][]graph.VertexID {
	cc := topo.ConnectedComponents(Undirected(g))
	out := make([][]graph.VertexID, len(cc))
	for i, nodes := range cc {
		ids := make([]graph.VertexID, len(nodes))
		for j, n := range nodes {
			ids[j] = graph.VertexID(n.ID())
		}
		slices.Sort(ids)
		out[i] = ids
	}
	slices.SortFunc(out, func(a, b []graph.VertexID) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a[0], b[0])
	})
	return out
}
