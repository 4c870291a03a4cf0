package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/csrstore/pkg/graph"
)

func build(t *testing.T, v int64, prop graph.Property, edges ...graph.Pair) *graph.Graph {
	t.Helper()
	g, err := graph.FromCOO(graph.Structure{V: v}, edges, prop)
	require.NoError(t, err)
	return g
}

func cycle(n int) []graph.Pair {
	edges := make([]graph.Pair, n)
	for i := range edges {
		edges[i] = graph.Pair{Src: graph.VertexID(i), Dst: graph.VertexID((i + 1) % n)}
	}
	return edges
}

func TestPageRankSymmetricCycleIsUniform(t *testing.T) {
	g := build(t, 4, graph.Property{Undirected: true}, cycle(4)...)

	scores := PageRank(g, DefaultDamping, DefaultTolerance)
	require.Len(t, scores, 4)
	var ids []graph.VertexID
	for _, s := range scores {
		assert.InDelta(t, 0.25, s.Rank, 1e-3)
		ids = append(ids, s.Vertex)
	}
	assert.ElementsMatch(t, []graph.VertexID{0, 1, 2, 3}, ids)
}

func TestPageRankHubFirst(t *testing.T) {
	// every leaf points at vertex 3
	g := build(t, 4, graph.Property{},
		graph.Pair{Src: 0, Dst: 3}, graph.Pair{Src: 1, Dst: 3}, graph.Pair{Src: 2, Dst: 3}, graph.Pair{Src: 3, Dst: 0})

	scores := PageRank(g, DefaultDamping, DefaultTolerance)
	require.NotEmpty(t, scores)
	assert.Equal(t, graph.VertexID(3), scores[0].Vertex)

	var sum float64
	for _, s := range scores {
		sum += s.Rank
	}
	assert.InDelta(t, 1.0, sum, 1e-3)
}

func TestTopK(t *testing.T) {
	scores := []Score{{0, 0.5}, {1, 0.3}, {2, 0.2}}
	assert.Equal(t, scores[:2], TopK(scores, 2))
	assert.Equal(t, scores, TopK(scores, 10))
	assert.Equal(t, scores, TopK(scores, -1))
	assert.Empty(t, TopK(scores, 0))
}

func TestDegrees(t *testing.T) {
	g := build(t, 5, graph.Property{},
		graph.Pair{Src: 0, Dst: 1}, graph.Pair{Src: 0, Dst: 2}, graph.Pair{Src: 1, Dst: 1}, graph.Pair{Src: 2, Dst: 0})

	s := Degrees(g)
	assert.Equal(t, graph.Degree(0), s.Min)
	assert.Equal(t, graph.Degree(2), s.Max)
	assert.InDelta(t, 0.8, s.Mean, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)
	assert.EqualValues(t, 2, s.Isolated, "vertices 3 and 4")
	assert.EqualValues(t, 1, s.Loops)
}

func TestDegreesEdgeCases(t *testing.T) {
	empty, err := graph.New(graph.Structure{})
	require.NoError(t, err)
	assert.Equal(t, DegreeStats{}, Degrees(empty))

	single, err := graph.New(graph.Structure{V: 1})
	require.NoError(t, err)
	s := Degrees(single)
	assert.Zero(t, s.StdDev)
	assert.EqualValues(t, 1, s.Isolated)
}

func TestDirectedAdapter(t *testing.T) {
	g := build(t, 3, graph.Property{},
		graph.Pair{Src: 0, Dst: 1}, graph.Pair{Src: 0, Dst: 1}, graph.Pair{Src: 2, Dst: 2})

	d := Directed(g)
	assert.Equal(t, 3, d.Nodes().Len())
	assert.Equal(t, 1, d.Edges().Len(), "parallel edges collapse, loops dropped")
	assert.True(t, d.HasEdgeFromTo(0, 1))
	assert.False(t, d.HasEdgeFromTo(1, 0))
}

func TestComponents(t *testing.T) {
	g := build(t, 6, graph.Property{},
		graph.Pair{Src: 3, Dst: 4}, graph.Pair{Src: 5, Dst: 4}, graph.Pair{Src: 0, Dst: 1})

	cc := Components(g)
	require.Len(t, cc, 3)
	assert.Equal(t, []graph.VertexID{3, 4, 5}, cc[0])
	assert.Equal(t, []graph.VertexID{0, 1}, cc[1])
	assert.Equal(t, []graph.VertexID{2}, cc[2])
}
