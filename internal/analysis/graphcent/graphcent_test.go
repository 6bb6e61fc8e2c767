package graphcent

import (
	"fmt"
	"testing"

	"observatory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
)

func analyzer() *Analyzer {
	return NewAnalyzer(config.DefaultThresholds())
}

// spokeEdges builds n spoke accounts all replying to one hub.
func spokeEdges(n int) []Edge {
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{From: fmt.Sprintf("spoke%02d", i), To: "hub", Weight: 1})
	}
	return edges
}

func TestCompute_BelowMinimumNodes(t *testing.T) {
	scores, ok := analyzer().Compute(spokeEdges(4))
	assert.False(t, ok)
	assert.Nil(t, scores)
}

func TestCompute_SelfLoopsDoNotCreateNodes(t *testing.T) {
	edges := spokeEdges(4)
	for i := 0; i < 10; i++ {
		edges = append(edges, Edge{From: "hub", To: "hub", Weight: 1})
	}
	_, ok := analyzer().Compute(edges)
	assert.False(t, ok)
}

func TestCompute_HubAndSpokes(t *testing.T) {
	scores, ok := analyzer().Compute(spokeEdges(9))
	require.True(t, ok)
	require.Len(t, scores, 10)

	hub := scores["hub"]
	assert.Equal(t, 1.0, hub.PageRank)
	assert.Equal(t, 1.0, hub.InDegreeNorm)
	assert.Equal(t, 9, hub.InDegree)
	assert.Zero(t, hub.OutDegree)
	assert.Zero(t, hub.Clustering)

	spoke := scores["spoke00"]
	assert.Equal(t, 1.0, spoke.OutDegreeNorm)
	assert.Zero(t, spoke.InDegree)
	assert.Less(t, spoke.PageRank, 1.0)
	assert.Greater(t, hub.NetworkScore, spoke.NetworkScore)

	// No node sits between others in a pure star, so betweenness is flat.
	assert.Zero(t, hub.Betweenness)
	assert.InDelta(t, 0.35+0.15, hub.NetworkScore, 1e-9)
}

func TestCompute_TriangleClustering(t *testing.T) {
	edges := []Edge{
		{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"},
	}
	// Pad with a disconnected chain to clear the node minimum.
	for i := 0; i < 7; i++ {
		edges = append(edges, Edge{From: fmt.Sprintf("x%d", i), To: fmt.Sprintf("x%d", i+1)})
	}

	scores, ok := analyzer().Compute(edges)
	require.True(t, ok)

	for _, name := range []string{"a", "b", "c"} {
		assert.Equal(t, 1.0, scores[name].Clustering, name)
	}
	assert.Zero(t, scores["x3"].Clustering)
}

func TestCompute_PivotPathStaysBounded(t *testing.T) {
	th := config.DefaultThresholds()
	th.BetweennessExactMax = 5
	th.BetweennessPivots = 3

	scores, ok := NewAnalyzer(th).Compute(spokeEdges(11))
	require.True(t, ok)
	for name, c := range scores {
		assert.GreaterOrEqual(t, c.NetworkScore, 0.0, name)
		assert.LessOrEqual(t, c.NetworkScore, 1.0, name)
	}
}

func pathGraph(n int) *simple.WeightedDirectedGraph {
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i+1 < n; i++ {
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(int64(i)), T: simple.Node(int64(i + 1)), W: 1})
	}
	return g
}

func TestPivotBetweenness_DirectedPath(t *testing.T) {
	g := pathGraph(5)
	bc := pivotBetweenness(g, []int64{0, 1, 2, 3, 4})

	// On v0->v1->v2->v3->v4 the interior nodes carry all pair paths.
	assert.Zero(t, bc[0])
	assert.Equal(t, 3.0, bc[1])
	assert.Equal(t, 4.0, bc[2])
	assert.Equal(t, 3.0, bc[3])
	assert.Zero(t, bc[4])
}

func TestPivotNodes_EvenlySpacedAndDeterministic(t *testing.T) {
	names := map[int64]string{0: "d", 1: "a", 2: "c", 3: "b", 4: "e", 5: "f"}

	all := pivotNodes(names, 10)
	assert.Equal(t, []int64{1, 3, 2, 0, 4, 5}, all)

	three := pivotNodes(names, 3)
	assert.Equal(t, []int64{1, 2, 4}, three)
	assert.Equal(t, three, pivotNodes(names, 3))
}
