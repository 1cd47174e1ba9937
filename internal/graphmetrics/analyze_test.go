package graphmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/types"
)

// triangleGraph builds a -> b -> c -> a, the simplest strongly connected,
// fully-clustered (every pair of neighbors also adjacent) test fixture.
func triangleGraph() *types.DependencyGraph {
	g := types.NewDependencyGraph()
	for _, k := range []types.NodeKey{"a", "b", "c"} {
		g.AddNode(types.NodeInfo{Key: k})
	}
	g.AddEdge(types.Edge{From: "a", To: "b", Kind: types.EdgeCalls})
	g.AddEdge(types.Edge{From: "b", To: "c", Kind: types.EdgeCalls})
	g.AddEdge(types.Edge{From: "c", To: "a", Kind: types.EdgeCalls})
	g.Canonicalize()
	return g
}

// chainGraph builds a -> b -> c -> d, a pure chain with no cycles.
func chainGraph() *types.DependencyGraph {
	g := types.NewDependencyGraph()
	for _, k := range []types.NodeKey{"a", "b", "c", "d"} {
		g.AddNode(types.NodeInfo{Key: k})
	}
	g.AddEdge(types.Edge{From: "a", To: "b", Kind: types.EdgeCalls})
	g.AddEdge(types.Edge{From: "b", To: "c", Kind: types.EdgeCalls})
	g.AddEdge(types.Edge{From: "c", To: "d", Kind: types.EdgeCalls})
	g.Canonicalize()
	return g
}

func TestSCC_TriangleIsOneComponent(t *testing.T) {
	csr := Build(triangleGraph())
	comps := SCC(csr)
	assert.Len(t, comps, 1)
	assert.ElementsMatch(t, []types.NodeKey{"a", "b", "c"}, comps[0].Members)
}

func TestSCC_ChainIsFourSingletonComponents(t *testing.T) {
	csr := Build(chainGraph())
	comps := SCC(csr)
	assert.Len(t, comps, 4)
}

func TestClustering_TriangleNodesAreFullyClustered(t *testing.T) {
	csr := Build(triangleGraph())
	perNode, avg := Clustering(csr)
	assert.Equal(t, 1.0, perNode["a"])
	assert.Equal(t, 1.0, avg)
}

func TestKCore_TriangleIsAllCoreTwo(t *testing.T) {
	csr := Build(triangleGraph())
	coreness := KCore(csr)
	assert.Equal(t, 2, coreness["a"])
	assert.Equal(t, 2, coreness["b"])
	assert.Equal(t, 2, coreness["c"])
}

func TestDiameterRadius_ChainOfFour(t *testing.T) {
	csr := Build(chainGraph())
	diameter, radius := DiameterRadius(csr)
	assert.Equal(t, 3, diameter)
	assert.Equal(t, 1, radius)
}

func TestBetweenness_ChainMiddleNodesScoreHigherThanEnds(t *testing.T) {
	csr := Build(chainGraph())
	scores := Betweenness(csr)
	assert.Greater(t, scores["b"], scores["a"])
	assert.Greater(t, scores["c"], scores["d"])
}

func TestAnalyze_EmptyGraphReturnsZeroValues(t *testing.T) {
	g := types.NewDependencyGraph()
	metrics := Analyze(g)
	assert.Equal(t, 0, metrics.Diameter)
	assert.Equal(t, 0, metrics.Radius)
	assert.Empty(t, metrics.Components)
}
