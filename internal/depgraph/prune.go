package depgraph

import (
	"sort"

	"github.com/standardbeagle/codeintel/internal/types"
)

const DefaultNodeBudget = 500

// Prune reduces g to the top-budget nodes by PageRank score, plus the
// interior nodes of one shortest undirected path (found by BFS) between
// each pair of them (spec.md "Pruning" — bridging nodes keep the graph
// connected rather than leaving a scattering of top scorers), so the
// result can hold more than budget nodes. Ties in
// PageRank score break on canonical node key so the result is
// deterministic across runs (spec.md S6).
func Prune(g *types.DependencyGraph, budget int) *types.DependencyGraph {
	if budget <= 0 {
		budget = DefaultNodeBudget
	}
	if g.NodeCount() <= budget {
		return g
	}

	scores := Rank(g)
	nodes := g.SortedNodeKeys()
	sort.Slice(nodes, func(i, j int) bool {
		si, sj := scores[nodes[i]], scores[nodes[j]]
		if si != sj {
			return si > sj
		}
		return nodes[i] < nodes[j]
	})

	retained := make(map[types.NodeKey]bool, budget)
	top := nodes[:budget]
	for _, k := range top {
		retained[k] = true
	}

	adjacency := buildAdjacency(g)
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			for _, bridge := range shortestPath(adjacency, top[i], top[j]) {
				retained[bridge] = true
			}
		}
	}

	out := types.NewDependencyGraph()
	for key := range retained {
		if info, ok := g.Nodes[key]; ok {
			out.AddNode(info)
		}
	}
	for _, e := range g.Edges {
		if retained[e.From] && retained[e.To] {
			out.AddEdge(e)
		}
	}
	out.Canonicalize()
	return out
}

func buildAdjacency(g *types.DependencyGraph) map[types.NodeKey][]types.NodeKey {
	adj := make(map[types.NodeKey][]types.NodeKey, g.NodeCount())
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From) // undirected for bridging purposes
	}
	return adj
}

// shortestPath returns the interior nodes (from/to excluded) of one
// shortest undirected path between from and to via BFS, or nil if
// unreachable or adjacent.
func shortestPath(adj map[types.NodeKey][]types.NodeKey, from, to types.NodeKey) []types.NodeKey {
	if from == to {
		return nil
	}
	prev := map[types.NodeKey]types.NodeKey{from: from}
	queue := []types.NodeKey{from}
	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		neighbors := append([]types.NodeKey{}, adj[cur]...)
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
		for _, next := range neighbors {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			if next == to {
				found = true
				break
			}
			queue = append(queue, next)
		}
	}
	if !found {
		return nil
	}
	var path []types.NodeKey
	for cur := to; cur != from; cur = prev[cur] {
		if cur != to {
			path = append(path, cur)
		}
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
