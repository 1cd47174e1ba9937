package depgraph

import "github.com/standardbeagle/codeintel/internal/types"

// PageRank parameters pinned exactly by spec.md §4.5/§9 as a testable
// invariant: gonum.org/v1/gonum/graph/network.PageRank only exposes a
// convergence tolerance, not a hard iteration cap, so this bounded power
// iteration is hand-rolled to guarantee the cap is observed exactly
// regardless of convergence behavior on pathological graphs.
const (
	Damping   = 0.85
	Tolerance = 1e-6
	MaxIter   = 100
)

// Rank runs bounded power-iteration PageRank over g's edges (direction:
// dependency points from caller to callee, and rank flows along those
// edges — a heavily-depended-upon node accumulates rank from its callers).
func Rank(g *types.DependencyGraph) map[types.NodeKey]float64 {
	nodes := g.SortedNodeKeys()
	n := len(nodes)
	if n == 0 {
		return nil
	}

	index := make(map[types.NodeKey]int, n)
	for i, k := range nodes {
		index[k] = i
	}

	// outDegree[i] = number of outgoing edges from node i; incoming[i] =
	// list of source node indices for edges pointing at i.
	outDegree := make([]float64, n)
	incoming := make([][]int, n)
	for _, e := range g.Edges {
		fi, ok1 := index[e.From]
		ti, ok2 := index[e.To]
		if !ok1 || !ok2 {
			continue
		}
		outDegree[fi]++
		incoming[ti] = append(incoming[ti], fi)
	}

	rank := make([]float64, n)
	init := 1.0 / float64(n)
	for i := range rank {
		rank[i] = init
	}

	danglingMass := func(r []float64) float64 {
		var sum float64
		for i, d := range outDegree {
			if d == 0 {
				sum += r[i]
			}
		}
		return sum
	}

	next := make([]float64, n)
	for iter := 0; iter < MaxIter; iter++ {
		dangling := danglingMass(rank) * Damping / float64(n)
		base := (1-Damping)/float64(n) + dangling

		var delta float64
		for i := 0; i < n; i++ {
			var sum float64
			for _, src := range incoming[i] {
				sum += rank[src] / outDegree[src]
			}
			next[i] = base + Damping*sum
			delta += abs(next[i] - rank[i])
		}
		rank, next = next, rank
		if delta < Tolerance {
			break
		}
	}

	out := make(map[types.NodeKey]float64, n)
	for i, k := range nodes {
		out[k] = rank[i]
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
