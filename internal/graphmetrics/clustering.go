package graphmetrics

import (
	"github.com/standardbeagle/codeintel/internal/types"
)

// Clustering computes each node's local clustering coefficient (the
// fraction of possible edges among its neighbors that actually exist,
// treating the dependency graph as undirected for this question — "how
// tightly coupled is this node's neighborhood" doesn't care about call
// direction) plus the unweighted graph average. gonum has no clustering
// routine; this is the textbook definition over the same CSR adjacency
// network.Betweenness and topo.TarjanSCC already use.
func Clustering(c *CSR) (perNode map[types.NodeKey]float64, average float64) {
	n := c.Len()
	perNode = make(map[types.NodeKey]float64, n)
	if n == 0 {
		return perNode, 0
	}

	neighborSets := make([]map[int64]bool, n)
	for i := int64(0); i < int64(n); i++ {
		ns := c.Neighbors(i)
		set := make(map[int64]bool, len(ns))
		for _, v := range ns {
			set[v] = true
		}
		neighborSets[i] = set
	}

	var sum float64
	for i := int64(0); i < int64(n); i++ {
		neighbors := c.Neighbors(i)
		k := len(neighbors)
		coeff := 0.0
		if k >= 2 {
			links := 0
			for a := 0; a < len(neighbors); a++ {
				for b := a + 1; b < len(neighbors); b++ {
					if neighborSets[neighbors[a]][neighbors[b]] {
						links++
					}
				}
			}
			possible := k * (k - 1) / 2
			coeff = float64(links) / float64(possible)
		}
		perNode[c.KeyOf(i)] = coeff
		sum += coeff
	}
	average = sum / float64(n)
	return perNode, average
}
