package graphmetrics

import "github.com/standardbeagle/codeintel/internal/types"

// KCore computes each node's coreness via the standard degeneracy-peeling
// algorithm: repeatedly strip the lowest-degree remaining node, assigning
// it a coreness equal to the highest degree threshold reached so far. Like
// Clustering, this has no gonum equivalent and is a direct textbook
// implementation over the undirected adjacency c.Neighbors already
// builds.
func KCore(c *CSR) map[types.NodeKey]int {
	n := c.Len()
	coreness := make(map[types.NodeKey]int, n)
	if n == 0 {
		return coreness
	}

	degree := make([]int, n)
	neighbors := make([][]int64, n)
	for i := int64(0); i < int64(n); i++ {
		neighbors[i] = c.Neighbors(i)
		degree[i] = len(neighbors[i])
	}

	removed := make([]bool, n)
	core := 0
	remaining := n

	for remaining > 0 {
		// Find the remaining node with the smallest current degree.
		minIdx := int64(-1)
		minDeg := -1
		for i := int64(0); i < int64(n); i++ {
			if removed[i] {
				continue
			}
			if minDeg < 0 || degree[i] < minDeg {
				minDeg = degree[i]
				minIdx = i
			}
		}
		if minDeg > core {
			core = minDeg
		}
		coreness[c.KeyOf(minIdx)] = core
		removed[minIdx] = true
		remaining--
		for _, nb := range neighbors[minIdx] {
			if !removed[nb] {
				degree[nb]--
			}
		}
	}
	return coreness
}
