package graphmetrics

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
)

// DiameterRadius computes the graph's diameter (longest finite shortest
// path) and radius (smallest eccentricity) via gonum's all-pairs Dijkstra.
// Node pairs with no path between them (common once the graph is pruned
// to a forest of weakly-connected clusters) are excluded from both: a
// diameter/radius measured over disconnected components isn't meaningful,
// and spec.md §4.10 only asks for these over reachable pairs.
func DiameterRadius(c *CSR) (diameter, radius int) {
	n := c.Len()
	if n == 0 {
		return 0, 0
	}

	allShortest := path.DijkstraAllPaths(c.Graph)

	maxEcc := 0
	minEcc := -1
	anyFinite := false
	for u := int64(0); u < int64(n); u++ {
		ecc := 0
		hasFinite := false
		for v := int64(0); v < int64(n); v++ {
			if u == v {
				continue
			}
			w := allShortest.Weight(u, v)
			if math.IsInf(w, 1) {
				continue
			}
			hasFinite = true
			if int(w) > ecc {
				ecc = int(w)
			}
		}
		if !hasFinite {
			continue
		}
		anyFinite = true
		if ecc > maxEcc {
			maxEcc = ecc
		}
		if minEcc < 0 || ecc < minEcc {
			minEcc = ecc
		}
	}
	if !anyFinite {
		return 0, 0
	}
	return maxEcc, minEcc
}
