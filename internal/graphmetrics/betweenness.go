package graphmetrics

import (
	"gonum.org/v1/gonum/graph/network"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Betweenness runs gonum's Brandes' algorithm over c's graph and remaps
// the int64-keyed result back onto NodeKeys.
func Betweenness(c *CSR) map[types.NodeKey]float64 {
	scores := network.Betweenness(c.Graph)
	out := make(map[types.NodeKey]float64, len(scores))
	for id, score := range scores {
		out[c.KeyOf(id)] = score
	}
	return out
}
