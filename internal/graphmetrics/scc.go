package graphmetrics

import (
	"sort"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/standardbeagle/codeintel/internal/types"
)

// SCC runs Tarjan's algorithm over c's graph, returning each component's
// NodeKeys sorted for determinism, components themselves sorted by their
// smallest member key.
func SCC(c *CSR) []types.StronglyConnectedComponent {
	raw := topo.TarjanSCC(c.Graph)
	out := make([]types.StronglyConnectedComponent, 0, len(raw))
	for _, comp := range raw {
		members := make([]types.NodeKey, 0, len(comp))
		for _, n := range comp {
			members = append(members, c.KeyOf(n.ID()))
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		out = append(out, types.StronglyConnectedComponent{Members: members})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Members) == 0 || len(out[j].Members) == 0 {
			return len(out[i].Members) > len(out[j].Members)
		}
		return out[i].Members[0] < out[j].Members[0]
	})
	return out
}
