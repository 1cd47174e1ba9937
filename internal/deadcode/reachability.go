package deadcode

import (
	roaring "github.com/RoaringBitmap/roaring/v2"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Reachable runs a fixed-bit-set worklist (spec.md §4.8) outward from seeds
// over graph's Calls/Imports edges, resolving each edge endpoint's NodeKey
// back to the symbol(s) declared under that qualified name via table.
func Reachable(table *types.SymbolTable, graph *types.DependencyGraph, seeds []types.SymbolID) *roaring.Bitmap {
	visited := roaring.New()
	var queue []types.SymbolID
	for _, id := range seeds {
		if visited.CheckedAdd(uint32(id)) {
			queue = append(queue, id)
		}
	}

	adjacency := buildAdjacency(graph)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sym, ok := table.Get(id)
		if !ok {
			continue
		}
		for _, calleeKey := range adjacency[types.NodeKey(sym.QualifiedName)] {
			for _, callee := range table.Lookup(string(calleeKey)) {
				if visited.CheckedAdd(uint32(callee.ID)) {
					queue = append(queue, callee.ID)
				}
			}
		}
	}
	return visited
}

func buildAdjacency(graph *types.DependencyGraph) map[types.NodeKey][]types.NodeKey {
	adj := make(map[types.NodeKey][]types.NodeKey, len(graph.Nodes))
	for _, e := range graph.Edges {
		if e.Kind != types.EdgeCalls && e.Kind != types.EdgeImports {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}
