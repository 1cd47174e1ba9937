package graphemit

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codeintel/internal/types"
)

// DOT renders g as a Graphviz digraph, node/edge order following g's
// canonical sort order.
func DOT(g *types.DependencyGraph) string {
	s := NewIDSanitizer()
	var b strings.Builder
	b.WriteString("digraph G {\n")

	for _, key := range g.SortedNodeKeys() {
		info := g.Nodes[key]
		id := s.ID(key)
		fmt.Fprintf(&b, "  %s [label=%q];\n", id, info.DisplayLabel)
	}

	for _, e := range g.Edges {
		from := s.ID(e.From)
		to := s.ID(e.To)
		fmt.Fprintf(&b, "  %s -> %s [kind=%q];\n", from, to, e.Kind.String())
	}

	b.WriteString("}\n")
	return b.String()
}
