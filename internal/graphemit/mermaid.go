package graphemit

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Mermaid renders g as a Mermaid flowchart, following the normative grammar
// spec.md §4.6 pins: `graph TD\n<node_def>*\n<edge_def>*`. Node/edge order
// is always g's canonical sort order, so output is byte-identical across
// runs on the same graph.
func Mermaid(g *types.DependencyGraph, mode EscapeMode) string {
	s := NewIDSanitizer()
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, key := range g.SortedNodeKeys() {
		info := g.Nodes[key]
		id := s.ID(key)
		label := EscapeLabel(info.DisplayLabel, mode)
		if label == "" {
			label = EscapeLabel(string(key), mode)
		}
		if info.Kind == types.NodeKindTrait {
			fmt.Fprintf(&b, "%s((%s))\n", id, label)
		} else {
			fmt.Fprintf(&b, "%s[%s]\n", id, label)
		}
	}

	for _, e := range g.Edges {
		from := s.ID(e.From)
		to := s.ID(e.To)
		if label := edgeLabel(e.Kind); label != "" {
			fmt.Fprintf(&b, "%s -->|%s| %s\n", from, label, to)
		} else {
			fmt.Fprintf(&b, "%s --> %s\n", from, to)
		}
	}

	return b.String()
}

func edgeLabel(kind types.EdgeKind) string {
	switch kind {
	case types.EdgeCalls:
		return ""
	case types.EdgeImports:
		return "imports"
	case types.EdgeInherits:
		return "inherits"
	case types.EdgeUses:
		return "uses"
	case types.EdgeContains:
		return "contains"
	case types.EdgeTransitive:
		return "transitive"
	default:
		return ""
	}
}
