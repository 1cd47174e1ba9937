package graphemit

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codeintel/internal/types"
)

// GraphML renders g as a minimal GraphML document: one <node> per
// canonical-order node, one <edge> per canonical-order edge, with a
// "kind" edge attribute and a "label" node attribute.
func GraphML(g *types.DependencyGraph) string {
	s := NewIDSanitizer()
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">` + "\n")
	b.WriteString(`  <key id="label" for="node" attr.name="label" attr.type="string"/>` + "\n")
	b.WriteString(`  <key id="kind" for="edge" attr.name="kind" attr.type="string"/>` + "\n")
	b.WriteString(`  <graph id="G" edgedefault="directed">` + "\n")

	for _, key := range g.SortedNodeKeys() {
		info := g.Nodes[key]
		id := s.ID(key)
		fmt.Fprintf(&b, "    <node id=%q>\n", id)
		fmt.Fprintf(&b, "      <data key=\"label\">%s</data>\n", xmlEscape(info.DisplayLabel))
		b.WriteString("    </node>\n")
	}

	for i, e := range g.Edges {
		from := s.ID(e.From)
		to := s.ID(e.To)
		fmt.Fprintf(&b, "    <edge id=\"e%d\" source=%q target=%q>\n", i, from, to)
		fmt.Fprintf(&b, "      <data key=\"kind\">%s</data>\n", e.Kind.String())
		b.WriteString("    </edge>\n")
	}

	b.WriteString("  </graph>\n</graphml>\n")
	return b.String()
}

func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
