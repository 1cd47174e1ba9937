package complexity

import "github.com/standardbeagle/codeintel/internal/ast"

// cognitiveFor computes cognitive complexity per the common formulation:
// every control-flow construct adds 1 plus its nesting depth, logical
// short-circuit operators add a flat 1 with no nesting increment. Nesting
// depth is reconstructed from span containment (a stack of open spans)
// rather than arena parentage, since the lowering pass flattens everything
// inside a function body to direct children of that function — see
// decisionChildren in engine.go.
func cognitiveFor(tree *ast.Tree, fn ast.NodeRef) int {
	points := decisionChildren(tree, fn)

	total := 0
	var open []ast.Span
	for _, p := range points {
		span := tree.Span(p)
		for len(open) > 0 && open[len(open)-1].EndByte <= span.StartByte {
			open = open[:len(open)-1]
		}
		kind := tree.Kind(p)
		if kind == ast.KindShortCircuit {
			total++
		} else {
			total += 1 + len(open)
		}
		if kind.IsNestingConstruct() {
			open = append(open, span)
		}
	}
	return total
}
