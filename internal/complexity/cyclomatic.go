package complexity

import "github.com/standardbeagle/codeintel/internal/ast"

// cyclomaticFor computes 1 + the weighted count of decision points in fn's
// body, per spec.md §4.7: every Branch/Loop/CaseArm/Catch/ShortCircuit adds
// one, every Goto adds three (a goto edge can jump into or out of
// arbitrarily many enclosing blocks).
func cyclomaticFor(tree *ast.Tree, fn ast.NodeRef) int {
	total := 1
	for _, c := range decisionChildren(tree, fn) {
		total += tree.Kind(c).CyclomaticWeight()
	}
	return total
}
