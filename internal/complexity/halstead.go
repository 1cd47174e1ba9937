package complexity

import (
	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

// halsteadFor derives Halstead operator/operand counts from fn's direct
// children. The arena stores structural nodes rather than a raw token
// stream (a deliberate consequence of the struct-of-slices redesign, which
// drops tokens the unified Kind vocabulary has no use for), so Call,
// Branch, Loop, CaseArm, Catch, Goto and ShortCircuit nodes stand in for
// operator tokens and Variable/Import nodes stand in for operand tokens.
// This is a structural proxy for lexical Halstead counting, not a token
// scan, and under-counts against a full lexer-based implementation.
func halsteadFor(tree *ast.Tree, fn ast.NodeRef) types.HalsteadMetrics {
	operators := map[string]int{}
	operands := map[string]int{}
	var totalOps, totalOperands int

	for _, c := range tree.Children(fn) {
		switch tree.Kind(c) {
		case ast.KindCall, ast.KindBranch, ast.KindLoop, ast.KindCaseArm,
			ast.KindCatch, ast.KindGoto, ast.KindShortCircuit, ast.KindReturn:
			key := tree.Kind(c).String()
			if name := tree.NodeName(c); name != "" {
				key = key + ":" + name
			}
			operators[key]++
			totalOps++
		case ast.KindVariable, ast.KindImport:
			key := tree.NodeName(c)
			if key == "" {
				key = tree.Kind(c).String()
			}
			operands[key]++
			totalOperands++
		}
	}

	return types.HalsteadMetrics{
		DistinctOperators: len(operators),
		DistinctOperands:  len(operands),
		TotalOperators:    totalOps,
		TotalOperands:     totalOperands,
	}
}
