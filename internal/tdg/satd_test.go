package tdg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

func buildCommentTree(fnEnd uint32, commentText string) (*ast.Tree, ast.NodeRef) {
	tree := ast.NewTree(1, 8)
	root := tree.Add(ast.NilRef, ast.KindFile, 0, ast.Span{}, tree.Intern("a.py"))
	fn := tree.Add(root, ast.KindFunction, 0, ast.Span{StartByte: 0, EndByte: fnEnd}, tree.Intern("deploy"))
	tree.Add(fn, ast.KindComment, 0, ast.Span{StartByte: 5, EndByte: 5 + uint32(len(commentText)), StartLine: 3}, tree.Intern(commentText))
	return tree, fn
}

func TestScanComments_TODOInsideHighComplexityFunctionIsHighSeverity(t *testing.T) {
	tree, _ := buildCommentTree(500, "TODO: fix this hack before release")
	items := ScanComments(tree, 1, func(ast.NodeRef) int { return 25 })

	assert.Len(t, items, 1)
	assert.Equal(t, types.SATDDefect, items[0].Category)
	assert.GreaterOrEqual(t, items[0].Severity, types.SATDHigh)
	assert.Equal(t, 3, items[0].Line)
}

func TestScanComments_PlainTODOWithoutComplexityIsLowerSeverity(t *testing.T) {
	tree, _ := buildCommentTree(20, "TODO: rename this later")
	items := ScanComments(tree, 1, func(ast.NodeRef) int { return 2 })

	assert.Len(t, items, 1)
	assert.Equal(t, types.SATDDesign, items[0].Category)
	assert.Equal(t, types.SATDLow, items[0].Severity)
}

func TestScanComments_OrdinaryCommentIsIgnored(t *testing.T) {
	tree, _ := buildCommentTree(20, "returns the parsed configuration")
	items := ScanComments(tree, 1, func(ast.NodeRef) int { return 0 })

	assert.Empty(t, items)
}

func TestScanComments_FIXMEOutranksTODO(t *testing.T) {
	tree, _ := buildCommentTree(20, "FIXME this todo tracker is broken")
	items := ScanComments(tree, 1, func(ast.NodeRef) int { return 0 })

	assert.Len(t, items, 1)
	assert.Equal(t, types.SATDDefect, items[0].Category)
}

func TestClassify_StemmedFixVariantsMatch(t *testing.T) {
	_, weight, matched := classify("fixing the race condition soon")
	assert.True(t, matched)
	assert.Equal(t, 2, weight)
}

func TestSeverityFromWeight_Buckets(t *testing.T) {
	assert.Equal(t, types.SATDLow, severityFromWeight(0))
	assert.Equal(t, types.SATDMedium, severityFromWeight(2))
	assert.Equal(t, types.SATDHigh, severityFromWeight(4))
	assert.Equal(t, types.SATDCriticalSeverity, severityFromWeight(5))
}
