package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/types"
)

func TestTree_AddAndWalk(t *testing.T) {
	tr := NewTree(types.FileID(1), 8)

	root := tr.Add(NilRef, KindFile, 0, Span{}, tr.Intern("main.go"))
	fn := tr.Add(root, KindFunction, FlagExported, Span{StartLine: 3, EndLine: 10}, tr.Intern("Run"))
	branch := tr.Add(fn, KindBranch, 0, Span{StartLine: 4, EndLine: 6}, 0)
	_ = tr.Add(fn, KindReturn, 0, Span{StartLine: 9}, 0)

	assert.Equal(t, 4, tr.Len())
	assert.Equal(t, KindFile, tr.Kind(root))
	assert.Equal(t, NilRef, tr.Parent(root))
	assert.Equal(t, root, tr.Parent(fn))
	assert.Equal(t, "Run", tr.NodeName(fn))
	assert.True(t, tr.Flags(fn).Has(FlagExported))

	var visited []Kind
	tr.Walk(root, func(n NodeRef) bool {
		visited = append(visited, tr.Kind(n))
		return true
	})
	assert.Equal(t, []Kind{KindFile, KindFunction, KindBranch, KindReturn}, visited)

	assert.ElementsMatch(t, []NodeRef{branch, 4}, tr.Children(fn))
}

func TestTree_Ancestors(t *testing.T) {
	tr := NewTree(types.FileID(1), 4)
	root := tr.Add(NilRef, KindFile, 0, Span{}, 0)
	class := tr.Add(root, KindClass, 0, Span{}, tr.Intern("Widget"))
	method := tr.Add(class, KindMethod, 0, Span{}, tr.Intern("Render"))

	assert.Equal(t, []NodeRef{class, root}, tr.Ancestors(method))
	assert.Equal(t, method, tr.EnclosingDeclaration(method))
	assert.Equal(t, class, tr.EnclosingDeclaration(tr.Parent(method)))
}

func TestTree_Intern(t *testing.T) {
	tr := NewTree(types.FileID(1), 0)
	a := tr.Intern("foo")
	b := tr.Intern("bar")
	c := tr.Intern("foo")

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "foo", tr.Name(a))
	assert.Equal(t, NameRef(0), tr.Intern(""))
}

func TestFlags_SetClearHas(t *testing.T) {
	var f Flags
	f = f.Set(FlagAsync)
	assert.True(t, f.Has(FlagAsync))
	assert.False(t, f.Has(FlagTest))
	f = f.Clear(FlagAsync)
	assert.False(t, f.Has(FlagAsync))
}
