package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

func buildTree(file types.FileID) *ast.Tree {
	tr := ast.NewTree(file, 8)
	root := tr.Add(ast.NilRef, ast.KindFile, 0, ast.Span{}, tr.Intern("lib.rs"))
	fn := tr.Add(root, ast.KindFunction, ast.FlagExported, ast.Span{}, tr.Intern("Helper"))
	tr.Add(fn, ast.KindReturn, 0, ast.Span{}, 0)
	return tr
}

func TestBuilder_DeclareAndResolve(t *testing.T) {
	tr := buildTree(1)
	root := tr.Root()
	callerFn := tr.Add(root, ast.KindFunction, 0, ast.Span{}, tr.Intern("caller"))
	tr.Add(callerFn, ast.KindCall, 0, ast.Span{}, tr.Intern("Helper"))
	tr.Add(callerFn, ast.KindCall, 0, ast.Span{}, tr.Intern("unknown_external_fn"))

	b := NewBuilder()
	files := []FileTree{{File: types.SourceFile{ID: 1, Language: types.LangRust}, Tree: tr}}
	b.Declare(files)

	assert.Equal(t, 2, b.Table().Len())

	unresolved := b.Resolve(files)
	assert.Len(t, unresolved, 1)
	assert.Equal(t, "unknown_external_fn", unresolved[0].Name)
	assert.Equal(t, types.UnresolvedExternal, unresolved[0].Reason)

	helpers := b.Table().Lookup("Helper")
	assert.Len(t, helpers, 1)
	assert.True(t, helpers[0].IsExported)
	assert.Len(t, b.Table().References(helpers[0].ID), 1)
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "foo", qualify(nil, "foo"))
	assert.Equal(t, "Outer.inner", qualify([]string{"Outer"}, "inner"))
}
