package parser

import (
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

const pythonQuery = `
	(function_definition name: (identifier) @function.name) @function
	(class_definition name: (identifier) @class.name) @class
	(import_statement name: (dotted_name) @import.path) @import
	(import_from_statement module_name: (dotted_name) @import.path) @import
	(assignment left: (identifier) @variable.name) @variable
	(call function: (identifier) @call.name) @call
	(if_statement) @branch
	(match_statement) @branch
	(case_clause) @casearm
	(while_statement) @loop
	(for_statement) @loop
	(except_clause) @catch
	(conditional_expression) @branch
	(boolean_operator operator: "and") @shortcircuit
	(boolean_operator operator: "or") @shortcircuit
	(return_statement) @return
	(comment) @comment.text @comment
`

var pythonCaptures = map[string]captureRule{
	"function":     {kind: ast.KindFunction, nameCap: "function.name"},
	"class":        {kind: ast.KindClass, nameCap: "class.name"},
	"import":       {kind: ast.KindImport, nameCap: "import.path"},
	"variable":     {kind: ast.KindVariable, nameCap: "variable.name"},
	"call":         {kind: ast.KindCall, nameCap: "call.name"},
	"branch":       {kind: ast.KindBranch},
	"loop":         {kind: ast.KindLoop},
	"casearm":      {kind: ast.KindCaseArm},
	"catch":        {kind: ast.KindCatch},
	"shortcircuit": {kind: ast.KindShortCircuit},
	"return":       {kind: ast.KindReturn},
	"comment":      {kind: ast.KindComment, nameCap: "comment.text"},
}

func pythonSpec() *languageSpec {
	return &languageSpec{
		lang:       types.LangPython,
		extensions: []string{".py", ".pyi"},
		grammar:    tree_sitter_python.Language,
		query:      pythonQuery,
		captures:   pythonCaptures,
	}
}

// cythonSpec reuses the Python grammar: Cython's .pyx/.pxd surface is a
// superset of Python syntax, and tree-sitter-cython isn't in the
// dependency set, so the Python frontend is close enough to produce a
// useful (if not fully typed-cdef-aware) unified tree — the Python query
// captures no cdef/cpdef construct, so those declarations are not lowered
// rather than being misclassified.
func cythonSpec() *languageSpec {
	spec := pythonSpec()
	spec.lang = types.LangCython
	spec.extensions = []string{".pyx", ".pxd", ".pxi"}
	return spec
}
