package parser

import (
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

const cppQuery = `
	(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function
	(function_definition declarator: (function_declarator declarator: (qualified_identifier name: (identifier) @method.name))) @method
	(struct_specifier name: (type_identifier) @struct.name) @struct
	(class_specifier name: (type_identifier) @class.name) @class
	(enum_specifier name: (type_identifier) @enum.name) @enum
	(namespace_definition name: (identifier) @module.name) @module
	(preproc_include path: (_) @import.path) @import
	(declaration declarator: (identifier) @variable.name) @variable
	(call_expression function: (identifier) @call.name) @call
	(if_statement) @branch
	(switch_statement) @branch
	(case_statement) @casearm
	(while_statement) @loop
	(for_statement) @loop
	(do_statement) @loop
	(catch_clause) @catch
	(goto_statement) @goto
	(binary_expression operator: "&&") @shortcircuit
	(binary_expression operator: "||") @shortcircuit
	(conditional_expression) @branch
	(return_statement) @return
	(comment) @comment.text @comment
`

var cFamilyCaptures = map[string]captureRule{
	"function":     {kind: ast.KindFunction, nameCap: "function.name"},
	"method":       {kind: ast.KindMethod, nameCap: "method.name"},
	"struct":       {kind: ast.KindStruct, nameCap: "struct.name"},
	"class":        {kind: ast.KindClass, nameCap: "class.name"},
	"enum":         {kind: ast.KindEnum, nameCap: "enum.name"},
	"module":       {kind: ast.KindModule, nameCap: "module.name"},
	"import":       {kind: ast.KindImport, nameCap: "import.path"},
	"variable":     {kind: ast.KindVariable, nameCap: "variable.name"},
	"call":         {kind: ast.KindCall, nameCap: "call.name"},
	"branch":       {kind: ast.KindBranch},
	"loop":         {kind: ast.KindLoop},
	"casearm":      {kind: ast.KindCaseArm},
	"catch":        {kind: ast.KindCatch},
	"goto":         {kind: ast.KindGoto},
	"shortcircuit": {kind: ast.KindShortCircuit},
	"return":       {kind: ast.KindReturn},
	"comment":      {kind: ast.KindComment, nameCap: "comment.text"},
}

func cppSpec() *languageSpec {
	return &languageSpec{
		lang:       types.LangCPP,
		extensions: []string{".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx"},
		grammar:    tree_sitter_cpp.Language,
		query:      cppQuery,
		captures:   cFamilyCaptures,
	}
}

// cSpec reuses the C++ grammar, which parses plain C well enough for
// structural extraction (no tree-sitter-c dependency is in the retrieval
// pack's go.mod manifests). C-only constructs the C++ grammar rejects
// (K&R declarators, some preprocessor idioms) degrade to parse diagnostics
// rather than a crash.
func cSpec() *languageSpec {
	spec := cppSpec()
	spec.lang = types.LangC
	spec.extensions = []string{".c", ".h"}
	return spec
}
