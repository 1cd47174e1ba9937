package parser

import (
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

const jsFamilyQuery = `
	(function_declaration name: (identifier) @function.name) @function
	(generator_function_declaration name: (identifier) @function.name) @function
	(variable_declarator
		name: (identifier) @function.name
		value: [(arrow_function) (function_expression) (generator_function)]) @function
	(variable_declarator
		name: (identifier) @variable.name
		value: (_)) @variable
	(method_definition name: (property_identifier) @method.name) @method
	(class_declaration name: (identifier) @class.name) @class
	(import_statement source: (string) @import.path) @import
	(call_expression function: (identifier) @call.name) @call
	(if_statement) @branch
	(switch_statement) @branch
	(switch_case) @casearm
	(while_statement) @loop
	(for_statement) @loop
	(for_in_statement) @loop
	(catch_clause) @catch
	(binary_expression operator: "&&") @shortcircuit
	(binary_expression operator: "||") @shortcircuit
	(ternary_expression) @branch
	(return_statement) @return
	(comment) @comment.text @comment
`

const tsFamilyQuery = `
	(function_declaration name: (identifier) @function.name) @function
	(method_definition name: (property_identifier) @method.name) @method
	(variable_declarator
		name: (identifier) @function.name
		value: [(arrow_function) (function_expression)]) @function
	(variable_declarator
		name: (identifier) @variable.name
		value: (_)) @variable
	(class_declaration name: (type_identifier) @class.name) @class
	(interface_declaration name: (type_identifier) @class.name) @class
	(enum_declaration name: (identifier) @class.name) @class
	(import_statement source: (string) @import.path) @import
	(call_expression function: (identifier) @call.name) @call
	(if_statement) @branch
	(switch_statement) @branch
	(switch_case) @casearm
	(while_statement) @loop
	(for_statement) @loop
	(for_in_statement) @loop
	(catch_clause) @catch
	(binary_expression operator: "&&") @shortcircuit
	(binary_expression operator: "||") @shortcircuit
	(ternary_expression) @branch
	(return_statement) @return
	(comment) @comment.text @comment
`

var jsFamilyCaptures = map[string]captureRule{
	"function":     {kind: ast.KindFunction, nameCap: "function.name"},
	"method":       {kind: ast.KindMethod, nameCap: "method.name"},
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

func javascriptSpec() *languageSpec {
	return &languageSpec{
		lang:       types.LangJavaScript,
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		grammar:    tree_sitter_javascript.Language,
		query:      jsFamilyQuery,
		captures:   jsFamilyCaptures,
	}
}

func typescriptSpec() *languageSpec {
	return &languageSpec{
		lang:       types.LangTypeScript,
		extensions: []string{".ts", ".tsx"},
		grammar:    tree_sitter_typescript.LanguageTypescript,
		query:      tsFamilyQuery,
		captures:   jsFamilyCaptures,
	}
}
