package parser

import (
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

func rustSpec() *languageSpec {
	return &languageSpec{
		lang:       types.LangRust,
		extensions: []string{".rs"},
		grammar:    tree_sitter_rust.Language,
		query: `
			(function_item name: (identifier) @function.name) @function
			(impl_item type: (type_identifier) @impl.name body: (declaration_list (function_item name: (identifier) @method.name) @method))
			(struct_item name: (type_identifier) @struct.name) @struct
			(enum_item name: (type_identifier) @enum.name) @enum
			(trait_item name: (type_identifier) @trait.name) @trait
			(mod_item name: (identifier) @module.name) @module
			(use_declaration argument: (_) @import.path) @import
			(let_declaration pattern: (identifier) @variable.name) @variable
			(call_expression function: (identifier) @call.name) @call
			(if_expression) @branch
			(match_expression) @branch
			(match_arm) @casearm
			(while_expression) @loop
			(loop_expression) @loop
			(for_expression) @loop
			(binary_expression operator: "&&") @shortcircuit
			(binary_expression operator: "||") @shortcircuit
			(return_expression) @return
			(line_comment) @comment.text @comment
			(block_comment) @comment.text @comment
		`,
		captures: map[string]captureRule{
			"function":     {kind: ast.KindFunction, nameCap: "function.name"},
			"method":       {kind: ast.KindMethod, nameCap: "method.name"},
			"struct":       {kind: ast.KindStruct, nameCap: "struct.name"},
			"enum":         {kind: ast.KindEnum, nameCap: "enum.name"},
			"trait":        {kind: ast.KindTrait, nameCap: "trait.name"},
			"module":       {kind: ast.KindModule, nameCap: "module.name"},
			"import":       {kind: ast.KindImport, nameCap: "import.path"},
			"variable":     {kind: ast.KindVariable, nameCap: "variable.name"},
			"call":         {kind: ast.KindCall, nameCap: "call.name"},
			"branch":       {kind: ast.KindBranch},
			"loop":         {kind: ast.KindLoop},
			"casearm":      {kind: ast.KindCaseArm},
			"shortcircuit": {kind: ast.KindShortCircuit},
			"return":       {kind: ast.KindReturn},
			"comment":      {kind: ast.KindComment, nameCap: "comment.text"},
		},
	}
}
