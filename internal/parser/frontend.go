// Package parser lowers source bytes in one of five language families
// (Rust, TypeScript/JavaScript, Python, C/C++, Cython) into the unified
// ast.Tree arena, via tree-sitter grammars and a capture-name-driven
// lowering table.
package parser

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

// captureRule maps one query capture name onto an ast.Kind and names the
// companion capture carrying its identifier. Exportedness is not set per
// rule: lowering flags any captured node whose name starts with an
// uppercase letter as exported, in every grammar.
type captureRule struct {
	kind    ast.Kind
	nameCap string // companion capture carrying this node's identifier, e.g. "function.name"
}

// languageSpec is one grammar's wiring: its tree-sitter language, query
// source, and capture-to-Kind table. Grounded on the teacher's per-language
// setupX functions in internal/parser/parser_language_setup.go, collapsed
// from five bespoke methods into one data-driven table since every grammar
// follows the same "query, walk matches, dispatch on capture name" shape.
type languageSpec struct {
	lang       types.Language
	extensions []string
	grammar    func() unsafe.Pointer
	query      string
	captures   map[string]captureRule
}

var registry = map[types.Language]*languageSpec{}
var initOnce sync.Once

func specs() map[types.Language]*languageSpec {
	initOnce.Do(func() {
		registry[types.LangRust] = rustSpec()
		registry[types.LangTypeScript] = typescriptSpec()
		registry[types.LangJavaScript] = javascriptSpec()
		registry[types.LangPython] = pythonSpec()
		registry[types.LangCython] = cythonSpec()
		registry[types.LangC] = cSpec()
		registry[types.LangCPP] = cppSpec()
	})
	return registry
}

// Frontend parses one file's content into a unified ast.Tree.
type Frontend struct {
	mu      sync.Mutex
	parsers map[types.Language]*tree_sitter.Parser
	queries map[types.Language]*tree_sitter.Query
}

func NewFrontend() *Frontend {
	return &Frontend{
		parsers: make(map[types.Language]*tree_sitter.Parser),
		queries: make(map[types.Language]*tree_sitter.Query),
	}
}

func (f *Frontend) parserFor(spec *languageSpec) (*tree_sitter.Parser, *tree_sitter.Query, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p, ok := f.parsers[spec.lang]; ok {
		return p, f.queries[spec.lang], nil
	}

	language := tree_sitter.NewLanguage(spec.grammar())
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(language); err != nil {
		return nil, nil, fmt.Errorf("set language %s: %w", spec.lang, err)
	}
	q, err := tree_sitter.NewQuery(language, spec.query)
	if err != nil {
		return nil, nil, fmt.Errorf("compile query %s: %w", spec.lang, err)
	}
	f.parsers[spec.lang] = p
	f.queries[spec.lang] = q
	return p, q, nil
}

// Parse lowers content (in language lang, belonging to file) into an
// ast.Tree. Files in a language with no registered grammar return a
// single-node File tree with no children, so callers never have to special
// case "unsupported language" beyond checking tree.Len() == 1.
func (f *Frontend) Parse(file types.FileID, path string, content []byte, lang types.Language) (*ast.Tree, []types.Diagnostic) {
	spec, ok := specs()[lang]
	tree := ast.NewTree(file, estimateNodeCount(content))
	root := tree.Add(ast.NilRef, ast.KindFile, 0, ast.Span{EndByte: uint32(len(content))}, tree.Intern(path))
	if !ok {
		return tree, nil
	}

	p, q, err := f.parserFor(spec)
	if err != nil {
		return tree, []types.Diagnostic{{Code: "E_PARSE_INIT", Severity: types.SeverityError, Message: err.Error(), FilePath: path}}
	}

	f.mu.Lock()
	sitterTree := p.Parse(content, nil)
	f.mu.Unlock()
	if sitterTree == nil {
		return tree, []types.Diagnostic{{Code: "E_PARSE", Severity: types.SeverityError, Message: "parser returned no tree", FilePath: path}}
	}
	defer sitterTree.Close()

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()

	captureNames := q.CaptureNames()
	matches := qc.Matches(q, sitterTree.RootNode(), content)

	// parentStack holds the enclosing constructs lowered so far, each with
	// the end byte of its tree-sitter node, so new nodes can be parented
	// correctly without re-walking the cursor tree.
	parentStack := []pendingScope{{end: ^uint32(0), ref: root}}

	for {
		match := matches.Next()
		if match == nil {
			break
		}
		lowerMatch(tree, spec, captureNames, match, content, &parentStack)
	}

	return tree, nil
}

type pendingScope struct {
	end uint32
	ref ast.NodeRef
}

func lowerMatch(tree *ast.Tree, spec *languageSpec, captureNames []string, match *tree_sitter.QueryMatch, content []byte, stack *[]pendingScope) {
	// Companion captures carrying a node's identifier/path/text are named
	// "<rule>.<field>" (function.name, import.path, comment.text); anything
	// with no dot is a structural capture dispatched via spec.captures below.
	named := make(map[string]string, 2)
	for _, c := range match.Captures {
		name := captureNames[c.Index]
		if strings.Contains(name, ".") {
			named[name] = string(content[c.Node.StartByte():c.Node.EndByte()])
		}
	}

	for _, c := range match.Captures {
		name := captureNames[c.Index]
		rule, ok := spec.captures[name]
		if !ok {
			continue
		}
		node := c.Node
		start := node.StartPosition()
		end := node.EndPosition()
		span := ast.Span{
			StartByte: uint32(node.StartByte()), EndByte: uint32(node.EndByte()),
			StartLine: start.Row + 1, StartColumn: start.Column + 1,
			EndLine: end.Row + 1, EndColumn: end.Column + 1,
		}

		for len(*stack) > 0 && (*stack)[len(*stack)-1].end < span.StartByte {
			*stack = (*stack)[:len(*stack)-1]
		}
		parent := (*stack)[len(*stack)-1].ref

		var flags ast.Flags
		ident := named[rule.nameCap]
		if ident != "" && ident[0] >= 'A' && ident[0] <= 'Z' {
			flags = flags.Set(ast.FlagExported)
		}

		ref := tree.Add(parent, rule.kind, flags, span, tree.Intern(ident))
		if rule.kind == ast.KindFunction || rule.kind == ast.KindMethod || rule.kind == ast.KindClass ||
			rule.kind == ast.KindStruct || rule.kind == ast.KindTrait || rule.kind == ast.KindModule {
			*stack = append(*stack, pendingScope{end: span.EndByte, ref: ref})
		}
	}
}

func estimateNodeCount(content []byte) int {
	n := len(content) / 40
	if n < 16 {
		n = 16
	}
	return n
}
