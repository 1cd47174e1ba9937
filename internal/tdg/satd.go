package tdg

import (
	"regexp"
	"strings"

	"github.com/surgebase/porter2"
	"github.com/zeebo/blake3"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

// satdPattern pairs a marker regex with the category it implies, grounded
// on the teacher's internal/git/pattern_detector.go regex-over-content
// classification shape, retargeted from commit-message anti-patterns to
// comment-node self-admitted-technical-debt markers.
type satdPattern struct {
	re       *regexp.Regexp
	category types.SATDCategory
	weight   int
}

var satdPatterns = []satdPattern{
	{regexp.MustCompile(`(?i)\bFIXME\b`), types.SATDDefect, 3},
	{regexp.MustCompile(`(?i)\bBUG\b`), types.SATDDefect, 3},
	{regexp.MustCompile(`(?i)\bHACK\b`), types.SATDDefect, 2},
	{regexp.MustCompile(`(?i)\bTODO\b`), types.SATDDesign, 1},
	{regexp.MustCompile(`(?i)\bXXX\b`), types.SATDDesign, 1},
	{regexp.MustCompile(`(?i)\bnot\s+implement`), types.SATDRequirement, 2},
	{regexp.MustCompile(`(?i)\bincomplete\b`), types.SATDRequirement, 2},
	{regexp.MustCompile(`(?i)\bmissing\s+doc`), types.SATDDocumentation, 1},
	{regexp.MustCompile(`(?i)\bundocumented\b`), types.SATDDocumentation, 1},
	{regexp.MustCompile(`(?i)\bskip(ped)?\s+test`), types.SATDTest, 2},
	{regexp.MustCompile(`(?i)\bflaky\b`), types.SATDTest, 2},
	{regexp.MustCompile(`(?i)\bslow\b`), types.SATDPerformance, 1},
	{regexp.MustCompile(`(?i)\b(perf|performance)\s+issue`), types.SATDPerformance, 2},
	{regexp.MustCompile(`(?i)\bO\(n\^?2\)`), types.SATDPerformance, 2},
}

// stemmedKeywords escalates severity when the comment's stemmed tokens
// contain a debt-adjacent root even when no literal marker matches —
// "fixing"/"fixed"/"fix" all stem to "fix" via porter2.Stem, mirroring
// internal/semantic/stemmer.go's normalization.
var stemmedKeywords = map[string]int{
	"fix":   2,
	"hack":  2,
	"todo":  1,
	"break": 1,
	"slow":  1,
}

// ScanComments classifies every KindComment node reachable from tree's root
// as a SATDItem, scoring severity from keyword weight plus the enclosing
// function's complexity (a TODO inside a high-complexity function
// escalates, per spec.md §4.9).
func ScanComments(tree *ast.Tree, file types.FileID, complexityOf func(ast.NodeRef) int) []types.SATDItem {
	var items []types.SATDItem
	for _, n := range tree.FindByKind(tree.Root(), ast.KindComment) {
		text := tree.NodeName(n)
		if text == "" {
			continue
		}
		category, weight, matched := classify(text)
		if !matched {
			continue
		}
		span := tree.Span(n)
		enclosing := tree.EnclosingDeclaration(n)
		var enclosingName string
		if enclosing != ast.NilRef {
			enclosingName = tree.NodeName(enclosing)
			if complexityOf != nil && complexityOf(enclosing) >= 20 {
				weight += 2
			}
		}
		items = append(items, types.SATDItem{
			FileID:      file,
			Line:        int(span.StartLine),
			Category:    category,
			Severity:    severityFromWeight(weight),
			Text:        text,
			ContextHash: types.ContentHash(blake3.Sum256([]byte(enclosingName + "\x00" + text))),
		})
	}
	return items
}

func classify(text string) (types.SATDCategory, int, bool) {
	bestWeight := -1
	bestCategory := types.SATDDesign
	matched := false
	for _, p := range satdPatterns {
		if p.re.MatchString(text) {
			matched = true
			if p.weight > bestWeight {
				bestWeight = p.weight
				bestCategory = p.category
			}
		}
	}

	for _, tok := range strings.Fields(normalizeComment(text)) {
		stem := porter2.Stem(tok)
		w, ok := stemmedKeywords[stem]
		if !ok {
			continue
		}
		matched = true
		if w > bestWeight {
			bestWeight = w
			if stem != "todo" {
				bestCategory = types.SATDDefect
			}
		}
	}
	if bestWeight < 0 {
		bestWeight = 0
	}
	return bestCategory, bestWeight, matched
}

var nonWord = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func normalizeComment(text string) string {
	return strings.ToLower(nonWord.ReplaceAllString(text, " "))
}

func severityFromWeight(weight int) types.SATDSeverity {
	switch {
	case weight >= 5:
		return types.SATDCriticalSeverity
	case weight >= 4:
		return types.SATDHigh
	case weight >= 2:
		return types.SATDMedium
	default:
		return types.SATDLow
	}
}
