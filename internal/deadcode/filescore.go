package deadcode

import (
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// confidenceMultiplier weights a dead-code item's contribution to its
// file's score by how sure the analyzer is, per spec.md §4.8.
func confidenceMultiplier(c types.DeadCodeConfidence) float64 {
	switch c {
	case types.ConfidenceHigh:
		return 1.0
	case types.ConfidenceMedium:
		return 0.6
	default:
		return 0.3
	}
}

// FileScores combines dead-line percentage, absolute dead lines, dead
// function count, and a confidence multiplier into one score per file
// (spec.md §4.8). lineCounts supplies each file's total line count (the
// orchestrator counts them while parsing); a file missing from lineCounts
// still gets an absolute-lines-only score (percentage term is 0).
func FileScores(items []types.DeadCodeItem, files []symtab.FileTree, table *types.SymbolTable, lineCounts map[types.FileID]int) []types.FileDeadCodeScore {
	spans := symbolLines(files, table)
	byFile := make(map[types.FileID]*types.FileDeadCodeScore)
	order := make([]types.FileID, 0)

	for _, item := range items {
		fs, ok := byFile[item.FileID]
		if !ok {
			fs = &types.FileDeadCodeScore{FileID: item.FileID, TotalLines: lineCounts[item.FileID]}
			byFile[item.FileID] = fs
			order = append(order, item.FileID)
		}
		fs.DeadFunctions++
		lines := spans[item.Symbol].lines
		if lines < 1 {
			lines = 1
		}
		fs.DeadLines += lines
		fs.Score += lineDeadScore(fs.TotalLines, lines, item.Confidence)
	}

	out := make([]types.FileDeadCodeScore, 0, len(order))
	for _, f := range order {
		out = append(out, *byFile[f])
	}
	return out
}

func lineDeadScore(totalLines, deadLines int, confidence types.DeadCodeConfidence) float64 {
	pct := 0.0
	if totalLines > 0 {
		pct = float64(deadLines) / float64(totalLines)
	}
	return (pct + float64(deadLines)) * confidenceMultiplier(confidence)
}
