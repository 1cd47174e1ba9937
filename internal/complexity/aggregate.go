package complexity

import (
	"sort"

	"github.com/standardbeagle/codeintel/internal/types"
)

// AggregateFile folds a file's function records into sum-plus-max totals,
// per spec.md §4.7's "per file = sum plus max".
func AggregateFile(file types.FileID, fns []types.FunctionComplexity) types.FileComplexity {
	fc := types.FileComplexity{FileID: file, Functions: fns}
	for _, f := range fns {
		fc.CyclomaticSum += f.Cyclomatic
		fc.CognitiveSum += f.Cognitive
		if f.Cyclomatic > fc.CyclomaticMax {
			fc.CyclomaticMax = f.Cyclomatic
		}
		if f.Cognitive > fc.CognitiveMax {
			fc.CognitiveMax = f.Cognitive
		}
	}
	return fc
}

// AggregateProject folds a run's FileComplexity records into a cyclomatic
// histogram (bucketed by complexity/10) and a top-N ranking of the most
// complex functions project-wide, per spec.md §4.7's "per project =
// histograms and top-N rankings".
func AggregateProject(files []types.FileComplexity, topN int) types.ProjectComplexity {
	pc := types.ProjectComplexity{Files: files, Histogram: make(map[int]int)}

	var all []types.FunctionComplexity
	for _, f := range files {
		for _, fn := range f.Functions {
			pc.Histogram[fn.Cyclomatic/10]++
			all = append(all, fn)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Cyclomatic != all[j].Cyclomatic {
			return all[i].Cyclomatic > all[j].Cyclomatic
		}
		if all[i].FileID != all[j].FileID {
			return all[i].FileID < all[j].FileID
		}
		return all[i].Name < all[j].Name
	})
	if topN > 0 && topN < len(all) {
		all = all[:topN]
	}
	pc.TopN = all
	return pc
}

// Severity classifies a function's cyclomatic/cognitive pair against t,
// taking the more severe of the two dimensions.
func Severity(fn types.FunctionComplexity, t types.ComplexityThresholds) types.TDGSeverity {
	sev := types.TDGNormal
	if fn.Cyclomatic >= t.CycloError || fn.Cognitive >= t.CogError {
		sev = types.TDGCritical
	} else if fn.Cyclomatic >= t.CycloWarn || fn.Cognitive >= t.CogWarn {
		sev = types.TDGWarning
	}
	return sev
}
