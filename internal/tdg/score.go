// Package tdg computes the technical-debt gradient weighted sum (C9), plus
// the self-admitted-technical-debt classifier and duplicate-code detector
// spec.md §4.9 groups under the same analyzer stage.
package tdg

import "github.com/standardbeagle/codeintel/internal/types"

// Weights configures the TDG weighted sum. Defaults per spec.md §4.9:
// {complexity:0.3, churn:0.35, coupling:0.15, domain_risk:0.1, duplication:0.1}.
type Weights struct {
	Complexity  float64
	Churn       float64
	Coupling    float64
	DomainRisk  float64
	Duplication float64
}

func DefaultWeights() Weights {
	return Weights{Complexity: 0.3, Churn: 0.35, Coupling: 0.15, DomainRisk: 0.1, Duplication: 0.1}
}

// Score computes one target's TDG from its component breakdown, using w's
// weighted sum. Components are each expected to already be normalized to a
// comparable scale by their producing analyzer (C7 for Complexity, C10 for
// Coupling, internal/git for Churn, this package's MinHash/LSH pipeline for
// Duplication); DomainRisk and Age are supplied by the caller (no analyzer
// in this module computes them, since they depend on project-specific
// classification the spec leaves external).
func Score(target types.NodeKey, c types.TDGComponents, w Weights) types.TDGScore {
	score := c.Complexity*w.Complexity +
		c.Churn*w.Churn +
		c.Coupling*w.Coupling +
		c.DomainRisk*w.DomainRisk +
		c.Duplication*w.Duplication

	return types.TDGScore{
		Target:     target,
		Components: c,
		Score:      score,
		Severity:   severityOf(score),
	}
}

// severityOf buckets a TDG scalar per spec.md §4.9:
// {Normal<1.5, Warning<2.0, Critical>=2.0}.
func severityOf(score float64) types.TDGSeverity {
	switch {
	case score >= 2.0:
		return types.TDGCritical
	case score >= 1.5:
		return types.TDGWarning
	default:
		return types.TDGNormal
	}
}
