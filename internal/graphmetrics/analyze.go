package graphmetrics

import "github.com/standardbeagle/codeintel/internal/types"

// Analyze runs every C10 metric over g's final CSR in one pass, per
// spec.md §4.10's "all operate on the same CSR built once" requirement.
func Analyze(g *types.DependencyGraph) types.GraphMetrics {
	csr := Build(g)
	clustering, average := Clustering(csr)
	diameter, radius := DiameterRadius(csr)

	return types.GraphMetrics{
		Betweenness:           Betweenness(csr),
		ClusteringCoefficient: clustering,
		AverageClustering:     average,
		Coreness:              KCore(csr),
		Components:            SCC(csr),
		Diameter:              diameter,
		Radius:                radius,
	}
}
