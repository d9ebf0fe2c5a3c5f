package analytics

import (
	"sort"

	"dtxcli/pkg/contracts/domain"
)

// TopEntities ranks entities by their mean index across all years,
// descending, and returns the first n. Equal means are broken by ascending
// code so the ranking is deterministic. The result has length
// min(n, distinct codes).
func TopEntities(rows []domain.Observation, nameOf func(string) string, n int) []domain.EntityMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, obs := range rows {
		sums[obs.Code] += obs.Index
		counts[obs.Code]++
	}

	means := make([]domain.EntityMean, 0, len(sums))
	for code, sum := range sums {
		means = append(means, domain.EntityMean{
			Code:      code,
			Name:      nameOf(code),
			MeanIndex: sum / float64(counts[code]),
			Years:     counts[code],
		})
	}

	sort.Slice(means, func(i, j int) bool {
		if means[i].MeanIndex != means[j].MeanIndex {
			return means[i].MeanIndex > means[j].MeanIndex
		}
		return means[i].Code < means[j].Code
	})

	if n > 0 && len(means) > n {
		means = means[:n]
	}
	return means
}
