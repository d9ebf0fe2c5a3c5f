package analytics

import (
	"dtxcli/pkg/contracts/domain"
)

// RankWithinYear reports where a selected index value stands among all
// observations of one year. Rank is the count of rows whose value is >= the
// selected value: ties all improve the rank, so this is not a strict
// ordinal. 1 <= Rank <= Total always holds for a value taken from the rows.
func RankWithinYear(yearRows []domain.Observation, value float64) domain.RankResult {
	rank := 0
	for _, obs := range yearRows {
		if obs.Index >= value {
			rank++
		}
	}
	return domain.RankResult{Rank: rank, Total: len(yearRows)}
}
