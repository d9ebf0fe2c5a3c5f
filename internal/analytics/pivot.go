package analytics

import (
	"sort"

	"dtxcli/pkg/contracts/domain"
)

// heatmapTopCodes is the pivot restriction used by the dashboard heatmap.
const heatmapTopCodes = 30

// HeatmapPivot builds the entity-by-year matrix of mean index values,
// restricted to the top n codes by global mean (rows keep that ranking
// order). A nil cell means the (code, year) pair has no observation;
// missing cells are left undefined, never zero-filled.
func HeatmapPivot(rows []domain.Observation, nameOf func(string) string, n int) domain.Heatmap {
	if n <= 0 {
		n = heatmapTopCodes
	}
	top := TopEntities(rows, nameOf, n)

	yearSet := make(map[int]struct{})
	sums := make(map[string]map[int]float64)
	counts := make(map[string]map[int]int)
	for _, obs := range rows {
		yearSet[obs.Year] = struct{}{}
		if sums[obs.Code] == nil {
			sums[obs.Code] = make(map[int]float64)
			counts[obs.Code] = make(map[int]int)
		}
		sums[obs.Code][obs.Year] += obs.Index
		counts[obs.Code][obs.Year]++
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	codes := make([]string, len(top))
	cells := make([][]*float64, len(top))
	for i, entity := range top {
		codes[i] = entity.Code
		cells[i] = make([]*float64, len(years))
		for j, year := range years {
			if count := counts[entity.Code][year]; count > 0 {
				mean := sums[entity.Code][year] / float64(count)
				cells[i][j] = &mean
			}
		}
	}

	return domain.Heatmap{Codes: codes, Years: years, Cells: cells}
}
