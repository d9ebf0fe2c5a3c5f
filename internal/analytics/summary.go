package analytics

import (
	"dtxcli/pkg/contracts/domain"
)

// Summarize computes the global overview metrics in one scan: mean and max
// of the index, the number of distinct entities, and the observed year
// range. An empty table yields the zero summary.
func Summarize(rows []domain.Observation) domain.DatasetSummary {
	if len(rows) == 0 {
		return domain.DatasetSummary{}
	}

	var sum float64
	max := rows[0].Index
	minYear, maxYear := rows[0].Year, rows[0].Year
	codes := make(map[string]struct{})

	for _, obs := range rows {
		sum += obs.Index
		if obs.Index > max {
			max = obs.Index
		}
		if obs.Year < minYear {
			minYear = obs.Year
		}
		if obs.Year > maxYear {
			maxYear = obs.Year
		}
		codes[obs.Code] = struct{}{}
	}

	return domain.DatasetSummary{
		MeanIndex:   sum / float64(len(rows)),
		MaxIndex:    max,
		EntityCount: len(codes),
		MinYear:     minYear,
		MaxYear:     maxYear,
		RowCount:    len(rows),
	}
}
