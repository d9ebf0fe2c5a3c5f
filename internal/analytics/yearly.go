package analytics

import (
	"sort"

	"dtxcli/pkg/contracts/domain"
)

// YearlyMeans groups the table by year and returns the mean index per year
// in ascending year order.
func YearlyMeans(rows []domain.Observation) []domain.YearlyPoint {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, obs := range rows {
		sums[obs.Year] += obs.Index
		counts[obs.Year]++
	}

	points := make([]domain.YearlyPoint, 0, len(sums))
	for year, sum := range sums {
		points = append(points, domain.YearlyPoint{
			Year:      year,
			MeanIndex: sum / float64(counts[year]),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}

// YearlyStats extends YearlyMeans with the distinct entity count per year,
// feeding the dual-axis chart.
func YearlyStats(rows []domain.Observation) []domain.YearlyStat {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	codes := make(map[int]map[string]struct{})
	for _, obs := range rows {
		sums[obs.Year] += obs.Index
		counts[obs.Year]++
		if codes[obs.Year] == nil {
			codes[obs.Year] = make(map[string]struct{})
		}
		codes[obs.Year][obs.Code] = struct{}{}
	}

	stats := make([]domain.YearlyStat, 0, len(sums))
	for year, sum := range sums {
		stats = append(stats, domain.YearlyStat{
			Year:        year,
			MeanIndex:   sum / float64(counts[year]),
			EntityCount: len(codes[year]),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Year < stats[j].Year })
	return stats
}

// ChangeRates computes the year-over-year percentage change of the per-year
// mean: ((mean[t]-mean[t-1])/mean[t-1])*100. The first year has no prior
// value and its ChangePct is nil; "no value" never degrades to zero.
func ChangeRates(rows []domain.Observation) []domain.ChangePoint {
	yearly := YearlyMeans(rows)
	changes := make([]domain.ChangePoint, len(yearly))
	for i, point := range yearly {
		changes[i] = domain.ChangePoint{Year: point.Year, MeanIndex: point.MeanIndex}
		if i == 0 {
			continue
		}
		prev := yearly[i-1].MeanIndex
		if prev == 0 {
			continue
		}
		pct := (point.MeanIndex - prev) / prev * 100
		changes[i].ChangePct = &pct
	}
	return changes
}
