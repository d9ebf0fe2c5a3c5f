package analytics

import (
	"dtxcli/pkg/contracts/domain"
)

// bucketWidth partitions the nominal [0,100] index range into five
// intervals: [0,20), [20,40), [40,60), [60,80), [80,100]. The last bucket
// is closed on both ends so an index of exactly 100 still counts.
const bucketWidth = 20.0

var bucketLabels = [5]string{"0-20", "20-40", "40-60", "60-80", "80-100"}

// Distribution counts observations per index bucket. Every value in
// [0,100] falls into exactly one bucket; values outside the range belong
// to no bucket and are reported in Excluded, so bucket counts plus
// Excluded always equal Total.
func Distribution(rows []domain.Observation) domain.Distribution {
	dist := domain.Distribution{
		Buckets: make([]domain.Bucket, len(bucketLabels)),
		Total:   len(rows),
	}
	for i, label := range bucketLabels {
		dist.Buckets[i] = domain.Bucket{
			Label: label,
			Low:   float64(i) * bucketWidth,
			High:  float64(i+1) * bucketWidth,
		}
	}

	for _, obs := range rows {
		if obs.Index < 0 || obs.Index > 100 {
			dist.Excluded++
			continue
		}
		idx := int(obs.Index / bucketWidth)
		if idx >= len(dist.Buckets) {
			idx = len(dist.Buckets) - 1
		}
		dist.Buckets[idx].Count++
	}
	return dist
}
