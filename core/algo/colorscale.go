// Package algo has the derived-metric calculators built on top of aggregated incidents.
package algo

import (
	"slices"

	"github.com/mtlpdq/pdqstats/schema"
)

// BuildColorScale derives five severity buckets from the district totals.
// With five or more districts the interior thresholds are the quintile boundary values
// and the first threshold is forced to 0. With fewer, the range from min(0, min) to max
// is split linearly. An empty or all-zero input yields all-zero thresholds.
func BuildColorScale(byDistrict map[int]*schema.DistrictStats) schema.ColorScale {
	counts := make([]float64, 0, len(byDistrict))
	for _, s := range byDistrict {
		if s == nil {
			counts = append(counts, 0)
			continue
		}
		counts = append(counts, float64(s.Total))
	}
	slices.Sort(counts)

	var thresholds [schema.BucketCount]float64
	n := len(counts)
	switch {
	case n == 0:
	case n >= schema.BucketCount:
		q := n / schema.BucketCount
		for k := 1; k < schema.BucketCount; k++ {
			thresholds[k] = counts[q*k]
		}
	default:
		lo := min(0, counts[0])
		step := (counts[n-1] - lo) / schema.BucketCount
		for k := range schema.BucketCount {
			thresholds[k] = lo + step*float64(k)
		}
	}

	return schema.ColorScale{
		Thresholds: thresholds,
		Labels:     schema.ScaleLabels,
		Colors:     schema.ScaleColors,
	}
}
