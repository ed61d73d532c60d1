package schema

import (
	"fmt"
	"math"
)

// BucketCount is the number of severity buckets of a color scale.
const BucketCount = 5

// Severity bucket labels, ascending.
var ScaleLabels = [BucketCount]string{"Très faible", "Faible", "Moyen", "Élevé", "Très élevé"}

// Severity bucket colors, ascending.
var ScaleColors = [BucketCount]string{"#2ca02c", "#98df8a", "#ffff99", "#ff9896", "#d62728"}

// ColorScale maps a crime count to one of five ordered severity buckets.
// Thresholds are non-decreasing; Thresholds[i] is the lower bound of bucket i.
type ColorScale struct {
	Thresholds [BucketCount]float64 `json:"thresholds"`
	Labels     [BucketCount]string  `json:"labels"`
	Colors     [BucketCount]string  `json:"colors"`
}

// LegendEntry is one row of a rendered color scale legend.
type LegendEntry struct {
	Bucket int    `json:"bucket"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Range  string `json:"range"`
}

// Bucket returns the bucket index of a count.
// A count belongs to bucket i when it strictly exceeds i interior thresholds, so 0 is always in bucket 0.
func (s ColorScale) Bucket(count float64) int {
	b := 0
	for i := 1; i < BucketCount; i++ {
		if count > s.Thresholds[i] {
			b = i
		}
	}
	return b
}

// Label returns the severity label of a count.
func (s ColorScale) Label(count float64) string {
	return s.Labels[s.Bucket(count)]
}

// Legend returns one entry per bucket with its value range.
func (s ColorScale) Legend() []LegendEntry {
	entries := make([]LegendEntry, BucketCount)
	for i := range BucketCount {
		var rng string
		switch i {
		case 0:
			rng = fmt.Sprintf("≤ %s", formatThreshold(s.Thresholds[1]))
		case BucketCount - 1:
			rng = fmt.Sprintf("> %s", formatThreshold(s.Thresholds[i]))
		default:
			rng = fmt.Sprintf("%s - %s", formatThreshold(s.Thresholds[i]), formatThreshold(s.Thresholds[i+1]))
		}
		entries[i] = LegendEntry{
			Bucket: i,
			Label:  s.Labels[i],
			Color:  s.Colors[i],
			Range:  rng,
		}
	}
	return entries
}

// formatThreshold prints integral thresholds without decimals.
func formatThreshold(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
