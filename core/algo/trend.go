package algo

import (
	"math"
	"sort"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
)

const (
	stablePercent    = 5.0  // |percent change| below which a series is stable
	stableSlope      = 0.5  // |slope| below which a series is stable
	inflectionMove   = 0.1  // relative move that makes a sign change significant
	significantMove  = 10.0 // percent change reported as a significant increase or decrease
	significantFloor = 10   // last value below which a category is too small to report
)

// LinearRegression fits y = slope*x + intercept by ordinary least squares on (index, value).
// Fewer than two values give a flat line through the only value, if any.
func LinearRegression(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return 0, values[0]
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// ClassifyTrend fits a least-squares line to time ordered values and classifies it.
// The series is stable when its percent change is under 5% in absolute value or its
// slope under 0.5; otherwise the sign of the slope decides.
func ClassifyTrend(values []float64) schema.TrendResult {
	slope, intercept := LinearRegression(values)
	res := schema.TrendResult{
		Slope:     slope,
		Intercept: intercept,
		Trend:     schema.StableTrend,
	}
	if len(values) == 0 {
		return res
	}
	res.FirstValue = values[0]
	res.LastValue = values[len(values)-1]
	res.PercentChange = PercentChange(res.FirstValue, res.LastValue)

	switch {
	case math.Abs(res.PercentChange) < stablePercent || math.Abs(slope) < stableSlope:
		res.Trend = schema.StableTrend
	case slope > 0:
		res.Trend = schema.IncreasingTrend
	default:
		res.Trend = schema.DecreasingTrend
	}
	return res
}

// DetectInflections returns the local peaks and valleys of a series. A point qualifies
// when the direction changes around it and one of the two moves exceeds 10% of the
// value it starts from.
func DetectInflections(s schema.CategorySeries) []schema.Inflection {
	var out []schema.Inflection
	for i := 1; i < len(s.Values)-1; i++ {
		prev := float64(s.Values[i-1].Value)
		curr := float64(s.Values[i].Value)
		next := float64(s.Values[i+1].Value)
		prevDiff, nextDiff := curr-prev, next-curr
		if prevDiff*nextDiff >= 0 {
			continue
		}
		if math.Abs(prevDiff) <= prev*inflectionMove && math.Abs(nextDiff) <= curr*inflectionMove {
			continue
		}
		change := schema.ValleyChange
		if prevDiff > 0 {
			change = schema.PeakChange
		}
		out = append(out, schema.Inflection{
			Time:       s.Values[i].Time,
			Value:      s.Values[i].Value,
			ChangeType: change,
		})
	}
	return out
}

// ClassifyCategoryTrends classifies the trend of every series with at least two points
// and detects the inflections of every series with at least three.
func ClassifyCategoryTrends(ts schema.TimeSeries) schema.TrendReport {
	report := schema.TrendReport{
		Aggregation:          ts.Aggregation,
		TimeKeys:             ts.TimeKeys,
		Trends:               make([]schema.CategoryTrend, 0, len(ts.Series)),
		SignificantIncreases: []string{},
		SignificantDecreases: []string{},
	}

	var startTotal, endTotal float64
	bestTotal := -1
	type move struct {
		category string
		pct      float64
	}
	var increases, decreases []move

	for _, s := range ts.Series {
		values := agg.Values(s)
		total := 0
		for _, v := range s.Values {
			total += v.Value
		}
		if total > bestTotal {
			report.DominantCategory, bestTotal = s.Category, total
		}
		if len(values) > 0 {
			startTotal += values[0]
			endTotal += values[len(values)-1]
		}
		if len(values) < 2 {
			continue
		}

		ct := schema.CategoryTrend{
			Category: s.Category,
			Total:    total,
			Trend:    ClassifyTrend(values),
		}
		if len(values) >= 3 {
			ct.Inflections = DetectInflections(s)
		}
		report.Trends = append(report.Trends, ct)

		if ct.Trend.LastValue < significantFloor {
			continue
		}
		switch {
		case ct.Trend.Trend == schema.IncreasingTrend && ct.Trend.PercentChange > significantMove:
			increases = append(increases, move{s.Category, ct.Trend.PercentChange})
		case ct.Trend.Trend == schema.DecreasingTrend && ct.Trend.PercentChange < -significantMove:
			decreases = append(decreases, move{s.Category, ct.Trend.PercentChange})
		}
	}

	sort.SliceStable(increases, func(i, j int) bool { return increases[i].pct > increases[j].pct })
	sort.SliceStable(decreases, func(i, j int) bool { return decreases[i].pct < decreases[j].pct })
	for _, m := range increases {
		report.SignificantIncreases = append(report.SignificantIncreases, m.category)
	}
	for _, m := range decreases {
		report.SignificantDecreases = append(report.SignificantDecreases, m.category)
	}
	report.TotalPercentChange = PercentChange(startTotal, endTotal)
	return report
}
