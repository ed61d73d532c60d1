package agg

import (
	"fmt"
	"sort"

	"github.com/mtlpdq/pdqstats/schema"
)

// TimeKey returns the bucket key of a record date for the given granularity.
// Keys sort chronologically as strings.
func TimeKey(r schema.IncidentRecord, aggregation schema.AggregationType) string {
	d := r.Date
	switch aggregation {
	case schema.YearAggregation:
		return fmt.Sprintf("%d", d.Year())
	case schema.QuarterAggregation:
		return fmt.Sprintf("%d-Q%d", d.Year(), (int(d.Month())-1)/3+1)
	default:
		return fmt.Sprintf("%d-%02d", d.Year(), int(d.Month()))
	}
}

// BuildTimeSeries counts records per category and time bucket.
// Only records with a date and a category are counted. Every series covers
// every observed time key, zero-filled, in chronological order.
func BuildTimeSeries(records []schema.IncidentRecord, aggregation schema.AggregationType) schema.TimeSeries {
	counts := make(map[string]map[string]int)
	keySet := make(map[string]struct{})
	var valid []schema.IncidentRecord
	for _, r := range records {
		if !r.HasDate() || !r.HasCategory() {
			continue
		}
		valid = append(valid, r)
		key := TimeKey(r, aggregation)
		keySet[key] = struct{}{}
		perKey, ok := counts[r.Category]
		if !ok {
			perKey = make(map[string]int)
			counts[r.Category] = perKey
		}
		perKey[key]++
	}

	timeKeys := make([]string, 0, len(keySet))
	for k := range keySet {
		timeKeys = append(timeKeys, k)
	}
	sort.Strings(timeKeys)

	categories := DistinctCategories(valid)
	series := make([]schema.CategorySeries, len(categories))
	for i, c := range categories {
		values := make([]schema.TimePoint, len(timeKeys))
		for j, k := range timeKeys {
			values[j] = schema.TimePoint{Time: k, Value: counts[c][k]}
		}
		series[i] = schema.CategorySeries{Category: c, Values: values}
	}

	return schema.TimeSeries{
		Aggregation: aggregation,
		TimeKeys:    timeKeys,
		Series:      series,
	}
}

// Values returns the raw counts of a series in time order.
func Values(s schema.CategorySeries) []float64 {
	out := make([]float64, len(s.Values))
	for i, p := range s.Values {
		out[i] = float64(p.Value)
	}
	return out
}

// ShiftSeries counts dated records per year and shift.
// Records without a shift are skipped. Every shift gets one zero-filled value per
// year, years ascending.
func ShiftSeries(records []schema.IncidentRecord) schema.ShiftSeries {
	counts := make(map[int]map[schema.Period]int)
	for _, r := range records {
		if !r.HasDate() || r.Period == "" {
			continue
		}
		year := r.Year()
		perShift, ok := counts[year]
		if !ok {
			perShift = make(map[schema.Period]int, len(schema.AllPeriods))
			counts[year] = perShift
		}
		perShift[r.Period]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	series := make([]schema.ShiftCounts, len(schema.AllPeriods))
	for i, p := range schema.AllPeriods {
		values := make([]int, len(years))
		for j, y := range years {
			values[j] = counts[y][p]
		}
		series[i] = schema.ShiftCounts{Shift: p, Values: values}
	}
	return schema.ShiftSeries{Years: years, Series: series}
}
