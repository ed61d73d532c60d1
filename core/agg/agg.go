// Package agg has the aggregation engine that rolls incident records up per district.
package agg

import (
	"github.com/mtlpdq/pdqstats/schema"
)

// Aggregate rolls records up per district, category and year in a single pass.
// Records without a district, a category or a date are skipped. Categories and
// years are computed first over the whole record set so that every district's
// stats are dense across them.
func Aggregate(records []schema.IncidentRecord) schema.AggregationResult {
	categories := DistinctCategories(records)
	years := DistinctYears(records)

	byDistrict := make(map[int]*schema.DistrictStats)
	for _, r := range records {
		if !isAggregatable(r) {
			continue
		}
		pdq := *r.District
		stats, ok := byDistrict[pdq]
		if !ok {
			stats = schema.NewDistrictStats(categories, years)
			byDistrict[pdq] = stats
		}
		year := r.Year()
		stats.Total++
		stats.ByCategory[r.Category]++
		stats.ByYear[year]++
		stats.ByCategoryAndYear[r.Category][year]++
	}

	return schema.AggregationResult{
		Categories: categories,
		Years:      years,
		ByDistrict: byDistrict,
	}
}

// isAggregatable reports whether a record can contribute to a district rollup.
func isAggregatable(r schema.IncidentRecord) bool {
	return r.District != nil && r.HasCategory() && r.HasDate()
}

// CountSkipped returns how many records Aggregate would ignore.
func CountSkipped(records []schema.IncidentRecord) int {
	skipped := 0
	for _, r := range records {
		if !isAggregatable(r) {
			skipped++
		}
	}
	return skipped
}
