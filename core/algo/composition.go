package algo

import (
	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
)

// CategoryComposition breaks dated, categorised records down by year and category.
// Absolute mode gives counts, percentage mode the share of the year's total and growth
// mode the change against the previous year, 0 for the first year. A previous count
// of 0 gives 100 when the category appears and 0 otherwise.
func CategoryComposition(records []schema.IncidentRecord, mode schema.DisplayMode) schema.CategoryComposition {
	if _, ok := schema.ValidDisplayModes[mode]; !ok {
		mode = schema.AbsoluteDisplay
	}
	valid := make([]schema.IncidentRecord, 0, len(records))
	for _, r := range records {
		if r.HasDate() && r.HasCategory() {
			valid = append(valid, r)
		}
	}

	years := agg.DistinctYears(valid)
	categories := agg.DistinctCategories(valid)
	counts := make(map[int]map[string]int, len(years))
	totals := make(map[int]int, len(years))
	for _, y := range years {
		counts[y] = make(map[string]int, len(categories))
	}
	for _, r := range valid {
		counts[r.Year()][r.Category]++
		totals[r.Year()]++
	}

	series := make([]schema.CompositionSeries, len(categories))
	for i, c := range categories {
		values := make([]schema.YearValue, len(years))
		for j, y := range years {
			count := counts[y][c]
			var v float64
			switch mode {
			case schema.PercentageDisplay:
				v = share(count, totals[y])
			case schema.GrowthDisplay:
				if j > 0 {
					v = PercentChange(float64(counts[years[j-1]][c]), float64(count))
				}
			default:
				v = float64(count)
			}
			values[j] = schema.YearValue{Year: y, Value: v}
		}
		series[i] = schema.CompositionSeries{Category: c, Values: values}
	}

	return schema.CategoryComposition{
		Mode:       mode,
		Years:      years,
		Categories: categories,
		Series:     series,
	}
}
