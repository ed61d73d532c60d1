package algo

import (
	"math"
	"sort"

	"github.com/mtlpdq/pdqstats/schema"
)

const (
	significantVariation = 15.0 // month over month percent change flagged as significant
	seasonalityMinTotal  = 10   // records a category needs before its seasonality is judged
	seasonalityShare     = 35.0 // season share in percent above which a category is seasonal
)

// seasonMonths lists the zero-based months of each season.
var seasonMonths = map[schema.Season][3]int{
	schema.Winter: {11, 0, 1},
	schema.Spring: {2, 3, 4},
	schema.Summer: {5, 6, 7},
	schema.Autumn: {8, 9, 10},
}

// SeasonOf returns the season of a zero-based month.
func SeasonOf(month int) schema.Season {
	switch month {
	case 11, 0, 1:
		return schema.Winter
	case 2, 3, 4:
		return schema.Spring
	case 5, 6, 7:
		return schema.Summer
	default:
		return schema.Autumn
	}
}

// SeasonMonths returns the zero-based months of a season, in seasonal order.
func SeasonMonths(s schema.Season) [3]int {
	return seasonMonths[s]
}

// AggregateSeasonal distributes dated records by month, quarter and season and derives
// per-season trends, significant month over month variations and per-category seasonality.
func AggregateSeasonal(records []schema.IncidentRecord) schema.SeasonalAggregate {
	out := schema.SeasonalAggregate{
		Seasonal:   make(map[schema.Season]int, len(schema.AllSeasons)),
		Trends:     make(map[schema.Season]schema.SeasonTrend, len(schema.AllSeasons)),
		Variations: []schema.MonthVariation{},
		ByCategory: make(map[string]map[schema.Season]int),
	}
	for _, s := range schema.AllSeasons {
		out.Seasonal[s] = 0
	}

	categoryTotals := make(map[string]int)
	var categories []string
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		m := r.Month()
		season := SeasonOf(m)
		out.Monthly[m]++
		out.Quarterly[m/3]++
		out.Seasonal[season]++
		out.Total++

		if !r.HasCategory() {
			continue
		}
		perSeason, ok := out.ByCategory[r.Category]
		if !ok {
			perSeason = make(map[schema.Season]int, len(schema.AllSeasons))
			for _, s := range schema.AllSeasons {
				perSeason[s] = 0
			}
			out.ByCategory[r.Category] = perSeason
			categories = append(categories, r.Category)
		}
		perSeason[season]++
		categoryTotals[r.Category]++
	}

	for _, s := range schema.AllSeasons {
		out.Trends[s] = seasonTrend(out, s)
	}
	out.Variations = MonthlyVariations(out.Monthly)
	out.Seasonality = categorySeasonality(categories, out.ByCategory, categoryTotals)
	return out
}

// seasonTrend summarises one season of an aggregate.
func seasonTrend(sa schema.SeasonalAggregate, s schema.Season) schema.SeasonTrend {
	months := seasonMonths[s]
	peak := months[0]
	for _, m := range months[1:] {
		if sa.Monthly[m] > sa.Monthly[peak] {
			peak = m
		}
	}
	total := sa.Seasonal[s]
	return schema.SeasonTrend{
		Total:             total,
		PercentageOfTotal: share(total, sa.Total),
		PeakMonth:         schema.MonthNames[peak],
		PeakMonthCount:    sa.Monthly[peak],
		AverageMonthly:    float64(total) / 3,
	}
}

// MonthlyVariations returns the months whose change against the previous or the next
// month exceeds 15% in absolute value. Months wrap around, so January follows December.
// A change from an empty month counts as 0.
func MonthlyVariations(monthly [12]int) []schema.MonthVariation {
	out := []schema.MonthVariation{}
	for i := range 12 {
		prev, next := (i+11)%12, (i+1)%12
		var prevVar, nextVar float64
		if monthly[prev] > 0 {
			prevVar = float64(monthly[i]-monthly[prev]) / float64(monthly[prev]) * 100
		}
		if monthly[i] > 0 {
			nextVar = float64(monthly[next]-monthly[i]) / float64(monthly[i]) * 100
		}
		if math.Abs(prevVar) > significantVariation || math.Abs(nextVar) > significantVariation {
			out = append(out, schema.MonthVariation{
				Month:         schema.MonthNames[i],
				Count:         monthly[i],
				PrevVariation: prevVar,
				NextVariation: nextVar,
			})
		}
	}
	return out
}

// categorySeasonality returns the categories concentrated in one season, strongest first.
func categorySeasonality(categories []string, byCategory map[string]map[schema.Season]int, totals map[string]int) []schema.CategorySeasonality {
	out := []schema.CategorySeasonality{}
	for _, c := range categories {
		total := totals[c]
		if total < seasonalityMinTotal {
			continue
		}
		best := schema.AllSeasons[0]
		for _, s := range schema.AllSeasons[1:] {
			if byCategory[c][s] > byCategory[c][best] {
				best = s
			}
		}
		pct := share(byCategory[c][best], total)
		if pct > seasonalityShare {
			out = append(out, schema.CategorySeasonality{Category: c, Season: best, Percentage: pct})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out
}
