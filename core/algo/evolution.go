package algo

import (
	"errors"
	"math"
	"sort"

	"github.com/mtlpdq/pdqstats/schema"
)

// ErrSameYear is returned when an evolution is requested between a year and itself.
var ErrSameYear = errors.New("base year and comparison year must differ")

// defaultEvolutionDomain bounds the evolution color domain when no district moved.
const defaultEvolutionDomain = 20.0

// PercentChange returns the change from base to comparison in percent.
// A zero base yields 100 when comparison is positive and 0 otherwise.
func PercentChange(base, comparison float64) float64 {
	if base == 0 {
		if comparison > 0 {
			return 100
		}
		return 0
	}
	return (comparison - base) / base * 100
}

// Evolution returns the percent change of a district's count between two years,
// scoped to one category unless category is "all" or empty. Missing years count as 0,
// so a combination absent from the dataset and one present with a zero count both give 0.
func Evolution(stats *schema.DistrictStats, baseYear, comparisonYear int, category string) float64 {
	return PercentChange(
		float64(stats.YearCount(baseYear, category)),
		float64(stats.YearCount(comparisonYear, category)),
	)
}

// hasYears reports whether both years are known for the requested scope.
func hasYears(stats *schema.DistrictStats, baseYear, comparisonYear int, category string) bool {
	if stats == nil {
		return false
	}
	var perYear map[int]int
	if category == "" || category == schema.AllFilter {
		perYear = stats.ByYear
	} else {
		perYear = stats.ByCategoryAndYear[category]
	}
	_, okBase := perYear[baseYear]
	_, okComparison := perYear[comparisonYear]
	return okBase && okComparison
}

// ComputeEvolution returns the evolution of every district, sorted by district, with the
// symmetric color domain spanning the largest absolute evolution. Districts without a single
// incident in either year are left out. When category is "all" each result also carries the
// per-category breakdown.
func ComputeEvolution(byDistrict map[int]*schema.DistrictStats, baseYear, comparisonYear int, category string) (schema.EvolutionReport, error) {
	if baseYear == comparisonYear {
		return schema.EvolutionReport{}, ErrSameYear
	}
	if category == "" {
		category = schema.AllFilter
	}

	ids := (schema.AggregationResult{ByDistrict: byDistrict}).Districts()
	results := make([]schema.EvolutionResult, 0, len(ids))
	for _, id := range ids {
		stats := byDistrict[id]
		res := schema.EvolutionResult{
			DistrictID:      id,
			BaseCount:       stats.YearCount(baseYear, category),
			ComparisonCount: stats.YearCount(comparisonYear, category),
			HasData:         hasYears(stats, baseYear, comparisonYear, category),
		}
		if res.BaseCount == 0 && res.ComparisonCount == 0 {
			continue
		}
		res.AbsoluteChange = res.ComparisonCount - res.BaseCount
		res.IsImproving = res.AbsoluteChange < 0
		if res.HasData {
			res.EvolutionPercent = Evolution(stats, baseYear, comparisonYear, category)
		}
		if category == schema.AllFilter && stats != nil {
			res.ByCategory = categoryEvolutions(stats, baseYear, comparisonYear)
		}
		results = append(results, res)
	}

	lo, hi := EvolutionDomain(results)
	return schema.EvolutionReport{
		BaseYear:       baseYear,
		ComparisonYear: comparisonYear,
		Category:       category,
		DomainMin:      lo,
		DomainMax:      hi,
		SortedBy:       schema.AlphabeticalSort,
		Results:        results,
	}, nil
}

// SortEvolution reorders the report rows. Changes sort largest first; ties keep PDQ order.
// An unknown ordering falls back to PDQ order.
func SortEvolution(report *schema.EvolutionReport, by schema.EvolutionSort) {
	results := report.Results
	sort.SliceStable(results, func(i, j int) bool { return results[i].DistrictID < results[j].DistrictID })
	switch by {
	case schema.AbsoluteChangeSort:
		sort.SliceStable(results, func(i, j int) bool { return results[i].AbsoluteChange > results[j].AbsoluteChange })
	case schema.PercentChangeSort:
		sort.SliceStable(results, func(i, j int) bool { return results[i].EvolutionPercent > results[j].EvolutionPercent })
	default:
		by = schema.AlphabeticalSort
	}
	report.SortedBy = by
}

// categoryEvolutions returns the evolution of each category of a district,
// largest comparison count first.
func categoryEvolutions(stats *schema.DistrictStats, baseYear, comparisonYear int) []schema.CategoryEvolution {
	out := make([]schema.CategoryEvolution, 0, len(stats.ByCategoryAndYear))
	for c, perYear := range stats.ByCategoryAndYear {
		base, comparison := perYear[baseYear], perYear[comparisonYear]
		if base == 0 && comparison == 0 {
			continue
		}
		out = append(out, schema.CategoryEvolution{
			Category:         c,
			BaseCount:        base,
			ComparisonCount:  comparison,
			AbsoluteChange:   comparison - base,
			EvolutionPercent: PercentChange(float64(base), float64(comparison)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ComparisonCount != out[j].ComparisonCount {
			return out[i].ComparisonCount > out[j].ComparisonCount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// EvolutionDomain returns a color domain symmetric around 0.
// A zero minimum falls back to -20 and a zero maximum to +20 before symmetrizing.
func EvolutionDomain(results []schema.EvolutionResult) (float64, float64) {
	if len(results) == 0 {
		return -defaultEvolutionDomain, defaultEvolutionDomain
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range results {
		lo = min(lo, r.EvolutionPercent)
		hi = max(hi, r.EvolutionPercent)
	}
	if lo == 0 {
		lo = -defaultEvolutionDomain
	}
	if hi == 0 {
		hi = defaultEvolutionDomain
	}
	absMax := max(math.Abs(lo), math.Abs(hi))
	return -absMax, absMax
}
