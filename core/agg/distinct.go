package agg

import (
	"sort"

	"github.com/mtlpdq/pdqstats/schema"
)

// Distinct returns the unique values produced by key, in first-seen order.
// Values for which key reports false are skipped.
func Distinct[T any, K comparable](items []T, key func(T) (K, bool)) []K {
	seen := make(map[K]struct{})
	out := make([]K, 0)
	for _, item := range items {
		k, ok := key(item)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// DistinctCategories returns the non-empty categories of records in first-seen order.
func DistinctCategories(records []schema.IncidentRecord) []string {
	return Distinct(records, func(r schema.IncidentRecord) (string, bool) {
		return r.Category, r.HasCategory()
	})
}

// DistinctYears returns the years of dated records in ascending order.
func DistinctYears(records []schema.IncidentRecord) []int {
	years := Distinct(records, func(r schema.IncidentRecord) (int, bool) {
		return r.Year(), r.HasDate()
	})
	sort.Ints(years)
	return years
}

// DistinctDistricts returns the known districts of records in ascending order.
func DistinctDistricts(records []schema.IncidentRecord) []int {
	districts := Distinct(records, func(r schema.IncidentRecord) (int, bool) {
		if r.District == nil {
			return 0, false
		}
		return *r.District, true
	})
	sort.Ints(districts)
	return districts
}

// CategoryCount is the number of records of one category.
type CategoryCount struct {
	Category string
	Count    int
}

// CountByCategory counts records per non-empty category, most frequent first.
// Ties keep first-seen order.
func CountByCategory(records []schema.IncidentRecord) []CategoryCount {
	counts := make(map[string]int)
	for _, r := range records {
		if r.HasCategory() {
			counts[r.Category]++
		}
	}
	categories := DistinctCategories(records)
	out := make([]CategoryCount, len(categories))
	for i, c := range categories {
		out[i] = CategoryCount{Category: c, Count: counts[c]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
