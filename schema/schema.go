// Package schema has the data model, enums and display labels shared by every part of pdqstats.
package schema

import (
	"sort"
	"time"
)

// IncidentRecord is one crime occurrence as loaded from the incident dataset.
// A zero Date, an empty Category or a nil District mean the source field was null or unparseable.
type IncidentRecord struct {
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	District    *int      `json:"district,omitempty"`
	Period      Period    `json:"period,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Subcategory string    `json:"subcategory,omitempty"`
}

// HasDate reports whether the record carries a usable date.
func (r IncidentRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// HasCategory reports whether the record carries a category.
func (r IncidentRecord) HasCategory() bool {
	return r.Category != ""
}

// Year returns the calendar year of the record, or 0 without a date.
func (r IncidentRecord) Year() int {
	if !r.HasDate() {
		return 0
	}
	return r.Date.Year()
}

// Month returns the zero-based calendar month of the record, or -1 without a date.
func (r IncidentRecord) Month() int {
	if !r.HasDate() {
		return -1
	}
	return int(r.Date.Month()) - 1
}

// DistrictStats is the per-district rollup produced by the aggregation engine.
// Total always equals the sum of ByCategory and the sum of ByYear.
type DistrictStats struct {
	Total             int                    `json:"total"`
	ByCategory        map[string]int         `json:"byCategory"`
	ByYear            map[int]int            `json:"byYear"`
	ByCategoryAndYear map[string]map[int]int `json:"byCategoryAndYear"`
}

// NewDistrictStats returns stats zero-filled for every category and year given.
// With nil inputs it returns the all-zero default used for districts without incidents.
func NewDistrictStats(categories []string, years []int) *DistrictStats {
	s := &DistrictStats{
		ByCategory:        make(map[string]int, len(categories)),
		ByYear:            make(map[int]int, len(years)),
		ByCategoryAndYear: make(map[string]map[int]int, len(categories)),
	}
	for _, y := range years {
		s.ByYear[y] = 0
	}
	for _, c := range categories {
		s.ByCategory[c] = 0
		perYear := make(map[int]int, len(years))
		for _, y := range years {
			perYear[y] = 0
		}
		s.ByCategoryAndYear[c] = perYear
	}
	return s
}

// YearCount returns the count for a year, optionally scoped to one category.
// Missing keys count as zero.
func (s *DistrictStats) YearCount(year int, category string) int {
	if s == nil {
		return 0
	}
	if category == "" || category == AllFilter {
		return s.ByYear[year]
	}
	return s.ByCategoryAndYear[category][year]
}

// TopCategory returns the category with the highest count, ties broken alphabetically.
func (s *DistrictStats) TopCategory() (string, int) {
	best, bestCount := "", 0
	for c, n := range s.ByCategory {
		if n > bestCount || (n == bestCount && n > 0 && c < best) {
			best, bestCount = c, n
		}
	}
	return best, bestCount
}

// AggregationResult is the output of the aggregation engine.
type AggregationResult struct {
	Categories []string               `json:"categories"`
	Years      []int                  `json:"years"`
	ByDistrict map[int]*DistrictStats `json:"byDistrict"`
}

// Districts returns the district identifiers in ascending order.
func (r AggregationResult) Districts() []int {
	ids := make([]int, 0, len(r.ByDistrict))
	for id := range r.ByDistrict {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Total returns the number of aggregated incidents across all districts.
func (r AggregationResult) Total() int {
	total := 0
	for _, s := range r.ByDistrict {
		if s != nil {
			total += s.Total
		}
	}
	return total
}

// DistrictResult is one ranked row of the districts report.
type DistrictResult struct {
	District    int     `json:"district"`
	Name        string  `json:"name,omitempty"`
	Total       int     `json:"total"`
	TopCategory string  `json:"topCategory"`
	TopCount    int     `json:"topCount"`
	Share       float64 `json:"share"`
	Bucket      int     `json:"bucket"`
	Label       string  `json:"label"`

	// Shifts counts the district's incidents per police shift.
	Shifts map[Period]int `json:"shifts,omitempty"`
}
