// Package filter has the predicate-based record filter shared by every report.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
)

// DateRange bounds record dates. A zero Start or End leaves that side open.
// End is inclusive.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range filters nothing.
func (d DateRange) IsZero() bool {
	return d.Start.IsZero() && d.End.IsZero()
}

// Contains reports whether t falls inside the range.
func (d DateRange) Contains(t time.Time) bool {
	if !d.Start.IsZero() && t.Before(d.Start) {
		return false
	}
	if !d.End.IsZero() && t.After(d.End) {
		return false
	}
	return true
}

// Criteria selects incident records. The zero value matches every record.
type Criteria struct {
	Category           string        `json:"category"`           // "" or "all" = any
	Year               *int          `json:"year,omitempty"`     // nil = any
	Quarter            schema.Period `json:"quarter"`            // "" or "all" = any
	PDQ                *int          `json:"pdq,omitempty"`      // nil = any
	DateRange          DateRange     `json:"dateRange"`          // zero = any
	CategoryCountLimit int           `json:"categoryCountLimit"` // 0 = all categories
}

// IsZero reports whether the criteria filter nothing.
func (c Criteria) IsZero() bool {
	return isAll(c.Category) && c.Year == nil && isAll(string(c.Quarter)) &&
		c.PDQ == nil && c.DateRange.IsZero() && c.CategoryCountLimit <= 0
}

// String renders the criteria in a stable form, used in cache keys and run tracking.
func (c Criteria) String() string {
	year, pdq := schema.AllFilter, schema.AllFilter
	if c.Year != nil {
		year = strconv.Itoa(*c.Year)
	}
	if c.PDQ != nil {
		pdq = strconv.Itoa(*c.PDQ)
	}
	return fmt.Sprintf("category=%s;year=%s;quarter=%s;pdq=%s;start=%s;end=%s;limit=%d",
		orAll(c.Category), year, orAll(string(c.Quarter)), pdq,
		formatBound(c.DateRange.Start), formatBound(c.DateRange.End), c.CategoryCountLimit)
}

// Match reports whether a single record satisfies every per-record criterion.
// CategoryCountLimit depends on the whole record set and is applied by Apply.
func (c Criteria) Match(r schema.IncidentRecord) bool {
	if !isAll(c.Category) && r.Category != c.Category {
		return false
	}
	if c.Year != nil && (!r.HasDate() || r.Year() != *c.Year) {
		return false
	}
	if !isAll(string(c.Quarter)) && r.Period != c.Quarter {
		return false
	}
	if c.PDQ != nil && (r.District == nil || *r.District != *c.PDQ) {
		return false
	}
	if !c.DateRange.IsZero() && (!r.HasDate() || !c.DateRange.Contains(r.Date)) {
		return false
	}
	return true
}

// Apply returns the records matching every criterion, in their original order.
// The input slice is never modified.
func Apply(records []schema.IncidentRecord, c Criteria) []schema.IncidentRecord {
	out := make([]schema.IncidentRecord, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	if c.CategoryCountLimit > 0 {
		out = keepTopCategories(out, c.CategoryCountLimit)
	}
	return out
}

// keepTopCategories keeps records whose category is among the limit most frequent ones.
func keepTopCategories(records []schema.IncidentRecord, limit int) []schema.IncidentRecord {
	counts := agg.CountByCategory(records)
	if len(counts) <= limit {
		return records
	}
	keep := make(map[string]struct{}, limit)
	for _, cc := range counts[:limit] {
		keep[cc.Category] = struct{}{}
	}
	out := make([]schema.IncidentRecord, 0, len(records))
	for _, r := range records {
		if _, ok := keep[r.Category]; ok {
			out = append(out, r)
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, schema.AllFilter)
}

func orAll(v string) string {
	if isAll(v) {
		return schema.AllFilter
	}
	return v
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
