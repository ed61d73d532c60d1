package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
)

// RawCriteria holds criteria in the string form received from flags and tool arguments.
type RawCriteria struct {
	Category      string
	Year          string
	Quarter       string
	PDQ           string
	Start         string
	End           string
	CategoryLimit string
}

// dateLayouts are the accepted layouts for range bounds, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "2006-01", "2006"}

// ParseCriteria validates raw criteria and converts them into Criteria.
// Date-only bounds are interpreted in loc; an End given as a day covers that whole day.
func ParseCriteria(raw RawCriteria, loc *time.Location) (Criteria, error) {
	var c Criteria
	c.Category = strings.TrimSpace(raw.Category)
	if isAll(c.Category) {
		c.Category = ""
	}

	if y := strings.TrimSpace(raw.Year); !isAll(y) {
		year, err := strconv.Atoi(y)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid year '%s'. must be an integer or 'all'", raw.Year)
		}
		c.Year = &year
	}

	if q := strings.ToLower(strings.TrimSpace(raw.Quarter)); !isAll(q) {
		p := schema.Period(q)
		if _, ok := schema.ValidPeriods[p]; !ok {
			return Criteria{}, fmt.Errorf("invalid quarter '%s'. must be one of jour, soir, nuit or all", raw.Quarter)
		}
		c.Quarter = p
	}

	if p := strings.TrimSpace(raw.PDQ); !isAll(p) {
		pdq, err := strconv.Atoi(p)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid pdq '%s'. must be an integer or 'all'", raw.PDQ)
		}
		c.PDQ = &pdq
	}

	if s := strings.TrimSpace(raw.Start); s != "" {
		start, _, err := parseBound(s, loc)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid start date '%s': %w", raw.Start, err)
		}
		c.DateRange.Start = start
	}
	if e := strings.TrimSpace(raw.End); e != "" {
		end, layout, err := parseBound(e, loc)
		if err != nil {
			return Criteria{}, fmt.Errorf("invalid end date '%s': %w", raw.End, err)
		}
		c.DateRange.End = endOfPeriod(end, layout)
	}
	if !c.DateRange.Start.IsZero() && !c.DateRange.End.IsZero() && c.DateRange.End.Before(c.DateRange.Start) {
		return Criteria{}, fmt.Errorf("end date %s is before start date %s", raw.End, raw.Start)
	}

	if l := strings.TrimSpace(raw.CategoryLimit); !isAll(l) {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			return Criteria{}, fmt.Errorf("invalid category limit '%s'. must be a positive integer or 'all'", raw.CategoryLimit)
		}
		c.CategoryCountLimit = limit
	}

	return c, nil
}

func parseBound(s string, loc *time.Location) (time.Time, string, error) {
	if loc == nil {
		loc = time.Local
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, layout, nil
		}
		lastErr = err
	}
	return time.Time{}, "", lastErr
}

// endOfPeriod extends a truncated bound to the last instant it designates.
func endOfPeriod(t time.Time, layout string) time.Time {
	switch layout {
	case "2006":
		return t.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case "2006-01":
		return t.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case "2006-01-02":
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t
}
