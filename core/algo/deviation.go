package algo

import (
	"fmt"
	"math"
	"sort"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
)

// StrongDeviation is the absolute deviation in percent from which a cell is a strong correlation.
const StrongDeviation = 20.0

// Periods returns the fixed period keys of a period type, in display order.
func Periods(periodType schema.PeriodType) []string {
	switch periodType {
	case schema.MonthPeriodType:
		out := make([]string, 12)
		for i := range out {
			out[i] = fmt.Sprintf("%02d", i+1)
		}
		return out
	case schema.WeekdayPeriodType:
		return append([]string(nil), schema.WeekdayNames[:]...)
	default:
		out := make([]string, len(schema.AllPeriods))
		for i, p := range schema.AllPeriods {
			out[i] = string(p)
		}
		return out
	}
}

// PeriodOf returns the period key of a dated record. Records without a shift fall in the day shift.
func PeriodOf(r schema.IncidentRecord, periodType schema.PeriodType) string {
	switch periodType {
	case schema.MonthPeriodType:
		return fmt.Sprintf("%02d", int(r.Date.Month()))
	case schema.WeekdayPeriodType:
		return schema.WeekdayNames[r.Date.Weekday()]
	default:
		if r.Period == "" {
			return string(schema.DayPeriod)
		}
		return string(r.Period)
	}
}

// ComputeDeviationMatrix compares observed category by period counts with the counts
// expected if category and period were independent. Only records with a date and a
// category are considered. Categories are ranked by frequency and the top limit kept,
// or all of them when limit <= 0. The grand total spans every considered record while
// category and period totals cover the kept categories only.
func ComputeDeviationMatrix(records []schema.IncidentRecord, periodType schema.PeriodType, limit int) schema.DeviationMatrix {
	if _, ok := schema.ValidPeriodTypes[periodType]; !ok {
		periodType = schema.DayPeriodType
	}
	valid := make([]schema.IncidentRecord, 0, len(records))
	for _, r := range records {
		if r.HasDate() && r.HasCategory() {
			valid = append(valid, r)
		}
	}

	ranked := agg.CountByCategory(valid)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	categories := make([]string, len(ranked))
	for i, cc := range ranked {
		categories[i] = cc.Category
	}
	periods := Periods(periodType)

	m := schema.DeviationMatrix{
		PeriodType:     periodType,
		Categories:     categories,
		Periods:        periods,
		Observed:       make(map[string]map[string]int, len(categories)),
		Expected:       make(map[string]map[string]float64, len(categories)),
		Deviation:      make(map[string]map[string]float64, len(categories)),
		CategoryTotals: make(map[string]int, len(categories)),
		PeriodTotals:   make(map[string]int, len(periods)),
		GrandTotal:     len(valid),
	}
	for _, p := range periods {
		m.PeriodTotals[p] = 0
	}
	for _, c := range categories {
		m.CategoryTotals[c] = 0
		row := make(map[string]int, len(periods))
		for _, p := range periods {
			row[p] = 0
		}
		m.Observed[c] = row
	}

	for _, r := range valid {
		row, ok := m.Observed[r.Category]
		if !ok {
			continue
		}
		p := PeriodOf(r, periodType)
		if _, known := row[p]; !known {
			continue
		}
		row[p]++
		m.CategoryTotals[r.Category]++
		m.PeriodTotals[p]++
	}

	for _, c := range categories {
		expected := make(map[string]float64, len(periods))
		deviation := make(map[string]float64, len(periods))
		for _, p := range periods {
			e := 0.0
			if m.GrandTotal > 0 {
				e = float64(m.CategoryTotals[c]) * float64(m.PeriodTotals[p]) / float64(m.GrandTotal)
			}
			d := 0.0
			if e > 0 {
				d = (float64(m.Observed[c][p]) - e) / e * 100
			}
			expected[p] = e
			deviation[p] = d
		}
		m.Expected[c] = expected
		m.Deviation[c] = deviation
	}
	return m
}

// StrongCorrelations returns the cells whose deviation reaches the strong threshold in
// the requested direction, strongest first.
func StrongCorrelations(m schema.DeviationMatrix, positive bool) []schema.Correlation {
	var out []schema.Correlation
	for _, c := range m.Categories {
		for _, p := range m.Periods {
			d := m.Deviation[c][p]
			if (positive && d >= StrongDeviation) || (!positive && d <= -StrongDeviation) {
				out = append(out, schema.Correlation{
					Category:  c,
					Period:    p,
					Deviation: d,
					Observed:  m.Observed[c][p],
					Expected:  m.Expected[c][p],
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Deviation) > math.Abs(out[j].Deviation)
	})
	return out
}

// PeakPeriod returns the busiest period with its three most frequent categories,
// or nil when no kept record falls in any period.
func PeakPeriod(m schema.DeviationMatrix) *schema.PeriodSummary {
	best, bestCount := "", 0
	for _, p := range m.Periods {
		if m.PeriodTotals[p] > bestCount {
			best, bestCount = p, m.PeriodTotals[p]
		}
	}
	if best == "" {
		return nil
	}

	type catCount struct {
		category string
		count    int
	}
	inPeriod := make([]catCount, len(m.Categories))
	for i, c := range m.Categories {
		inPeriod[i] = catCount{c, m.Observed[c][best]}
	}
	sort.SliceStable(inPeriod, func(i, j int) bool { return inPeriod[i].count > inPeriod[j].count })
	top := make([]string, 0, 3)
	for _, cc := range inPeriod[:min(3, len(inPeriod))] {
		top = append(top, cc.category)
	}

	return &schema.PeriodSummary{
		Period:        best,
		Label:         schema.FormatPeriodLabel(best, m.PeriodType),
		Total:         bestCount,
		Percentage:    share(bestCount, m.GrandTotal),
		TopCategories: top,
	}
}

// LowPeriod returns the quietest period, or nil for a matrix without periods.
func LowPeriod(m schema.DeviationMatrix) *schema.PeriodSummary {
	if len(m.Periods) == 0 {
		return nil
	}
	low, lowCount := "", math.MaxInt
	for _, p := range m.Periods {
		if m.PeriodTotals[p] < lowCount {
			low, lowCount = p, m.PeriodTotals[p]
		}
	}
	return &schema.PeriodSummary{
		Period:     low,
		Label:      schema.FormatPeriodLabel(low, m.PeriodType),
		Total:      lowCount,
		Percentage: share(lowCount, m.GrandTotal),
	}
}

// AnalyzeCorrelations computes the deviation matrix and its insights.
func AnalyzeCorrelations(records []schema.IncidentRecord, periodType schema.PeriodType, limit int) schema.CorrelationReport {
	m := ComputeDeviationMatrix(records, periodType, limit)
	return schema.CorrelationReport{
		Matrix:   m,
		Positive: StrongCorrelations(m, true),
		Negative: StrongCorrelations(m, false),
		Peak:     PeakPeriod(m),
		Low:      LowPeriod(m),
	}
}

// share returns part/total in percent, or 0 for an empty total.
func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
