package algo

import (
	"sort"
	"strings"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
)

// DefaultSeverity is the severity of categories matched by no rule.
const DefaultSeverity = 0.4

// prioritySeverity is the severity above which a frequent category becomes a priority.
const prioritySeverity = 0.5

// widespreadSpread is the geographic spread above which a category is present almost everywhere.
const widespreadSpread = 0.9

// Quadrant labels of the frequency/severity matrix.
const (
	QuadrantHighHigh = "Haute fréquence, haute gravité"
	QuadrantHighLow  = "Haute fréquence, faible gravité"
	QuadrantLowHigh  = "Faible fréquence, haute gravité"
	QuadrantLowLow   = "Faible fréquence, faible gravité"
)

// DefaultSeverityRules returns the keyword heuristic used to estimate category severity.
// The weights are estimates, not an authoritative ranking.
func DefaultSeverityRules() []schema.SeverityRule {
	return []schema.SeverityRule{
		{All: []string{"vol", "arm"}, Weight: 0.9},
		{All: []string{"violence"}, Weight: 0.8},
		{All: []string{"vol"}, Weight: 0.6},
		{All: []string{"drogue"}, Weight: 0.5},
	}
}

// Severity returns the weight of the first rule whose keywords all appear in the
// category, compared case-insensitively, or DefaultSeverity when none matches.
func Severity(category string, rules []schema.SeverityRule) float64 {
	name := strings.ToLower(category)
	for _, rule := range rules {
		if len(rule.All) == 0 {
			continue
		}
		matched := true
		for _, kw := range rule.All {
			if !strings.Contains(name, strings.ToLower(kw)) {
				matched = false
				break
			}
		}
		if matched {
			return rule.Weight
		}
	}
	return DefaultSeverity
}

// ComputeImpactScores scores every category with the default factor weights.
func ComputeImpactScores(records []schema.IncidentRecord, rules []schema.SeverityRule, metricType schema.MetricType) []schema.ImpactScore {
	return ComputeImpactScoresWithWeights(records, rules, metricType, schema.GetDefaultImpactWeights())
}

// ComputeImpactScoresWithWeights scores every category of records, highest impact first.
// Frequency counts records carrying both the category and a district; it is normalized by
// the number of records. Spread is the share of districts where the category occurs.
// The frequency metric scores by normalized frequency alone, the distribution metric by
// spread alone, and anything else by the weighted blend of the three factors.
func ComputeImpactScoresWithWeights(records []schema.IncidentRecord, rules []schema.SeverityRule, metricType schema.MetricType, weights map[schema.ImpactFactor]float64) []schema.ImpactScore {
	categories := agg.DistinctCategories(records)
	districts := agg.DistinctDistricts(records)

	frequency := make(map[string]int, len(categories))
	byPDQ := make(map[string]map[int]int, len(categories))
	for _, c := range categories {
		byPDQ[c] = make(map[int]int, len(districts))
		for _, d := range districts {
			byPDQ[c][d] = 0
		}
	}
	for _, r := range records {
		if !r.HasCategory() || r.District == nil {
			continue
		}
		frequency[r.Category]++
		byPDQ[r.Category][*r.District]++
	}

	scores := make([]schema.ImpactScore, 0, len(categories))
	for _, c := range categories {
		covered := 0
		for _, n := range byPDQ[c] {
			if n > 0 {
				covered++
			}
		}
		s := schema.ImpactScore{
			Category:        c,
			Frequency:       frequency[c],
			Severity:        Severity(c, rules),
			PDQDistribution: byPDQ[c],
		}
		if len(records) > 0 {
			s.NormalizedFrequency = float64(s.Frequency) / float64(len(records))
		}
		if len(districts) > 0 {
			s.GeographicSpread = float64(covered) / float64(len(districts))
		}
		switch metricType {
		case schema.FrequencyMetric:
			s.ImpactScore = s.NormalizedFrequency
		case schema.DistributionMetric:
			s.ImpactScore = s.GeographicSpread
		default:
			s.ImpactScore = weights[schema.FactorFrequency]*s.NormalizedFrequency +
				weights[schema.FactorSeverity]*s.Severity +
				weights[schema.FactorSpread]*s.GeographicSpread
		}
		scores = append(scores, s)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].ImpactScore > scores[j].ImpactScore
	})
	return scores
}

// median returns the median of values, or 0 when empty.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Quadrant places a score in the frequency/severity matrix split at the median frequency.
func Quadrant(s schema.ImpactScore, medianFrequency float64) string {
	highFreq := s.NormalizedFrequency >= medianFrequency
	highSev := s.Severity >= prioritySeverity
	switch {
	case highFreq && highSev:
		return QuadrantHighHigh
	case highFreq:
		return QuadrantHighLow
	case highSev:
		return QuadrantLowHigh
	default:
		return QuadrantLowLow
	}
}

// ImpactInsights summarises impact scores sorted by impact.
func ImpactInsights(scores []schema.ImpactScore) schema.ImpactInsights {
	freqs := make([]float64, len(scores))
	for i, s := range scores {
		freqs[i] = s.NormalizedFrequency
	}
	med := median(freqs)

	insights := schema.ImpactInsights{
		MedianFrequency: med,
		TopByImpact:     topCategories(scores, nil),
		TopByFrequency:  topCategories(scores, func(a, b schema.ImpactScore) bool { return a.Frequency > b.Frequency }),
		TopBySeverity:   topCategories(scores, func(a, b schema.ImpactScore) bool { return a.Severity > b.Severity }),
		TopBySpread:     topCategories(scores, func(a, b schema.ImpactScore) bool { return a.GeographicSpread > b.GeographicSpread }),
		Priority:        []string{},
		Widespread:      []string{},
		Quadrants:       make(map[string]string, len(scores)),
	}
	for _, s := range scores {
		if s.NormalizedFrequency > med && s.Severity > prioritySeverity {
			insights.Priority = append(insights.Priority, s.Category)
		}
		if s.GeographicSpread > widespreadSpread {
			insights.Widespread = append(insights.Widespread, s.Category)
		}
		insights.Quadrants[s.Category] = Quadrant(s, med)
	}
	return insights
}

// topCategories returns the three first categories under less, or in input order when less is nil.
func topCategories(scores []schema.ImpactScore, less func(a, b schema.ImpactScore) bool) []string {
	sorted := append([]schema.ImpactScore(nil), scores...)
	if less != nil {
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	}
	out := make([]string, 0, 3)
	for _, s := range sorted[:min(3, len(sorted))] {
		out = append(out, s.Category)
	}
	return out
}
