package algo

import (
	"sort"

	"github.com/mtlpdq/pdqstats/schema"
)

// RankDistricts sorts districts by total in descending order, breaking ties by district id,
// and returns the top 'limit' rows. A limit <= 0 returns every district. Each row carries
// its share of all incidents and its bucket in the color scale built from every district.
func RankDistricts(byDistrict map[int]*schema.DistrictStats, limit int) []schema.DistrictResult {
	scale := BuildColorScale(byDistrict)
	grand := (schema.AggregationResult{ByDistrict: byDistrict}).Total()

	rows := make([]schema.DistrictResult, 0, len(byDistrict))
	for id, stats := range byDistrict {
		if stats == nil {
			stats = schema.NewDistrictStats(nil, nil)
		}
		top, topCount := stats.TopCategory()
		bucket := scale.Bucket(float64(stats.Total))
		rows = append(rows, schema.DistrictResult{
			District:    id,
			Total:       stats.Total,
			TopCategory: top,
			TopCount:    topCount,
			Share:       share(stats.Total, grand),
			Bucket:      bucket,
			Label:       scale.Labels[bucket],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].District < rows[j].District
	})
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// RankImpact returns the top 'limit' impact scores, which must already be sorted.
// A limit <= 0 returns every score.
func RankImpact(scores []schema.ImpactScore, limit int) []schema.ImpactScore {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
