package schema

import "time"

// CacheStatus represents the status of the result cache.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the run tracking store.
type AnalysisStatus struct {
	Backend              string           `json:"backend"`
	Connected            bool             `json:"connected"`
	TotalRuns            int              `json:"total_runs"`
	LastRunID            int64            `json:"last_run_id"`
	LastRunTime          time.Time        `json:"last_run_time"`
	OldestRunTime        time.Time        `json:"oldest_run_time"`
	TotalRecordsAnalyzed int64            `json:"total_records_analyzed"`
	TableSizes           map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the pdqstats_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID           int64   `db:"analysis_id"`
	Command              string  `db:"command"`
	StartTime            string  `db:"start_time"`
	EndTime              *string `db:"end_time"`
	RunDurationMs        *int64  `db:"run_duration_ms"`
	TotalRecordsAnalyzed int64   `db:"total_records_analyzed"`
	ConfigParams         *string `db:"config_params"`
}

// DistrictStatsRecord represents a row from the pdqstats_district_stats table.
type DistrictStatsRecord struct {
	AnalysisID  int64  `db:"analysis_id"`
	District    int64  `db:"district"`
	Total       int64  `db:"total"`
	TopCategory string `db:"top_category"`
	TopCount    int64  `db:"top_count"`
	Bucket      int64  `db:"bucket"`
	Label       string `db:"label"`
}

// ImpactScoreRecord represents a row from the pdqstats_impact_scores table.
type ImpactScoreRecord struct {
	AnalysisID          int64   `db:"analysis_id"`
	Category            string  `db:"category"`
	Frequency           int64   `db:"frequency"`
	NormalizedFrequency float64 `db:"normalized_frequency"`
	GeographicSpread    float64 `db:"geographic_spread"`
	Severity            float64 `db:"severity"`
	ImpactScore         float64 `db:"impact_score"`
	MetricType          string  `db:"metric_type"`
}
