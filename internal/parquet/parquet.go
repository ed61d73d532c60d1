// Package parquet provides data structures and functions for exporting pdqstats
// results and tracked runs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single tracked pdqstats run.
// This struct maps to the pdqstats_analysis_runs database table.
type AnalysisRun struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	Command    string `parquet:"command,snappy,dict"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	TotalRecordsAnalyzed int64 `parquet:"total_records_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// DistrictStat is one ranked PDQ row, either from a tracked run or from a districts report.
type DistrictStat struct {
	AnalysisID  int64   `parquet:"analysis_id,snappy"`
	Rank        int32   `parquet:"rank,snappy"`
	District    int32   `parquet:"district,snappy"`
	Name        *string `parquet:"name,optional,snappy"`
	Total       int64   `parquet:"total,snappy"`
	TopCategory string  `parquet:"top_category,snappy,dict"`
	TopCount    int64   `parquet:"top_count,snappy"`
	Share       float64 `parquet:"share,snappy"`
	Bucket      int32   `parquet:"bucket,snappy"`
	Label       string  `parquet:"label,snappy,dict"`
	Color       *string `parquet:"color,optional,snappy"`
}

// ImpactScore is one scored category, either from a tracked run or from an impact report.
type ImpactScore struct {
	AnalysisID          int64   `parquet:"analysis_id,snappy"`
	Rank                int32   `parquet:"rank,snappy"`
	Category            string  `parquet:"category,snappy,dict"`
	Frequency           int64   `parquet:"frequency,snappy"`
	NormalizedFrequency float64 `parquet:"normalized_frequency,snappy"`
	GeographicSpread    float64 `parquet:"geographic_spread,snappy"`
	Severity            float64 `parquet:"severity,snappy"`
	ImpactScore         float64 `parquet:"impact_score,snappy"`
	MetricType          string  `parquet:"metric_type,snappy,dict"`
	Quadrant            *string `parquet:"quadrant,optional,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDistrictStatsParquet writes a slice of DistrictStat structs to a Parquet file.
func WriteDistrictStatsParquet(data []DistrictStat, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteImpactScoresParquet writes a slice of ImpactScore structs to a Parquet file.
func WriteImpactScoresParquet(data []ImpactScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// storedTimeLayouts are the layouts the analysis backends return timestamps in.
var storedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// ParseStoredTime parses a timestamp read back from an analysis store.
func ParseStoredTime(s string) (time.Time, error) {
	for _, layout := range storedTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) ([]AnalysisRun, error) {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		start, err := ParseStoredTime(record.StartTime)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", record.AnalysisID, err)
		}
		var end *time.Time
		if record.EndTime != nil {
			t, err := ParseStoredTime(*record.EndTime)
			if err != nil {
				return nil, fmt.Errorf("run %d: %w", record.AnalysisID, err)
			}
			end = &t
		}
		result[i] = AnalysisRun{
			AnalysisID:           record.AnalysisID,
			Command:              record.Command,
			StartTime:            start,
			EndTime:              end,
			RunDurationMs:        record.RunDurationMs,
			TotalRecordsAnalyzed: record.TotalRecordsAnalyzed,
			ConfigParams:         record.ConfigParams,
		}
	}
	return result, nil
}

// ConvertDistrictStatsRecords converts schema.DistrictStatsRecord to DistrictStat for Parquet export.
// Rank restarts at 1 for every run, following the stored row order.
func ConvertDistrictStatsRecords(records []schema.DistrictStatsRecord) []DistrictStat {
	result := make([]DistrictStat, len(records))
	rank, lastRun := int32(0), int64(-1)
	for i, record := range records {
		if record.AnalysisID != lastRun {
			rank, lastRun = 0, record.AnalysisID
		}
		rank++
		result[i] = DistrictStat{
			AnalysisID:  record.AnalysisID,
			Rank:        rank,
			District:    int32(record.District),
			Total:       record.Total,
			TopCategory: record.TopCategory,
			TopCount:    record.TopCount,
			Bucket:      int32(record.Bucket),
			Label:       record.Label,
		}
	}
	return result
}

// ConvertImpactScoreRecords converts schema.ImpactScoreRecord to ImpactScore for Parquet export.
func ConvertImpactScoreRecords(records []schema.ImpactScoreRecord) []ImpactScore {
	result := make([]ImpactScore, len(records))
	rank, lastRun := int32(0), int64(-1)
	for i, record := range records {
		if record.AnalysisID != lastRun {
			rank, lastRun = 0, record.AnalysisID
		}
		rank++
		result[i] = ImpactScore{
			AnalysisID:          record.AnalysisID,
			Rank:                rank,
			Category:            record.Category,
			Frequency:           record.Frequency,
			NormalizedFrequency: record.NormalizedFrequency,
			GeographicSpread:    record.GeographicSpread,
			Severity:            record.Severity,
			ImpactScore:         record.ImpactScore,
			MetricType:          record.MetricType,
		}
	}
	return result
}

// ConvertDistrictResults converts the rows of a districts report for Parquet output.
func ConvertDistrictResults(rows []schema.EnrichedDistrictResult) []DistrictStat {
	result := make([]DistrictStat, len(rows))
	for i, r := range rows {
		result[i] = DistrictStat{
			Rank:        int32(r.Rank),
			District:    int32(r.District),
			Name:        optionalString(r.Name),
			Total:       int64(r.Total),
			TopCategory: r.TopCategory,
			TopCount:    int64(r.TopCount),
			Share:       r.Share,
			Bucket:      int32(r.Bucket),
			Label:       r.Label,
			Color:       optionalString(r.Color),
		}
	}
	return result
}

// ConvertImpactScores converts the scores of an impact report for Parquet output.
func ConvertImpactScores(scores []schema.EnrichedImpactScore, metricType schema.MetricType) []ImpactScore {
	result := make([]ImpactScore, len(scores))
	for i, s := range scores {
		result[i] = ImpactScore{
			Rank:                int32(s.Rank),
			Category:            s.Category,
			Frequency:           int64(s.Frequency),
			NormalizedFrequency: s.NormalizedFrequency,
			GeographicSpread:    s.GeographicSpread,
			Severity:            s.Severity,
			ImpactScore:         s.ImpactScore.ImpactScore,
			MetricType:          string(metricType),
			Quadrant:            optionalString(s.Quadrant),
		}
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
