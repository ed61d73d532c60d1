// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
)

// DatasetLoader reads the incident and boundary datasets.
// This allows the orchestration layer to be tested without files on disk.
type DatasetLoader interface {
	// LoadIncidents parses the incident CSV. Dates are interpreted in loc.
	// The returned Dataset has no boundaries.
	LoadIncidents(ctx context.Context, path string, loc *time.Location) (schema.Dataset, error)

	// LoadBoundaries parses the PDQ boundary GeoJSON.
	LoadBoundaries(ctx context.Context, path string) (schema.GeoFeatureCollection, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking runs and storing their results.
type AnalysisStore interface {
	// BeginAnalysis creates a new run and returns its unique ID
	BeginAnalysis(command string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalRecords int) error

	// RecordDistrictStats stores the ranked district rows of a run
	RecordDistrictStats(analysisID int64, rows []schema.DistrictResult) error

	// RecordImpactScores stores the impact scores of a run
	RecordImpactScores(analysisID int64, metricType schema.MetricType, scores []schema.ImpactScore) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)
	GetAllDistrictStats() ([]schema.DistrictStatsRecord, error)
	GetAllImpactScores() ([]schema.ImpactScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// OutputWriter renders the reports of every command.
// This allows the orchestration layer to be tested without touching stdout.
type OutputWriter interface {
	WriteDistricts(report schema.DistrictsReport, cfg *Config, duration time.Duration) error
	WriteScale(report schema.ScaleReport, cfg *Config) error
	WriteGeoJSON(fc schema.GeoFeatureCollection, cfg *Config) error
	WriteEvolution(report schema.EvolutionReport, cfg *Config, duration time.Duration) error
	WriteCorrelation(report schema.CorrelationReport, cfg *Config, duration time.Duration) error
	WriteImpact(report schema.ImpactReport, cfg *Config, duration time.Duration) error
	WriteTrends(report schema.TrendReport, cfg *Config, duration time.Duration) error
	WriteSeasonal(aggregate schema.SeasonalAggregate, cfg *Config, duration time.Duration) error
	WriteHeatmap(report schema.HeatmapReport, cfg *Config, duration time.Duration) error
}
