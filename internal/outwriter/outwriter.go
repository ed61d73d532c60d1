// Package outwriter renders pdqstats reports as tables, CSV, JSON, GeoJSON and Parquet.
package outwriter

import (
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDistricts prints the ranked districts using the configured output format.
func (ow *OutWriter) WriteDistricts(report schema.DistrictsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintDistrictResults(report, cfg, duration)
}

// WriteScale prints the color scale and its legend.
func (ow *OutWriter) WriteScale(report schema.ScaleReport, cfg *contract.Config) error {
	return PrintScaleResults(report, cfg)
}

// WriteGeoJSON prints the merged boundary collection.
func (ow *OutWriter) WriteGeoJSON(fc schema.GeoFeatureCollection, cfg *contract.Config) error {
	return PrintMergedBoundaries(fc, cfg)
}

// WriteEvolution prints per-district evolution between two years.
func (ow *OutWriter) WriteEvolution(report schema.EvolutionReport, cfg *contract.Config, duration time.Duration) error {
	return PrintEvolutionResults(report, cfg, duration)
}

// WriteCorrelation prints the deviation matrix and its insights.
func (ow *OutWriter) WriteCorrelation(report schema.CorrelationReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCorrelationResults(report, cfg, duration)
}

// WriteImpact prints impact scores and insights.
func (ow *OutWriter) WriteImpact(report schema.ImpactReport, cfg *contract.Config, duration time.Duration) error {
	return PrintImpactResults(report, cfg, duration)
}

// WriteTrends prints per-category trends.
func (ow *OutWriter) WriteTrends(report schema.TrendReport, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(report, cfg, duration)
}

// WriteHeatmap prints the located incidents.
func (ow *OutWriter) WriteHeatmap(report schema.HeatmapReport, cfg *contract.Config, duration time.Duration) error {
	return PrintHeatmapResults(report, cfg, duration)
}

// WriteSeasonal prints the seasonal aggregate.
func (ow *OutWriter) WriteSeasonal(aggregate schema.SeasonalAggregate, cfg *contract.Config, duration time.Duration) error {
	return PrintSeasonalResults(aggregate, cfg, duration)
}
