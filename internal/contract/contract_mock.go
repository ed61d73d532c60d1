package contract

import (
	"context"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatasetLoader is a mock implementation of DatasetLoader for testing.
type MockDatasetLoader struct {
	mock.Mock
}

var _ DatasetLoader = &MockDatasetLoader{} // Compile-time check

// LoadIncidents mocks the LoadIncidents method.
func (m *MockDatasetLoader) LoadIncidents(ctx context.Context, path string, loc *time.Location) (schema.Dataset, error) {
	args := m.Called(ctx, path, loc)
	return args.Get(0).(schema.Dataset), args.Error(1)
}

// LoadBoundaries mocks the LoadBoundaries method.
func (m *MockDatasetLoader) LoadBoundaries(ctx context.Context, path string) (schema.GeoFeatureCollection, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(schema.GeoFeatureCollection), args.Error(1)
}

// MockOutputWriter is a mock implementation of OutputWriter for testing.
type MockOutputWriter struct {
	mock.Mock
}

var _ OutputWriter = &MockOutputWriter{} // Compile-time check

// WriteDistricts mocks the WriteDistricts method.
func (m *MockOutputWriter) WriteDistricts(report schema.DistrictsReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteScale mocks the WriteScale method.
func (m *MockOutputWriter) WriteScale(report schema.ScaleReport, cfg *Config) error {
	args := m.Called(report, cfg)
	return args.Error(0)
}

// WriteGeoJSON mocks the WriteGeoJSON method.
func (m *MockOutputWriter) WriteGeoJSON(fc schema.GeoFeatureCollection, cfg *Config) error {
	args := m.Called(fc, cfg)
	return args.Error(0)
}

// WriteEvolution mocks the WriteEvolution method.
func (m *MockOutputWriter) WriteEvolution(report schema.EvolutionReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteCorrelation mocks the WriteCorrelation method.
func (m *MockOutputWriter) WriteCorrelation(report schema.CorrelationReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteImpact mocks the WriteImpact method.
func (m *MockOutputWriter) WriteImpact(report schema.ImpactReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteTrends mocks the WriteTrends method.
func (m *MockOutputWriter) WriteTrends(report schema.TrendReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}

// WriteSeasonal mocks the WriteSeasonal method.
func (m *MockOutputWriter) WriteSeasonal(aggregate schema.SeasonalAggregate, cfg *Config, duration time.Duration) error {
	args := m.Called(aggregate, cfg, duration)
	return args.Error(0)
}

// WriteHeatmap mocks the WriteHeatmap method.
func (m *MockOutputWriter) WriteHeatmap(report schema.HeatmapReport, cfg *Config, duration time.Duration) error {
	args := m.Called(report, cfg, duration)
	return args.Error(0)
}
