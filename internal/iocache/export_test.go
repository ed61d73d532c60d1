package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAnalysis(t *testing.T) {
	store := newMemoryAnalysisStore(t)
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := store.BeginAnalysis("districts", start, map[string]any{"limit": 5})
	require.NoError(t, err)
	require.NoError(t, store.RecordDistrictStats(id, sampleDistricts()))
	require.NoError(t, store.RecordImpactScores(id, schema.WeightedMetric, sampleScores()))
	require.NoError(t, store.EndAnalysis(id, start.Add(time.Second), 280))

	out := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExportAnalysis(store, out, &buf))

	for _, suffix := range []string{".analysis_runs.parquet", ".district_stats.parquet", ".impact_scores.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err, suffix)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 1 analysis runs")
	assert.Contains(t, buf.String(), "Exported 3 district rows")
	assert.Contains(t, buf.String(), "Exported 2 impact scores")
}

func TestExportAnalysisErrors(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExportAnalysis(new(MockAnalysisStore), "", &bytes.Buffer{})
		assert.ErrorContains(t, err, "--output-file")
	})

	t.Run("no runs", func(t *testing.T) {
		store := new(MockAnalysisStore)
		store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true}, nil)
		err := ExportAnalysis(store, filepath.Join(t.TempDir(), "x"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "no analysis data")
		store.AssertExpectations(t)
	})

	t.Run("status failure", func(t *testing.T) {
		store := new(MockAnalysisStore)
		store.On("GetStatus").Return(schema.AnalysisStatus{}, errors.New("boom"))
		err := ExportAnalysis(store, filepath.Join(t.TempDir(), "x"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("read failure", func(t *testing.T) {
		store := new(MockAnalysisStore)
		store.On("GetStatus").Return(schema.AnalysisStatus{TotalRuns: 1}, nil)
		store.On("GetAllAnalysisRuns").Return(nil, errors.New("read failed"))
		err := ExportAnalysis(store, filepath.Join(t.TempDir(), "x"), &bytes.Buffer{})
		assert.ErrorContains(t, err, "read failed")
		store.AssertExpectations(t)
	})

	t.Run("tracking disabled", func(t *testing.T) {
		resetManager(t)
		assert.Error(t, ExecuteAnalysisExport("out"))
	})
}
