package iocache

import (
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateAnalysis_UnsupportedBackend(t *testing.T) {
	assert.Error(t, MigrateAnalysis("oracle", "", -1))
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration.db")

	steps := []struct {
		name    string
		version int
	}{
		{"latest", -1},
		{"latest again is a no-op", -1},
		{"down to one", 1},
		{"roll back everything", 0},
		{"up to two", 2},
		{"latest from two", -1},
	}
	for _, step := range steps {
		require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, step.version), step.name)
	}

	// A migrated database is usable by the store without reapplying anything.
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	id, err := store.BeginAnalysis("districts", time.Now(), nil)
	require.NoError(t, err)
	assert.NoError(t, store.RecordDistrictStats(id, sampleDistricts()))
}

func TestMigrateAnalysis_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrationFiles(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			dir := migrationDir(backend)
			up, err := fs.Glob(migrationsFS, dir+"/*.up.sql")
			require.NoError(t, err)
			down, err := fs.Glob(migrationsFS, dir+"/*.down.sql")
			require.NoError(t, err)
			assert.Len(t, up, len(analysisTables))
			assert.Len(t, down, len(analysisTables))
		})
	}
}
