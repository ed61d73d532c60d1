package iocache

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/internal/parquet"
	"github.com/mtlpdq/pdqstats/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable  = "pdqstats_analysis_runs"
	districtStatsTable = "pdqstats_district_stats"
	impactScoresTable  = "pdqstats_impact_scores"
)

// analysisTables lists every analysis table in creation order.
var analysisTables = []string{analysisRunsTable, districtStatsTable, impactScoresTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sqlx.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis store: %w", err)
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// createAnalysisTables applies the embedded up migrations of the backend.
// Every migration uses IF NOT EXISTS, so this is safe on a migrated database.
func createAnalysisTables(db *sqlx.DB, backend schema.DatabaseBackend) error {
	files, err := fs.Glob(migrationsFS, migrationDir(backend)+"/*.up.sql")
	if err != nil {
		return err
	}
	for _, name := range files {
		query, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(command string, startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES ($1, $2, $3) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, command, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (command, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		res, execErr := as.db.Exec(query, command, formatTime(startTime, as.backend), string(configJSON))
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert analysis run: %w", execErr)
		}
		analysisID, err = res.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalRecords int) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var startStr string
	selectQuery := as.db.Rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = ?`, quotedTableName))
	if err := as.db.Get(&startStr, selectQuery, analysisID); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}
	startTime, err := parquet.ParseStoredTime(startStr)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	updateQuery := as.db.Rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_records_analyzed = ? WHERE analysis_id = ?`, quotedTableName))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalRecords, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordDistrictStats stores the ranked district rows of a run in one transaction.
func (as *AnalysisStoreImpl) RecordDistrictStats(analysisID int64, rows []schema.DistrictResult) error {
	if as.disabled() || len(rows) == 0 {
		return nil
	}

	query := as.db.Rebind(fmt.Sprintf(`INSERT INTO %s (analysis_id, district, total, top_category, top_count, bucket, label)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, quoteTableName(districtStatsTable, as.backend)))

	return as.inTx(func(tx *sqlx.Tx) error {
		stmt, err := tx.Preparex(query)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()
		for _, r := range rows {
			if _, err := stmt.Exec(analysisID, r.District, r.Total, r.TopCategory, r.TopCount, r.Bucket, r.Label); err != nil {
				return fmt.Errorf("failed to insert stats for PDQ %d: %w", r.District, err)
			}
		}
		return nil
	})
}

// RecordImpactScores stores the impact scores of a run in one transaction.
func (as *AnalysisStoreImpl) RecordImpactScores(analysisID int64, metricType schema.MetricType, scores []schema.ImpactScore) error {
	if as.disabled() || len(scores) == 0 {
		return nil
	}

	query := as.db.Rebind(fmt.Sprintf(`INSERT INTO %s (analysis_id, category, metric_type, frequency,
		normalized_frequency, geographic_spread, severity, impact_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(impactScoresTable, as.backend)))

	return as.inTx(func(tx *sqlx.Tx) error {
		stmt, err := tx.Preparex(query)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()
		for _, s := range scores {
			if _, err := stmt.Exec(analysisID, s.Category, string(metricType), s.Frequency,
				s.NormalizedFrequency, s.GeographicSpread, s.Severity, s.ImpactScore); err != nil {
				return fmt.Errorf("failed to insert impact score for %q: %w", s.Category, err)
			}
		}
		return nil
	})
}

// inTx runs fn in a transaction, rolling back when it fails.
func (as *AnalysisStoreImpl) inTx(fn func(tx *sqlx.Tx) error) error {
	tx, err := as.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(analysisRunsTable, as.backend)
	if err := as.db.Get(&status.TotalRuns, fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last struct {
			ID        int64  `db:"analysis_id"`
			StartTime string `db:"start_time"`
		}
		lastQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns)
		if err := as.db.Get(&last, lastQuery); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastTime, err := parquet.ParseStoredTime(last.StartTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunID = last.ID
		status.LastRunTime = lastTime

		var oldest string
		oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quotedRuns)
		if err := as.db.Get(&oldest, oldestQuery); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if status.OldestRunTime, err = parquet.ParseStoredTime(oldest); err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}

		totalQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_records_analyzed), 0) FROM %s", quotedRuns)
		if err := as.db.Get(&status.TotalRecordsAnalyzed, totalQuery); err != nil {
			return status, fmt.Errorf("failed to get total records analyzed: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		if err := as.db.Get(&count, fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}
	var records []schema.AnalysisRunRecord
	query := fmt.Sprintf(`SELECT analysis_id, command, start_time, end_time, run_duration_ms, total_records_analyzed, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))
	if err := as.db.Select(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	return records, nil
}

// GetAllDistrictStats retrieves all stored district rows, ranked within each run.
func (as *AnalysisStoreImpl) GetAllDistrictStats() ([]schema.DistrictStatsRecord, error) {
	if as.disabled() {
		return nil, nil
	}
	var records []schema.DistrictStatsRecord
	query := fmt.Sprintf(`SELECT analysis_id, district, total, top_category, top_count, bucket, label
		FROM %s ORDER BY analysis_id, total DESC, district`, quoteTableName(districtStatsTable, as.backend))
	if err := as.db.Select(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query district stats: %w", err)
	}
	return records, nil
}

// GetAllImpactScores retrieves all stored impact scores, ranked within each run.
func (as *AnalysisStoreImpl) GetAllImpactScores() ([]schema.ImpactScoreRecord, error) {
	if as.disabled() {
		return nil, nil
	}
	var records []schema.ImpactScoreRecord
	query := fmt.Sprintf(`SELECT analysis_id, category, metric_type, frequency, normalized_frequency,
		geographic_spread, severity, impact_score
		FROM %s ORDER BY analysis_id, impact_score DESC, category`, quoteTableName(impactScoresTable, as.backend))
	if err := as.db.Select(&records, query); err != nil {
		return nil, fmt.Errorf("failed to query impact scores: %w", err)
	}
	return records, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
