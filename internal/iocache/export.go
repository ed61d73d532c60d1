package iocache

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/internal/parquet"
)

// ExecuteAnalysisExport exports the global analysis store to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is disabled")
	}
	return ExportAnalysis(store, outputFile, os.Stdout)
}

// ExportAnalysis writes every tracked table of store to <outputFile>.<table>.parquet.
func ExportAnalysis(store contract.AnalysisStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	runRows, err := parquet.ConvertAnalysisRunRecords(runs)
	if err != nil {
		return fmt.Errorf("failed to convert analysis runs: %w", err)
	}
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(runRows), runsFile)

	stats, err := store.GetAllDistrictStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve district stats: %w", err)
	}
	statsRows := parquet.ConvertDistrictStatsRecords(stats)
	statsFile := outputFile + ".district_stats.parquet"
	if err := parquet.WriteDistrictStatsParquet(statsRows, statsFile); err != nil {
		return fmt.Errorf("failed to write district stats: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d district rows to: %s\n", len(statsRows), statsFile)

	scores, err := store.GetAllImpactScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve impact scores: %w", err)
	}
	scoreRows := parquet.ConvertImpactScoreRecords(scores)
	scoresFile := outputFile + ".impact_scores.parquet"
	if err := parquet.WriteImpactScoresParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write impact scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d impact scores to: %s\n", len(scoreRows), scoresFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
