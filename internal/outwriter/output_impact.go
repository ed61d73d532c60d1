package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// impactFixedWidth is the space taken by every impact column except the category.
const impactFixedWidth = 90

// PrintImpactResults outputs impact scores, dispatching based on the output format configured.
func PrintImpactResults(report schema.ImpactReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForImpact(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForImpact(w, report, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetResultsForImpact(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printImpactTable(w, report, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printImpactTable prints the scored categories followed by the insight lists.
func printImpactTable(w io.Writer, report schema.ImpactReport, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	year := report.Year
	if year == "" {
		year = schema.AllFilter
	}
	_, _ = fmt.Fprintf(w, "Impact scores (%s metric, year %s)\n", report.MetricType, year)

	table := newTable(w, []string{"Rank", "Category", "Frequency", "Spread", "Severity", "Score", "Quadrant"})
	nameWidth := GetMaxTableTextWidth(cfg, impactFixedWidth)

	var data [][]string
	for _, s := range schema.EnrichImpact(report.Scores, report.Insights.Quadrants) {
		data = append(data, []string{
			fmtInt(s.Rank),
			contract.TruncateText(schema.FormatCategoryName(s.Category), nameWidth),
			fmtInt(s.Frequency),
			fmtFloat(s.GeographicSpread),
			fmtFloat(s.Severity),
			fmtFloat(s.ImpactScore),
			s.Quadrant,
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	insights := report.Insights
	_, _ = fmt.Fprintf(w, "Priority categories: %s\n", formatCategoryList(insights.Priority))
	_, _ = fmt.Fprintf(w, "Widespread categories: %s\n", formatCategoryList(insights.Widespread))
	_, _ = fmt.Fprintf(w, "Most frequent: %s\n", formatCategoryList(insights.TopByFrequency))
	_, _ = fmt.Fprintf(w, "Most severe: %s\n", formatCategoryList(insights.TopBySeverity))
	writeTiming(w, cfg, duration)
	return nil
}
