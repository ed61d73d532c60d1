package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// maxListedCorrelations caps the correlations listed under the matrix table.
const maxListedCorrelations = 5

// PrintCorrelationResults outputs the deviation matrix, dispatching based on the output format configured.
func PrintCorrelationResults(report schema.CorrelationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCorrelation(w, report.Matrix, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("correlation")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printCorrelationTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printCorrelationTable prints the deviation of every category in every period,
// then the strongest correlations and the peak and low periods.
func printCorrelationTable(w io.Writer, report schema.CorrelationReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	m := report.Matrix
	_, _ = fmt.Fprintf(w, "Deviation from expected by %s (%d incidents)\n", m.PeriodType, m.GrandTotal)

	headers := []string{"Category"}
	for _, p := range m.Periods {
		headers = append(headers, schema.FormatPeriodLabel(p, m.PeriodType))
	}
	table := newTable(w, headers)

	var data [][]string
	for _, c := range m.Categories {
		row := []string{contract.TruncateText(schema.FormatCategoryName(c), 30)}
		for _, p := range m.Periods {
			row = append(row, formatSigned(m.Deviation[c][p], cfg.Precision))
		}
		data = append(data, row)
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	writeCorrelationList(w, "Over-represented", report.Positive, m.PeriodType, cfg.Precision, fmtFloat)
	writeCorrelationList(w, "Under-represented", report.Negative, m.PeriodType, cfg.Precision, fmtFloat)
	if report.Peak != nil {
		_, _ = fmt.Fprintf(w, "Peak period: %s with %d incidents (%s%%). Top categories: %s\n",
			report.Peak.Label, report.Peak.Total, fmtFloat(report.Peak.Percentage), formatCategoryList(report.Peak.TopCategories))
	}
	if report.Low != nil {
		_, _ = fmt.Fprintf(w, "Low period: %s with %d incidents (%s%%)\n", report.Low.Label, report.Low.Total, fmtFloat(report.Low.Percentage))
	}
	writeTiming(w, cfg, duration)
	return nil
}

// writeCorrelationList prints up to maxListedCorrelations entries under title.
func writeCorrelationList(w io.Writer, title string, list []schema.Correlation, periodType schema.PeriodType, precision int, fmtFloat func(float64) string) {
	if len(list) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "%s:\n", title)
	for _, c := range list[:min(maxListedCorrelations, len(list))] {
		_, _ = fmt.Fprintf(w, "  %s / %s: %s%% (%d observed, %s expected)\n",
			schema.FormatCategoryName(c.Category), schema.FormatPeriodLabel(c.Period, periodType),
			formatSigned(c.Deviation, precision), c.Observed, fmtFloat(c.Expected))
	}
}

// writeCSVResultsForCorrelation writes one row per category and period cell.
func writeCSVResultsForCorrelation(w io.Writer, m schema.DeviationMatrix, fmtFloat func(float64) string, fmtInt func(int) string) error {
	header := []string{"category", "period", "period_label", "observed", "expected", "deviation"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range m.Categories {
			for _, p := range m.Periods {
				row := []string{
					c,
					p,
					schema.FormatPeriodLabel(p, m.PeriodType),
					fmtInt(m.Observed[c][p]),
					fmtFloat(m.Expected[c][p]),
					fmtFloat(m.Deviation[c][p]),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
