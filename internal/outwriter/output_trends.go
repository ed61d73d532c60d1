package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// PrintTrendResults outputs per-category trends, dispatching based on the output format configured.
func PrintTrendResults(report schema.TrendReport, cfg *contract.Config, duration time.Duration) error {
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
			return writeCSVResultsForTrends(w, report, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("trends")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printTrendTable(w, report, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printTrendTable prints one row per category with its direction and inflection count.
func printTrendTable(w io.Writer, report schema.TrendReport, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	span := "no data"
	if n := len(report.TimeKeys); n > 0 {
		span = fmt.Sprintf("%s to %s", report.TimeKeys[0], report.TimeKeys[n-1])
	}
	_, _ = fmt.Fprintf(w, "Trends by %s (%s)\n", report.Aggregation, span)

	table := newTable(w, []string{"Category", "Total", "First", "Last", "Change", "Slope", "Trend", "Inflections"})
	var data [][]string
	for _, t := range report.Trends {
		data = append(data, []string{
			contract.TruncateText(schema.FormatCategoryName(t.Category), 30),
			fmtInt(t.Total),
			fmtFloat(t.Trend.FirstValue),
			fmtFloat(t.Trend.LastValue),
			contract.GetChangeLabel(t.Trend.PercentChange, cfg.Precision),
			fmtFloat(t.Trend.Slope),
			contract.GetTrendLabel(t.Trend.Trend),
			fmtInt(len(t.Inflections)),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Overall change: %s\n", contract.GetChangeLabel(report.TotalPercentChange, cfg.Precision))
	if report.DominantCategory != "" {
		_, _ = fmt.Fprintf(w, "Dominant category: %s\n", schema.FormatCategoryName(report.DominantCategory))
	}
	_, _ = fmt.Fprintf(w, "Significant increases: %s\n", formatCategoryList(report.SignificantIncreases))
	_, _ = fmt.Fprintf(w, "Significant decreases: %s\n", formatCategoryList(report.SignificantDecreases))

	if err := printCompositionTable(w, report.Composition, cfg, fmtFloat); err != nil {
		return err
	}
	if err := printShiftTable(w, report.Shifts, fmtInt); err != nil {
		return err
	}
	writeTiming(w, cfg, duration)
	return nil
}

// printCompositionTable prints one row per category with one column per year.
func printCompositionTable(w io.Writer, c schema.CategoryComposition, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(c.Years) == 0 {
		return nil
	}
	_, _ = fmt.Fprintf(w, "\nCategories by year (%s)\n", c.Mode)
	header := []string{"Category"}
	for _, y := range c.Years {
		header = append(header, strconv.Itoa(y))
	}
	table := newTable(w, header)
	var data [][]string
	for _, s := range c.Series {
		row := []string{contract.TruncateText(schema.FormatCategoryName(s.Category), 30)}
		for _, v := range s.Values {
			switch c.Mode {
			case schema.PercentageDisplay:
				row = append(row, fmtFloat(v.Value)+"%")
			case schema.GrowthDisplay:
				row = append(row, contract.GetChangeLabel(v.Value, cfg.Precision))
			default:
				row = append(row, strconv.FormatFloat(v.Value, 'f', 0, 64))
			}
		}
		data = append(data, row)
	}
	return renderTable(table, data)
}

// printShiftTable prints one row per year with the incident count of each shift.
func printShiftTable(w io.Writer, s schema.ShiftSeries, fmtInt func(int) string) error {
	if len(s.Years) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w, "\nShifts by year")
	header := []string{"Year"}
	for _, sc := range s.Series {
		header = append(header, string(sc.Shift))
	}
	table := newTable(w, header)
	data := make([][]string, len(s.Years))
	for i, y := range s.Years {
		row := []string{fmtInt(y)}
		for _, sc := range s.Series {
			row = append(row, fmtInt(sc.Values[i]))
		}
		data[i] = row
	}
	return renderTable(table, data)
}

// writeCSVResultsForTrends writes one row per category trend.
func writeCSVResultsForTrends(w io.Writer, report schema.TrendReport, fmtFloat func(float64) string, fmtInt func(int) string) error {
	header := []string{"category", "aggregation", "total", "slope", "intercept", "first_value", "last_value", "percent_change", "trend", "inflections"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, t := range report.Trends {
			row := []string{
				t.Category,
				string(report.Aggregation),
				fmtInt(t.Total),
				fmtFloat(t.Trend.Slope),
				fmtFloat(t.Trend.Intercept),
				fmtFloat(t.Trend.FirstValue),
				fmtFloat(t.Trend.LastValue),
				fmtFloat(t.Trend.PercentChange),
				string(t.Trend.Trend),
				fmtInt(len(t.Inflections)),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
