package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// districtFixedWidth is the space taken by every districts column except the name.
const districtFixedWidth = 90

// PrintDistrictResults outputs the ranked districts, dispatching based on the output format configured.
func PrintDistrictResults(report schema.DistrictsReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForDistricts(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDistricts(w, report, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetResultsForDistricts(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printDistrictTable(w, report, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printDistrictTable prints the ranked districts with their severity labels.
func printDistrictTable(w io.Writer, report schema.DistrictsReport, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "Districts (%s)\n", formatCriteria(report.Criteria))

	table := newTable(w, []string{"Rank", "District", "Total", "Share %", "Top Category", "Jour/Soir/Nuit", "Label"})
	nameWidth := GetMaxTableTextWidth(cfg, districtFixedWidth)

	var data [][]string
	for i, r := range report.Districts {
		data = append(data, []string{
			fmtInt(i + 1),
			contract.TruncateText(formatDistrict(r.District, r.Name), nameWidth),
			fmtInt(r.Total),
			fmtFloat(r.Share),
			contract.TruncateText(schema.FormatCategoryName(r.TopCategory), 30),
			formatShifts(r.Shifts, fmtInt),
			contract.GetColorLabel(r.Bucket, r.Label),
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Showing %d districts (%d records aggregated, %d skipped)\n", len(report.Districts), report.Records, report.Skipped)
	if len(report.Unmatched) > 0 {
		_, _ = fmt.Fprintf(w, "Districts without a boundary: %v\n", report.Unmatched)
	}
	writeTiming(w, cfg, duration)
	return nil
}

// PrintScaleResults outputs the color scale and its legend.
func PrintScaleResults(report schema.ScaleReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		fmtFloat, _ := createFormatters(cfg.Precision)
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForScale(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("scale")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printScaleTable(w, report)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printScaleTable prints one legend row per bucket.
func printScaleTable(w io.Writer, report schema.ScaleReport) error {
	_, _ = fmt.Fprintf(w, "Color scale over %d districts (%s)\n", report.Districts, formatCriteria(report.Criteria))

	table := newTable(w, []string{"Bucket", "Label", "Range", "Color"})
	var data [][]string
	for _, e := range report.Legend {
		data = append(data, []string{
			fmt.Sprint(e.Bucket),
			contract.GetColorLabel(e.Bucket, e.Label),
			e.Range,
			e.Color,
		})
	}
	return renderTable(table, data)
}

// formatShifts renders per-shift counts as "jour/soir/nuit".
func formatShifts(shifts map[schema.Period]int, fmtInt func(int) string) string {
	if len(shifts) == 0 {
		return "-"
	}
	parts := make([]string, len(schema.AllPeriods))
	for i, p := range schema.AllPeriods {
		parts[i] = fmtInt(shifts[p])
	}
	return strings.Join(parts, "/")
}
