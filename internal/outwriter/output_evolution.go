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

// PrintEvolutionResults outputs per-district evolution, dispatching based on the output format configured.
func PrintEvolutionResults(report schema.EvolutionReport, cfg *contract.Config, duration time.Duration) error {
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
			return writeCSVResultsForEvolution(w, report, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("evolution")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printEvolutionTable(w, report, cfg, fmtInt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printEvolutionTable prints the base and comparison counts of every district with the change between them.
func printEvolutionTable(w io.Writer, report schema.EvolutionReport, cfg *contract.Config, fmtInt func(int) string, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "Evolution %d → %d (%s)\n", report.BaseYear, report.ComparisonYear, schema.FormatCategoryName(report.Category))

	table := newTable(w, []string{"District", fmtInt(report.BaseYear), fmtInt(report.ComparisonYear), "Δ", "Change"})
	var data [][]string
	withData, improving := 0, 0
	for _, r := range report.Results {
		change := "n/a"
		if r.HasData {
			change = contract.GetChangeLabel(r.EvolutionPercent, cfg.Precision)
			withData++
		}
		if r.IsImproving {
			improving++
		}
		data = append(data, []string{
			formatDistrict(r.DistrictID, ""),
			fmtInt(r.BaseCount),
			fmtInt(r.ComparisonCount),
			fmt.Sprintf("%+d", r.AbsoluteChange),
			change,
		})
	}
	if err := renderTable(table, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "%d of %d districts have data for both years. Color domain: %s%% to %s%%\n",
		withData, len(report.Results),
		strconv.FormatFloat(report.DomainMin, 'f', cfg.Precision, 64),
		strconv.FormatFloat(report.DomainMax, 'f', cfg.Precision, 64))
	_, _ = fmt.Fprintf(w, "%d improving, %d not improving. Sorted by %s\n",
		improving, len(report.Results)-improving, orAlphabetical(report.SortedBy))
	writeTiming(w, cfg, duration)
	return nil
}

// writeCSVResultsForEvolution writes one row per district, followed by its per-category rows.
func writeCSVResultsForEvolution(w io.Writer, report schema.EvolutionReport, fmtFloat func(float64) string, fmtInt func(int) string) error {
	header := []string{"pdq", "category", "base_year", "comparison_year", "base_count", "comparison_count", "absolute_change", "evolution_percent", "is_improving", "has_data"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range report.Results {
			row := []string{
				fmtInt(r.DistrictID),
				report.Category,
				fmtInt(report.BaseYear),
				fmtInt(report.ComparisonYear),
				fmtInt(r.BaseCount),
				fmtInt(r.ComparisonCount),
				fmtInt(r.AbsoluteChange),
				fmtFloat(r.EvolutionPercent),
				strconv.FormatBool(r.IsImproving),
				strconv.FormatBool(r.HasData),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
			for _, c := range r.ByCategory {
				row := []string{
					fmtInt(r.DistrictID),
					c.Category,
					fmtInt(report.BaseYear),
					fmtInt(report.ComparisonYear),
					fmtInt(c.BaseCount),
					fmtInt(c.ComparisonCount),
					fmtInt(c.AbsoluteChange),
					fmtFloat(c.EvolutionPercent),
					strconv.FormatBool(c.AbsoluteChange < 0),
					strconv.FormatBool(c.BaseCount > 0 || c.ComparisonCount > 0),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func orAlphabetical(by schema.EvolutionSort) schema.EvolutionSort {
	if by == "" {
		return schema.AlphabeticalSort
	}
	return by
}
