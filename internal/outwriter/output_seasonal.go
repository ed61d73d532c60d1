package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mtlpdq/pdqstats/core/algo"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// PrintSeasonalResults outputs the seasonal aggregate, dispatching based on the output format configured.
func PrintSeasonalResults(aggregate schema.SeasonalAggregate, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtInt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, aggregate)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForSeasonal(w, aggregate, fmtFloat, fmtInt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("seasonal")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printSeasonalTable(w, aggregate, cfg, fmtFloat, fmtInt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printSeasonalTable prints the season summary, the monthly counts and the notable variations.
func printSeasonalTable(w io.Writer, aggregate schema.SeasonalAggregate, cfg *contract.Config, fmtFloat func(float64) string, fmtInt func(int) string, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "Seasonal distribution of %d incidents\n", aggregate.Total)

	seasons := newTable(w, []string{"Season", "Total", "Share %", "Peak Month", "Monthly Avg"})
	var data [][]string
	for _, s := range schema.AllSeasons {
		t := aggregate.Trends[s]
		data = append(data, []string{
			schema.SeasonNames[s],
			fmtInt(t.Total),
			fmtFloat(t.PercentageOfTotal),
			fmt.Sprintf("%s (%d)", t.PeakMonth, t.PeakMonthCount),
			fmtFloat(t.AverageMonthly),
		})
	}
	if err := renderTable(seasons, data); err != nil {
		return err
	}

	months := newTable(w, []string{"Month", "Season", "Count"})
	data = nil
	for i, count := range aggregate.Monthly {
		data = append(data, []string{
			schema.MonthNames[i],
			schema.SeasonNames[algo.SeasonOf(i)],
			fmtInt(count),
		})
	}
	if err := renderTable(months, data); err != nil {
		return err
	}

	for _, v := range aggregate.Variations {
		_, _ = fmt.Fprintf(w, "Sharp variation in %s (%d): %s vs previous, %s vs next\n",
			v.Month, v.Count, contract.GetChangeLabel(v.PrevVariation, cfg.Precision), contract.GetChangeLabel(v.NextVariation, cfg.Precision))
	}
	for _, c := range aggregate.Seasonality {
		_, _ = fmt.Fprintf(w, "%s is concentrated in %s (%s%%)\n",
			schema.FormatCategoryName(c.Category), schema.SeasonNames[c.Season], fmtFloat(c.Percentage))
	}
	writeTiming(w, cfg, duration)
	return nil
}

// writeCSVResultsForSeasonal writes one row per month followed by one row per season.
func writeCSVResultsForSeasonal(w io.Writer, aggregate schema.SeasonalAggregate, fmtFloat func(float64) string, fmtInt func(int) string) error {
	header := []string{"kind", "key", "label", "count", "share"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, count := range aggregate.Monthly {
			row := []string{"month", strconv.Itoa(i + 1), schema.MonthNames[i], fmtInt(count), fmtFloat(percentOf(count, aggregate.Total))}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		for _, s := range schema.AllSeasons {
			row := []string{"season", string(s), schema.SeasonNames[s], fmtInt(aggregate.Seasonal[s]), fmtFloat(aggregate.Trends[s].PercentageOfTotal)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// percentOf returns part/total in percent, or 0 for an empty total.
func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
