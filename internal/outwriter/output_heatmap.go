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

// coordinatePrecision keeps about a metre of resolution.
const coordinatePrecision = 5

// PrintHeatmapResults outputs the located incidents, dispatching based on the output format configured.
func PrintHeatmapResults(report schema.HeatmapReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForHeatmap(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("heatmap")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printHeatmapTable(w, report, cfg, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printHeatmapTable prints the bounding box and the first points up to the result limit.
func printHeatmapTable(w io.Writer, report schema.HeatmapReport, cfg *contract.Config, duration time.Duration) error {
	_, _ = fmt.Fprintf(w, "Heat map (%s)\n", formatCriteria(report.Criteria))
	_, _ = fmt.Fprintf(w, "%d of %d incidents have coordinates\n", len(report.Points), report.Records)
	if b := report.Bounds; b != nil {
		_, _ = fmt.Fprintf(w, "Bounds: %s,%s to %s,%s\n",
			formatCoordinate(b.MinLatitude), formatCoordinate(b.MinLongitude),
			formatCoordinate(b.MaxLatitude), formatCoordinate(b.MaxLongitude))
	}

	points := report.Points
	if cfg.ResultLimit > 0 && len(points) > cfg.ResultLimit {
		points = points[:cfg.ResultLimit]
	}
	if len(points) > 0 {
		table := newTable(w, []string{"Latitude", "Longitude", "Weight"})
		data := make([][]string, len(points))
		for i, p := range points {
			data[i] = []string{formatCoordinate(p.Latitude), formatCoordinate(p.Longitude), strconv.FormatFloat(p.Weight, 'f', -1, 64)}
		}
		if err := renderTable(table, data); err != nil {
			return err
		}
		if len(points) < len(report.Points) {
			_, _ = fmt.Fprintf(w, "Showing %d of %d points. Use --output csv or json for all of them\n", len(points), len(report.Points))
		}
	}
	writeTiming(w, cfg, duration)
	return nil
}

// writeCSVResultsForHeatmap writes one row per located incident.
func writeCSVResultsForHeatmap(w io.Writer, report schema.HeatmapReport) error {
	header := []string{"latitude", "longitude", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, p := range report.Points {
			row := []string{formatCoordinate(p.Latitude), formatCoordinate(p.Longitude), strconv.FormatFloat(p.Weight, 'f', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', coordinatePrecision, 64)
}
