package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mtlpdq/pdqstats/core/geo"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// PrintMergedBoundaries outputs a merged boundary collection.
// Text and JSON both produce GeoJSON; CSV drops the geometry.
func PrintMergedBoundaries(fc schema.GeoFeatureCollection, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFeatures(w, fc)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetUnsupported("merge")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGeoJSON(w, fc)
		}, "Wrote GeoJSON"); err != nil {
			return fmt.Errorf("error writing GeoJSON output: %w", err)
		}
	}
	return nil
}

// writeGeoJSON encodes the collection followed by a newline.
func writeGeoJSON(w io.Writer, fc schema.GeoFeatureCollection) error {
	data, err := geo.ToGeoJSON(fc)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}

// writeCSVResultsForFeatures writes one row per boundary with its attached totals.
func writeCSVResultsForFeatures(w io.Writer, fc schema.GeoFeatureCollection) error {
	header := []string{"pdq", "name", "total", "top_category", "top_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range fc.Features {
			total, top, topCount := 0, "", 0
			if f.CrimeStats != nil {
				total = f.CrimeStats.Total
				top, topCount = f.CrimeStats.TopCategory()
			}
			pdq := strconv.Itoa(f.PDQ)
			if f.Unassigned {
				pdq = ""
			}
			row := []string{
				pdq,
				f.Name,
				strconv.Itoa(total),
				top,
				strconv.Itoa(topCount),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
