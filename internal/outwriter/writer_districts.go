package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/mtlpdq/pdqstats/internal/parquet"
	"github.com/mtlpdq/pdqstats/schema"
)

var districtCSVHeader = []string{
	"rank",
	"pdq",
	"name",
	"total",
	"share",
	"top_category",
	"top_count",
	"bucket",
	"label",
	"color",
	"jour",
	"soir",
	"nuit",
}

// writeJSONResultsForDistricts writes the report with rank and color added to every row.
func writeJSONResultsForDistricts(w io.Writer, report schema.DistrictsReport) error {
	output := struct {
		Criteria  string                          `json:"criteria"`
		Records   int                             `json:"records"`
		Skipped   int                             `json:"skipped"`
		Scale     schema.ColorScale               `json:"scale"`
		Districts []schema.EnrichedDistrictResult `json:"districts"`
		Unmatched []int                           `json:"unmatched,omitempty"`
	}{
		Criteria:  report.Criteria,
		Records:   report.Records,
		Skipped:   report.Skipped,
		Scale:     report.Scale,
		Districts: schema.EnrichDistricts(report.Districts, report.Scale),
		Unmatched: report.Unmatched,
	}
	return writeJSON(w, output)
}

// writeCSVResultsForDistricts writes one row per ranked district.
func writeCSVResultsForDistricts(w io.Writer, report schema.DistrictsReport, fmtFloat func(float64) string, fmtInt func(int) string) error {
	return writeCSVWithHeader(w, districtCSVHeader, func(cw *csv.Writer) error {
		for _, r := range schema.EnrichDistricts(report.Districts, report.Scale) {
			row := []string{
				fmtInt(r.Rank),
				fmtInt(r.District),
				r.Name,
				fmtInt(r.Total),
				fmtFloat(r.Share),
				r.TopCategory,
				fmtInt(r.TopCount),
				fmtInt(r.Bucket),
				r.Label,
				r.Color,
			}
			for _, p := range schema.AllPeriods {
				row = append(row, fmtInt(r.Shifts[p]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetResultsForDistricts writes the ranked districts to a Parquet file.
func writeParquetResultsForDistricts(report schema.DistrictsReport, outputFile string) error {
	rows := parquet.ConvertDistrictResults(schema.EnrichDistricts(report.Districts, report.Scale))
	return parquet.WriteDistrictStatsParquet(rows, outputFile)
}

// writeCSVResultsForScale writes one row per bucket of the scale.
func writeCSVResultsForScale(w io.Writer, report schema.ScaleReport, fmtFloat func(float64) string) error {
	header := []string{"bucket", "label", "color", "range", "threshold"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range report.Legend {
			row := []string{
				strconv.Itoa(e.Bucket),
				e.Label,
				e.Color,
				e.Range,
				fmtFloat(report.Scale.Thresholds[e.Bucket]),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
