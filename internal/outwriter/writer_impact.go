package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/mtlpdq/pdqstats/internal/parquet"
	"github.com/mtlpdq/pdqstats/schema"
)

var impactCSVHeader = []string{
	"rank",
	"category",
	"frequency",
	"normalized_frequency",
	"geographic_spread",
	"severity",
	"impact_score",
	"metric_type",
	"quadrant",
}

// writeJSONResultsForImpact writes the report with rank and quadrant added to every score.
func writeJSONResultsForImpact(w io.Writer, report schema.ImpactReport) error {
	output := struct {
		MetricType schema.MetricType            `json:"metricType"`
		Year       string                       `json:"year,omitempty"`
		Scores     []schema.EnrichedImpactScore `json:"scores"`
		Insights   schema.ImpactInsights        `json:"insights"`
	}{
		MetricType: report.MetricType,
		Year:       report.Year,
		Scores:     schema.EnrichImpact(report.Scores, report.Insights.Quadrants),
		Insights:   report.Insights,
	}
	return writeJSON(w, output)
}

// writeCSVResultsForImpact writes one row per scored category.
func writeCSVResultsForImpact(w io.Writer, report schema.ImpactReport, fmtFloat func(float64) string, fmtInt func(int) string) error {
	return writeCSVWithHeader(w, impactCSVHeader, func(cw *csv.Writer) error {
		for _, s := range schema.EnrichImpact(report.Scores, report.Insights.Quadrants) {
			row := []string{
				fmtInt(s.Rank),
				s.Category,
				fmtInt(s.Frequency),
				fmtFloat(s.NormalizedFrequency),
				fmtFloat(s.GeographicSpread),
				fmtFloat(s.Severity),
				fmtFloat(s.ImpactScore),
				string(report.MetricType),
				s.Quadrant,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetResultsForImpact writes the scores to a Parquet file.
func writeParquetResultsForImpact(report schema.ImpactReport, outputFile string) error {
	rows := parquet.ConvertImpactScores(schema.EnrichImpact(report.Scores, report.Insights.Quadrants), report.MetricType)
	return parquet.WriteImpactScoresParquet(rows, outputFile)
}
