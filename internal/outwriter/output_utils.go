package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// newTable creates a right-aligned table on w with the given headers.
func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

// renderTable loads data into table and renders it.
func renderTable(table *tablewriter.Table, data [][]string) error {
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatDistrict returns the display name of a PDQ.
func formatDistrict(id int, name string) string {
	if name == "" {
		return fmt.Sprintf("PDQ %d", id)
	}
	return fmt.Sprintf("PDQ %d - %s", id, name)
}

// formatCategoryList joins display names of categories, or returns "-" for none.
func formatCategoryList(categories []string) string {
	if len(categories) == 0 {
		return "-"
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = schema.FormatCategoryName(c)
	}
	return strings.Join(names, ", ")
}

// formatCriteria returns the filter summary shown above tables.
func formatCriteria(criteria string) string {
	if criteria == "" {
		return "no filters"
	}
	return criteria
}

// writeTiming prints the closing line of every table.
func writeTiming(w io.Writer, cfg *contract.Config, duration time.Duration) {
	_, _ = fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration.Round(time.Millisecond), cfg.CacheBackend)
}

// errParquetUnsupported is returned by reports without a Parquet layout.
func errParquetUnsupported(report string) error {
	return fmt.Errorf("parquet output is not supported for %s, use districts or impact", report)
}

// formatSigned formats v with an explicit sign.
func formatSigned(v float64, precision int) string {
	return fmt.Sprintf("%+.*f", precision, v)
}
