package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// trendsCmd classifies category trends over time.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Classify the trend of every category over time.",
	Long: `Bucket incidents per category by year, quarter or month and fit a least squares line.

A category is stable when its change is under 5% or its slope under 0.5,
otherwise increasing or decreasing. Changes beyond 10% are reported as
significant. Local peaks and valleys are reported as inflections.

The report also breaks incidents down by year and category, and by year and
police shift. --display expresses the category breakdown as counts (absolute),
as the share of each year's total (percentage) or as the change against the
previous year (growth).

Examples:
  # Monthly trends
  pdqstats trends -i actes-criminels.csv

  # Yearly trends for one district
  pdqstats trends -i actes-criminels.csv --aggregation year --pdq 21

  # Year over year growth of every category
  pdqstats trends -i actes-criminels.csv --display growth`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandTrends, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteTrends }),
}
