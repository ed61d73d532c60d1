package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// correlationCmd finds categories over- or under-represented in a period.
var correlationCmd = &cobra.Command{
	Use:   "correlation",
	Short: "Find categories over- or under-represented per shift, month or weekday.",
	Long: `Compare the observed category by period counts with the counts expected if
category and period were independent.

Deviations beyond 20% are reported as strong correlations. The busiest and
quietest periods are reported with their top categories. --category-limit keeps
the most frequent categories as matrix rows; expectations still cover every record.

Examples:
  # Police shifts (jour, soir, nuit)
  pdqstats correlation -i actes-criminels.csv

  # Weekdays for one district
  pdqstats correlation -i actes-criminels.csv --period-type weekday --pdq 38`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandCorrelation, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteCorrelation }),
}
