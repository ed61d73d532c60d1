package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// seasonalCmd distributes incidents over months and seasons.
var seasonalCmd = &cobra.Command{
	Use:   "seasonal",
	Short: "Show the monthly and seasonal distribution of incidents.",
	Long: `Distribute incidents over months, quarters and seasons.

Month over month changes beyond 15% are flagged, and categories concentrating
more than 35% of their incidents in one season are reported as seasonal.

Examples:
  # Whole dataset
  pdqstats seasonal -i actes-criminels.csv

  # One category as CSV
  pdqstats seasonal -i actes-criminels.csv --category "Vol dans / sur véhicule à moteur" --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandSeasonal, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteSeasonal }),
}
