package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// heatmapCmd lists the located incidents as weighted heat map points.
var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "List the coordinates of located incidents as heat map points.",
	Long: `Extract the LATITUDE and LONGITUDE of every filtered incident as a point of weight 1.

Incidents without coordinates, or with zero, non numeric or out of range values,
are left out. The text output shows the bounding box and the first --limit
points; csv and json carry every point.

Examples:
  # Night incidents of 2021 as CSV
  pdqstats heatmap -i actes-criminels.csv --year 2021 --quarter nuit --output csv

  # One district as JSON
  pdqstats heatmap -i actes-criminels.csv --pdq 38 --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandHeatmap, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteHeatmap }),
}
