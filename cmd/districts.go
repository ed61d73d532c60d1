package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// districtsCmd ranks police districts by incident count.
var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "Rank police districts (PDQ) by incident count.",
	Long: `Aggregate incidents per police district and rank districts from busiest to quietest.

Each row shows the district total, its share of all incidents, its most frequent
category and its severity label in the 5-bucket quantile color scale.
With --boundaries, districts are named and districts missing from the boundary
file are listed.

Examples:
  # Busiest districts over the whole dataset
  pdqstats districts --incidents actes-criminels.csv

  # Top 10 districts for one category in 2022
  pdqstats districts -i actes-criminels.csv --category "Vol de véhicule à moteur" --year 2022 --limit 10

  # Named districts exported to CSV
  pdqstats districts -i actes-criminels.csv -b limitespdq.geojson --output csv --output-file districts.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandDistricts, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteDistricts }),
}

// scaleCmd prints the color scale of the filtered districts.
var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show the 5-bucket color scale of district incident counts.",
	Long: `Compute the quantile color scale used to shade districts on a map.

Thresholds are the 0th, 20th, 40th, 60th and 80th percentiles of the district
totals. A count moves up one bucket for every interior threshold it strictly
exceeds, so districts without incidents are always in the lowest bucket.

Examples:
  # Legend for all incidents
  pdqstats scale -i actes-criminels.csv

  # Legend for night shift incidents as JSON
  pdqstats scale -i actes-criminels.csv --quarter nuit --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandScale, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteScale }),
}

// mergeCmd joins district statistics onto the boundary GeoJSON.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Attach district statistics to the PDQ boundary GeoJSON.",
	Long: `Join the per-district statistics onto every boundary feature and print GeoJSON.

Features of districts without incidents receive zero statistics. The boundary
file is never modified. Requires --boundaries.

Examples:
  # Map-ready GeoJSON for 2021
  pdqstats merge -i actes-criminels.csv -b limitespdq.geojson --year 2021 --output-file pdq-2021.geojson

  # Flat per-district totals
  pdqstats merge -i actes-criminels.csv -b limitespdq.geojson --output csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandMerge, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteMerge }),
}
