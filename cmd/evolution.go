package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// evolutionCmd compares districts between two years.
var evolutionCmd = &cobra.Command{
	Use:   "evolution",
	Short: "Compare incident counts per district between two years.",
	Long: `Compute the percent change of every district between a base year and a comparison year.

The year filter is ignored since the comparison spans years. Without --base-year
and --comparison-year the first and last years of the data are compared. Without
a category, each district also shows the evolution of every category. Districts
without incidents in either year are left out. A district improves when its
count went down. --sort orders rows by PDQ (alphabetical), by absolute change or
by percent change, largest first.

Examples:
  # First year against last year
  pdqstats evolution -i actes-criminels.csv

  # 2019 against 2023 for one category
  pdqstats evolution -i actes-criminels.csv --base-year 2019 --comparison-year 2023 --category Méfait

  # Largest increases first
  pdqstats evolution -i actes-criminels.csv --sort absolute-change`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandEvolution, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteEvolution }),
}
