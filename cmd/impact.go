package cmd

import (
	"github.com/mtlpdq/pdqstats/core"
	"github.com/spf13/cobra"
)

// impactCmd ranks crime categories by impact.
var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Score crime categories by frequency, severity and geographic spread.",
	Long: `Rank crime categories by public safety impact.

The weighted metric blends normalized frequency, keyword severity and the share of
districts affected. Weights and the severity table can be set in .pdqstats.yaml:

  weights:
    frequency: 0.4
    severity: 0.4
    spread: 0.2
  severity:
    - all: [vol, qualifié]
      weight: 0.8

Examples:
  # Weighted impact for 2022
  pdqstats impact -i actes-criminels.csv --year 2022

  # Rank by how widespread each category is
  pdqstats impact -i actes-criminels.csv --metric distribution

  # Export scores to Parquet
  pdqstats impact -i actes-criminels.csv --output parquet --output-file impact.parquet`,
	PreRunE: sharedSetupWrapper,
	Run:     runCommand(core.CommandImpact, func(r *core.Runner) core.ExecutorFunc { return r.ExecuteImpact }),
}
