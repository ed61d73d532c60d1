// Package cmd defines the command-line interface for pdqstats.
package cmd

import (
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(districtsCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(evolutionCmd)
	rootCmd.AddCommand(correlationCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(seasonalCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("incidents", "i", "", "Path to the incident CSV (actes-criminels.csv)")
	rootCmd.PersistentFlags().StringP("boundaries", "b", "", "Path to the PDQ boundary GeoJSON")
	rootCmd.PersistentFlags().String("timezone", contract.DefaultTimezone, "Time zone used to read dates and derive their year, month and weekday (e.g. America/Montreal)")
	rootCmd.PersistentFlags().StringP("category", "c", "", "Keep a single crime category, or 'all'")
	rootCmd.PersistentFlags().StringP("year", "y", "", "Keep a single year, or 'all'")
	rootCmd.PersistentFlags().StringP("quarter", "q", "", "Keep a single police shift: jour or soir or nuit or all")
	rootCmd.PersistentFlags().String("pdq", "", "Keep a single PDQ number, or 'all'")
	rootCmd.PersistentFlags().String("start", "", "Inclusive start date (YYYY, YYYY-MM, YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().String("end", "", "Inclusive end date (YYYY, YYYY-MM, YYYY-MM-DD or RFC3339)")
	rootCmd.PersistentFlags().String("category-limit", "", "Keep only the N most frequent categories, or 'all'")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this rotating file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of evolutionCmd to Viper
	evolutionCmd.Flags().Int("base-year", 0, "Reference year (0 = first year in the data)")
	evolutionCmd.Flags().Int("comparison-year", 0, "Year compared against the base (0 = last year in the data)")
	evolutionCmd.Flags().String("sort", string(schema.AlphabeticalSort), "Row order: alphabetical or absolute-change or percent-change")
	if err := viper.BindPFlags(evolutionCmd.Flags()); err != nil {
		contract.LogFatal("Error binding evolution flags", err)
	}

	// Bind all flags of correlationCmd to Viper
	correlationCmd.Flags().String("period-type", string(schema.DayPeriodType), "Period dimension: day or month or weekday")
	if err := viper.BindPFlags(correlationCmd.Flags()); err != nil {
		contract.LogFatal("Error binding correlation flags", err)
	}

	// Bind all flags of impactCmd to Viper
	impactCmd.Flags().String("metric", string(schema.WeightedMetric), "Scoring metric: weighted or frequency or distribution")
	if err := viper.BindPFlags(impactCmd.Flags()); err != nil {
		contract.LogFatal("Error binding impact flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().String("aggregation", string(schema.MonthAggregation), "Time bucket size: year or quarter or month")
	trendsCmd.Flags().String("display", string(schema.AbsoluteDisplay), "Category composition values: absolute or percentage or growth")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
