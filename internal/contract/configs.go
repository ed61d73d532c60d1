package contract

import (
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/mtlpdq/pdqstats/core/filter"
	"github.com/mtlpdq/pdqstats/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultTimezone    = "Local"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ImpactWeightsRaw holds the custom impact factor weights from the YAML config file.
// Use float64 pointers for optional fields.
type ImpactWeightsRaw struct {
	Frequency *float64 `mapstructure:"frequency"`
	Severity  *float64 `mapstructure:"severity"`
	Spread    *float64 `mapstructure:"spread"`
}

// Config holds the runtime configuration for a run.
// This struct is the "final, validated" config.
type Config struct {
	IncidentsPath  string
	BoundariesPath string
	Location       *time.Location // dates without an offset are read in this zone

	Criteria    filter.Criteria
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	BaseYear       int // 0 = first year of the data
	ComparisonYear int // 0 = last year of the data
	PeriodType     schema.PeriodType
	MetricType     schema.MetricType
	Aggregation    schema.AggregationType
	EvolutionSort  schema.EvolutionSort
	Display        schema.DisplayMode

	// Severity is the ordered keyword table used by the impact score. Empty means the built-in table.
	Severity []schema.SeverityRule

	// ImpactWeights is the final weights map of the weighted impact metric, defaults + custom overrides
	ImpactWeights map[schema.ImpactFactor]float64

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Incidents         string `mapstructure:"incidents"`
	Boundaries        string `mapstructure:"boundaries"`
	Timezone          string `mapstructure:"timezone"`
	Category          string `mapstructure:"category"`
	Year              string `mapstructure:"year"`
	Quarter           string `mapstructure:"quarter"`
	PDQ               string `mapstructure:"pdq"`
	Start             string `mapstructure:"start"`
	End               string `mapstructure:"end"`
	CategoryLimit     string `mapstructure:"category-limit"`
	Limit             int    `mapstructure:"limit"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	// --- Fields from evolutionCmd.Flags() ---
	BaseYear       int    `mapstructure:"base-year"`
	ComparisonYear int    `mapstructure:"comparison-year"`
	Sort           string `mapstructure:"sort"`

	// --- Fields from correlationCmd, impactCmd and trendsCmd flags ---
	PeriodType  string `mapstructure:"period-type"`
	Metric      string `mapstructure:"metric"`
	Aggregation string `mapstructure:"aggregation"`
	Display     string `mapstructure:"display"`

	// --- Severity table and impact weights from config file ---
	Severity []schema.SeverityRule `mapstructure:"severity"`
	Weights  ImpactWeightsRaw      `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Severity != nil {
		clone.Severity = make([]schema.SeverityRule, len(c.Severity))
		for i, rule := range c.Severity {
			clone.Severity[i] = schema.SeverityRule{
				All:    append([]string(nil), rule.All...),
				Weight: rule.Weight,
			}
		}
	}
	if c.ImpactWeights != nil {
		clone.ImpactWeights = make(map[schema.ImpactFactor]float64, len(c.ImpactWeights))
		maps.Copy(clone.ImpactWeights, c.ImpactWeights)
	}
	if c.Criteria.Year != nil {
		year := *c.Criteria.Year
		clone.Criteria.Year = &year
	}
	if c.Criteria.PDQ != nil {
		pdq := *c.Criteria.PDQ
		clone.Criteria.PDQ = &pdq
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processDatasetPaths(cfg, input); err != nil {
		return err
	}
	if err := processCriteria(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisModes(cfg, input); err != nil {
		return err
	}
	if err := processSeverityRules(cfg, input); err != nil {
		return err
	}
	return processImpactWeights(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("invalid cache-db-connect: %w", err)
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("invalid analysis-db-connect: %w", err)
	}

	// Cache and analysis tables must not share one SQLite file since ClearCache removes it.
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processDatasetPaths resolves the dataset files and the zone used to read their dates.
func processDatasetPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.IncidentsPath = strings.TrimSpace(input.Incidents)
	cfg.BoundariesPath = strings.TrimSpace(input.Boundaries)
	for _, p := range []string{cfg.IncidentsPath, cfg.BoundariesPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("cannot access dataset file '%s': %w", p, err)
		}
	}

	tz := strings.TrimSpace(input.Timezone)
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
	}
	cfg.Location = loc
	return nil
}

// processCriteria parses the record filter flags.
func processCriteria(cfg *Config, input *ConfigRawInput) error {
	criteria, err := filter.ParseCriteria(filter.RawCriteria{
		Category:      input.Category,
		Year:          input.Year,
		Quarter:       input.Quarter,
		PDQ:           input.PDQ,
		Start:         input.Start,
		End:           input.End,
		CategoryLimit: input.CategoryLimit,
	}, cfg.Location)
	if err != nil {
		return err
	}
	cfg.Criteria = criteria
	return nil
}

// processAnalysisModes validates the per-command analysis options.
func processAnalysisModes(cfg *Config, input *ConfigRawInput) error {
	for _, y := range []int{input.BaseYear, input.ComparisonYear} {
		if y != 0 && (y < 1900 || y > 2100) {
			return fmt.Errorf("invalid year %d. must be between 1900 and 2100", y)
		}
	}
	cfg.BaseYear = input.BaseYear
	cfg.ComparisonYear = input.ComparisonYear

	cfg.PeriodType = schema.PeriodType(strings.ToLower(input.PeriodType))
	if cfg.PeriodType == "" {
		cfg.PeriodType = schema.DayPeriodType
	}
	if _, ok := schema.ValidPeriodTypes[cfg.PeriodType]; !ok {
		return fmt.Errorf("invalid period type '%s'. must be day, month, weekday", input.PeriodType)
	}

	cfg.MetricType = schema.MetricType(strings.ToLower(input.Metric))
	if cfg.MetricType == "" {
		cfg.MetricType = schema.WeightedMetric
	}
	if _, ok := schema.ValidMetricTypes[cfg.MetricType]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be weighted, frequency, distribution", input.Metric)
	}

	cfg.Aggregation = schema.AggregationType(strings.ToLower(input.Aggregation))
	if cfg.Aggregation == "" {
		cfg.Aggregation = schema.MonthAggregation
	}
	if _, ok := schema.ValidAggregationTypes[cfg.Aggregation]; !ok {
		return fmt.Errorf("invalid aggregation '%s'. must be year, quarter, month", input.Aggregation)
	}

	cfg.EvolutionSort = schema.EvolutionSort(strings.ToLower(input.Sort))
	if cfg.EvolutionSort == "" {
		cfg.EvolutionSort = schema.AlphabeticalSort
	}
	if _, ok := schema.ValidEvolutionSorts[cfg.EvolutionSort]; !ok {
		return fmt.Errorf("invalid sort '%s'. must be alphabetical, absolute-change, percent-change", input.Sort)
	}

	cfg.Display = schema.DisplayMode(strings.ToLower(input.Display))
	if cfg.Display == "" {
		cfg.Display = schema.AbsoluteDisplay
	}
	if _, ok := schema.ValidDisplayModes[cfg.Display]; !ok {
		return fmt.Errorf("invalid display '%s'. must be absolute, percentage, growth", input.Display)
	}
	return nil
}

// processSeverityRules validates the severity table from the config file.
func processSeverityRules(cfg *Config, input *ConfigRawInput) error {
	cfg.Severity = nil
	for i, rule := range input.Severity {
		if len(rule.All) == 0 {
			return fmt.Errorf("severity rule %d must list at least one keyword", i+1)
		}
		if rule.Weight < 0 || rule.Weight > 1 {
			return fmt.Errorf("severity rule %d weight must be between 0.0 and 1.0 (received %.2f)", i+1, rule.Weight)
		}
		keywords := make([]string, 0, len(rule.All))
		for _, kw := range rule.All {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		cfg.Severity = append(cfg.Severity, schema.SeverityRule{All: keywords, Weight: rule.Weight})
	}
	return nil
}

// ProcessImpactWeightsRawInput converts ImpactWeightsRaw into a weights map with only the provided factors.
// If validateSum is true, it validates that the merged weights sum to 1.0.
func ProcessImpactWeightsRawInput(weights ImpactWeightsRaw, validateSum bool) (map[schema.ImpactFactor]float64, error) {
	custom := make(map[schema.ImpactFactor]float64)
	if weights.Frequency != nil {
		custom[schema.FactorFrequency] = *weights.Frequency
	}
	if weights.Severity != nil {
		custom[schema.FactorSeverity] = *weights.Severity
	}
	if weights.Spread != nil {
		custom[schema.FactorSpread] = *weights.Spread
	}

	merged := schema.GetDefaultImpactWeights()
	maps.Copy(merged, custom)

	sum := 0.0
	for factor, w := range merged {
		if w < 0 {
			return nil, fmt.Errorf("impact weight %s cannot be negative (received %.3f)", factor, w)
		}
		sum += w
	}
	if validateSum && len(custom) > 0 && (sum < 0.999 || sum > 1.001) {
		return nil, fmt.Errorf("impact weights must sum to 1.0, got %.3f", sum)
	}
	return merged, nil
}

// processImpactWeights computes the final impact weights, defaults + custom overrides.
func processImpactWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessImpactWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.ImpactWeights = weights
	return nil
}
