package schema

// Custom string types for type safety.
type (
	// Period represents the police shift (QUART) an incident was recorded in.
	Period string

	// PeriodType selects how incidents are bucketed for correlation analysis.
	PeriodType string

	// MetricType selects the impact score formula.
	MetricType string

	// Season represents a meteorological season.
	Season string

	// AggregationType represents the time granularity of a time series.
	AggregationType string

	// EvolutionSort orders the district rows of an evolution report.
	EvolutionSort string

	// DisplayMode selects how the year by category composition is expressed.
	DisplayMode string

	// TrendDirection is the classification produced by the trend classifier.
	TrendDirection string

	// ChangeType marks an inflection point in a time series.
	ChangeType string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// AllFilter disables filtering on a dimension.
const AllFilter = "all"

// All shifts supported.
const (
	DayPeriod     Period = "jour"
	EveningPeriod Period = "soir"
	NightPeriod   Period = "nuit"
)

// All correlation period types supported.
const (
	DayPeriodType     PeriodType = "day" // default
	MonthPeriodType   PeriodType = "month"
	WeekdayPeriodType PeriodType = "weekday"
)

// All impact metric types supported.
const (
	WeightedMetric     MetricType = "weighted" // default
	FrequencyMetric    MetricType = "frequency"
	DistributionMetric MetricType = "distribution"
)

// All seasons, in calendar order starting with winter.
const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

// All time series granularities supported.
const (
	YearAggregation    AggregationType = "year"
	QuarterAggregation AggregationType = "quarter"
	MonthAggregation   AggregationType = "month" // default
)

// All evolution orderings supported.
const (
	AlphabeticalSort   EvolutionSort = "alphabetical" // default, by PDQ number
	AbsoluteChangeSort EvolutionSort = "absolute-change"
	PercentChangeSort  EvolutionSort = "percent-change"
)

// All composition display modes supported.
const (
	AbsoluteDisplay   DisplayMode = "absolute" // default
	PercentageDisplay DisplayMode = "percentage"
	GrowthDisplay     DisplayMode = "growth"
)

// All trend directions.
const (
	StableTrend     TrendDirection = "stable"
	IncreasingTrend TrendDirection = "increasing"
	DecreasingTrend TrendDirection = "decreasing"
)

// All inflection kinds.
const (
	PeakChange   ChangeType = "peak"
	ValleyChange ChangeType = "valley"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllPeriods lists the shifts in display order.
var AllPeriods = []Period{DayPeriod, EveningPeriod, NightPeriod}

// AllSeasons lists the seasons in display order.
var AllSeasons = []Season{Winter, Spring, Summer, Autumn}

// ValidPeriods lists all valid shifts.
var ValidPeriods = map[Period]struct{}{
	DayPeriod:     {},
	EveningPeriod: {},
	NightPeriod:   {},
}

// ValidPeriodTypes lists all valid correlation period types.
var ValidPeriodTypes = map[PeriodType]struct{}{
	DayPeriodType:     {},
	MonthPeriodType:   {},
	WeekdayPeriodType: {},
}

// ValidMetricTypes lists all valid impact metric types.
var ValidMetricTypes = map[MetricType]struct{}{
	WeightedMetric:     {},
	FrequencyMetric:    {},
	DistributionMetric: {},
}

// ValidAggregationTypes lists all valid time series granularities.
var ValidAggregationTypes = map[AggregationType]struct{}{
	YearAggregation:    {},
	QuarterAggregation: {},
	MonthAggregation:   {},
}

// ValidEvolutionSorts lists all valid evolution orderings.
var ValidEvolutionSorts = map[EvolutionSort]struct{}{
	AlphabeticalSort:   {},
	AbsoluteChangeSort: {},
	PercentChangeSort:  {},
}

// ValidDisplayModes lists all valid composition display modes.
var ValidDisplayModes = map[DisplayMode]struct{}{
	AbsoluteDisplay:   {},
	PercentageDisplay: {},
	GrowthDisplay:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ImpactFactor names one input of the weighted impact score.
type ImpactFactor string

// Impact score factors.
const (
	FactorFrequency ImpactFactor = "frequency"
	FactorSeverity  ImpactFactor = "severity"
	FactorSpread    ImpactFactor = "spread"
)

// GetDefaultImpactWeights returns the weights of the weighted impact score.
func GetDefaultImpactWeights() map[ImpactFactor]float64 {
	return map[ImpactFactor]float64{
		FactorFrequency: 0.4,
		FactorSeverity:  0.4,
		FactorSpread:    0.2,
	}
}
