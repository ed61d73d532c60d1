package schema

// CategoryEvolution is the evolution of one category inside a district.
type CategoryEvolution struct {
	Category         string  `json:"category"`
	BaseCount        int     `json:"baseCount"`
	ComparisonCount  int     `json:"comparisonCount"`
	AbsoluteChange   int     `json:"absoluteChange"`
	EvolutionPercent float64 `json:"evolutionPercent"`
}

// EvolutionResult is the evolution of one district between two reference years.
// A district improves when its count went down.
type EvolutionResult struct {
	DistrictID       int                 `json:"districtId"`
	EvolutionPercent float64             `json:"evolutionPercent"`
	BaseCount        int                 `json:"baseCount"`
	ComparisonCount  int                 `json:"comparisonCount"`
	AbsoluteChange   int                 `json:"absoluteChange"`
	IsImproving      bool                `json:"isImproving"`
	HasData          bool                `json:"hasData"`
	ByCategory       []CategoryEvolution `json:"byCategory,omitempty"`
}

// EvolutionReport holds every district evolution and the symmetric color domain.
type EvolutionReport struct {
	BaseYear       int               `json:"baseYear"`
	ComparisonYear int               `json:"comparisonYear"`
	Category       string            `json:"category"`
	DomainMin      float64           `json:"domainMin"`
	DomainMax      float64           `json:"domainMax"`
	SortedBy       EvolutionSort     `json:"sortedBy"`
	Results        []EvolutionResult `json:"results"`
}

// DeviationMatrix is the category by period observed/expected/deviation analysis.
type DeviationMatrix struct {
	PeriodType     PeriodType                    `json:"periodType"`
	Categories     []string                      `json:"categories"`
	Periods        []string                      `json:"periods"`
	Observed       map[string]map[string]int     `json:"observed"`
	Expected       map[string]map[string]float64 `json:"expected"`
	Deviation      map[string]map[string]float64 `json:"deviation"`
	CategoryTotals map[string]int                `json:"categoryTotals"`
	PeriodTotals   map[string]int                `json:"periodTotals"`
	GrandTotal     int                           `json:"grandTotal"`
}

// Correlation is one notable category/period cell of a deviation matrix.
type Correlation struct {
	Category  string  `json:"category"`
	Period    string  `json:"period"`
	Deviation float64 `json:"deviation"`
	Observed  int     `json:"observed"`
	Expected  float64 `json:"expected"`
}

// PeriodSummary describes the busiest or quietest period of a deviation matrix.
type PeriodSummary struct {
	Period        string   `json:"period"`
	Label         string   `json:"label"`
	Total         int      `json:"total"`
	Percentage    float64  `json:"percentage"`
	TopCategories []string `json:"topCategories,omitempty"`
}

// CorrelationReport bundles a deviation matrix with its insights.
type CorrelationReport struct {
	Matrix   DeviationMatrix `json:"matrix"`
	Positive []Correlation   `json:"positive"`
	Negative []Correlation   `json:"negative"`
	Peak     *PeriodSummary  `json:"peak,omitempty"`
	Low      *PeriodSummary  `json:"low,omitempty"`
}

// ImpactScore ranks one category by public-safety significance.
type ImpactScore struct {
	Category            string      `json:"category"`
	Frequency           int         `json:"frequency"`
	NormalizedFrequency float64     `json:"normalizedFrequency"`
	GeographicSpread    float64     `json:"geographicSpread"`
	Severity            float64     `json:"severity"`
	ImpactScore         float64     `json:"impactScore"`
	PDQDistribution     map[int]int `json:"pdqDistribution,omitempty"`
}

// ImpactInsights summarises a list of impact scores.
type ImpactInsights struct {
	MedianFrequency float64           `json:"medianFrequency"`
	TopByImpact     []string          `json:"topByImpact"`
	TopByFrequency  []string          `json:"topByFrequency"`
	TopBySeverity   []string          `json:"topBySeverity"`
	TopBySpread     []string          `json:"topBySpread"`
	Priority        []string          `json:"priority"`
	Widespread      []string          `json:"widespread"`
	Quadrants       map[string]string `json:"quadrants"`
}

// ImpactReport bundles impact scores with their insights.
type ImpactReport struct {
	MetricType MetricType     `json:"metricType"`
	Year       string         `json:"year"`
	Scores     []ImpactScore  `json:"scores"`
	Insights   ImpactInsights `json:"insights"`
}

// TrendResult is the least-squares trend of a time ordered series.
type TrendResult struct {
	Slope         float64        `json:"slope"`
	Intercept     float64        `json:"intercept"`
	PercentChange float64        `json:"percentChange"`
	Trend         TrendDirection `json:"trend"`
	FirstValue    float64        `json:"firstValue"`
	LastValue     float64        `json:"lastValue"`
}

// TimePoint is one value of a time series.
type TimePoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

// CategorySeries is the time series of one category.
type CategorySeries struct {
	Category string      `json:"category"`
	Values   []TimePoint `json:"values"`
}

// TimeSeries is a set of aligned per-category series.
type TimeSeries struct {
	Aggregation AggregationType  `json:"aggregation"`
	TimeKeys    []string         `json:"timeKeys"`
	Series      []CategorySeries `json:"series"`
}

// Inflection is a local peak or valley of a series.
type Inflection struct {
	Time       string     `json:"time"`
	Value      int        `json:"value"`
	ChangeType ChangeType `json:"changeType"`
}

// CategoryTrend is the trend and inflections of one category.
type CategoryTrend struct {
	Category    string       `json:"category"`
	Total       int          `json:"total"`
	Trend       TrendResult  `json:"trend"`
	Inflections []Inflection `json:"inflections,omitempty"`
}

// TrendReport bundles per-category trends with the overall change.
type TrendReport struct {
	Aggregation          AggregationType     `json:"aggregation"`
	TimeKeys             []string            `json:"timeKeys"`
	Trends               []CategoryTrend     `json:"trends"`
	TotalPercentChange   float64             `json:"totalPercentChange"`
	DominantCategory     string              `json:"dominantCategory"`
	SignificantIncreases []string            `json:"significantIncreases"`
	SignificantDecreases []string            `json:"significantDecreases"`
	Composition          CategoryComposition `json:"composition"`
	Shifts               ShiftSeries         `json:"shifts"`
}

// YearValue is one year of a composition series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// CompositionSeries holds the yearly values of one category.
type CompositionSeries struct {
	Category string      `json:"category"`
	Values   []YearValue `json:"values"`
}

// CategoryComposition is the year by category breakdown expressed in Mode.
type CategoryComposition struct {
	Mode       DisplayMode         `json:"mode"`
	Years      []int               `json:"years"`
	Categories []string            `json:"categories"`
	Series     []CompositionSeries `json:"series"`
}

// ShiftCounts holds the yearly incident counts of one shift, aligned with ShiftSeries.Years.
type ShiftCounts struct {
	Shift  Period `json:"shift"`
	Values []int  `json:"values"`
}

// ShiftSeries is the year by shift breakdown, one series per shift in display order.
type ShiftSeries struct {
	Years  []int         `json:"years"`
	Series []ShiftCounts `json:"series"`
}

// SeasonTrend summarises one season.
type SeasonTrend struct {
	Total             int     `json:"total"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
	PeakMonth         string  `json:"peakMonth"`
	PeakMonthCount    int     `json:"peakMonthCount"`
	AverageMonthly    float64 `json:"averageMonthly"`
}

// MonthVariation is a month whose count moves sharply against a neighbour.
type MonthVariation struct {
	Month         string  `json:"month"`
	Count         int     `json:"count"`
	PrevVariation float64 `json:"prevVariation"`
	NextVariation float64 `json:"nextVariation"`
}

// CategorySeasonality flags a category concentrated in one season.
type CategorySeasonality struct {
	Category   string  `json:"category"`
	Season     Season  `json:"season"`
	Percentage float64 `json:"percentage"`
}

// SeasonalAggregate is the month and season distribution of a record set.
type SeasonalAggregate struct {
	Monthly     [12]int                   `json:"monthly"`
	Quarterly   [4]int                    `json:"quarterly"`
	Seasonal    map[Season]int            `json:"seasonal"`
	Total       int                       `json:"total"`
	Trends      map[Season]SeasonTrend    `json:"trends"`
	Variations  []MonthVariation          `json:"variations"`
	ByCategory  map[string]map[Season]int `json:"byCategory,omitempty"`
	Seasonality []CategorySeasonality     `json:"seasonality,omitempty"`
}

// SeverityRule assigns Weight to categories whose lowercased name contains every keyword in All.
type SeverityRule struct {
	All    []string `json:"all" mapstructure:"all" yaml:"all"`
	Weight float64  `json:"weight" mapstructure:"weight" yaml:"weight"`
}
