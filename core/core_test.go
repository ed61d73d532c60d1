package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mtlpdq/pdqstats/core/algo"
	"github.com/mtlpdq/pdqstats/core/filter"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/internal/iocache"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testIncidents  = "incidents.csv"
	testBoundaries = "limites.geojson"
)

func pdq(n int) *int { return &n }

func incident(date string, category string, district *int, period schema.Period) schema.IncidentRecord {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return schema.IncidentRecord{Date: d, Category: category, District: district, Period: period}
}

// sampleDataset has 8 aggregatable records over 3 districts and 2 years, plus one without a district.
func sampleDataset() schema.Dataset {
	records := []schema.IncidentRecord{
		incident("2021-03-04", "Vol", pdq(38), schema.DayPeriod),
		incident("2021-07-14", "Vol", pdq(38), schema.EveningPeriod),
		incident("2022-01-20", "Méfait", pdq(38), schema.NightPeriod),
		incident("2022-08-02", "Vol", pdq(38), schema.DayPeriod),
		incident("2021-05-09", "Méfait", pdq(7), schema.DayPeriod),
		incident("2022-06-11", "Méfait", pdq(7), schema.EveningPeriod),
		incident("2022-09-23", "Méfait", pdq(7), schema.DayPeriod),
		incident("2022-02-17", "Vol", pdq(12), schema.DayPeriod),
		incident("2022-03-01", "Vol", nil, schema.DayPeriod),
	}
	return schema.Dataset{Records: records, Rows: len(records) + 1, Malformed: 1, Digest: "abc123"}
}

func sampleBoundaries() schema.GeoFeatureCollection {
	return schema.GeoFeatureCollection{Features: []schema.GeoFeature{
		{PDQ: 38, Name: "Plateau Mont-Royal"},
		{PDQ: 7, Name: "Saint-Laurent"},
		{PDQ: 99},
	}}
}

func testConfig() *contract.Config {
	return &contract.Config{
		IncidentsPath: testIncidents,
		Location:      time.UTC,
		ResultLimit:   contract.DefaultResultLimit,
		Precision:     contract.DefaultPrecision,
		Output:        schema.TextOut,
		PeriodType:    schema.DayPeriodType,
		MetricType:    schema.WeightedMetric,
		Aggregation:   schema.YearAggregation,
	}
}

func newTestLoader(withBoundaries bool) *contract.MockDatasetLoader {
	loader := &contract.MockDatasetLoader{}
	loader.On("LoadIncidents", mock.Anything, testIncidents, mock.Anything).Return(sampleDataset(), nil)
	if withBoundaries {
		loader.On("LoadBoundaries", mock.Anything, testBoundaries).Return(sampleBoundaries(), nil)
	}
	return loader
}

func TestBuildDistrictsReport(t *testing.T) {
	cfg := testConfig()
	cfg.BoundariesPath = testBoundaries
	loader := newTestLoader(true)
	runner := NewRunner(loader, nil, nil)

	report, err := runner.BuildDistrictsReport(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 8, report.Records)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Districts, 3)
	assert.Equal(t, 38, report.Districts[0].District)
	assert.Equal(t, "Plateau Mont-Royal", report.Districts[0].Name)
	assert.Equal(t, 4, report.Districts[0].Total)
	assert.Equal(t, "Vol", report.Districts[0].TopCategory)
	assert.Equal(t, map[schema.Period]int{schema.DayPeriod: 2, schema.EveningPeriod: 1, schema.NightPeriod: 1}, report.Districts[0].Shifts)
	assert.Equal(t, 7, report.Districts[1].District)
	assert.Equal(t, map[schema.Period]int{schema.DayPeriod: 2, schema.EveningPeriod: 1, schema.NightPeriod: 0}, report.Districts[1].Shifts)
	assert.Equal(t, 12, report.Districts[2].District)
	assert.Empty(t, report.Districts[2].Name)
	assert.Equal(t, []int{12}, report.Unmatched)
	assert.Equal(t, cfg.Criteria.String(), report.Criteria)

	loader.AssertExpectations(t)
}

func TestBuildDistrictsReport_Filtered(t *testing.T) {
	tests := []struct {
		name      string
		criteria  filter.Criteria
		limit     int
		districts []int
		records   int
	}{
		{"no filters", filter.Criteria{}, 50, []int{38, 7, 12}, 8},
		{"limit", filter.Criteria{}, 2, []int{38, 7}, 8},
		{"category", filter.Criteria{Category: "Méfait"}, 50, []int{7, 38}, 4},
		{"year", filter.Criteria{Year: pdq(2021)}, 50, []int{38, 7}, 3},
		{"district", filter.Criteria{PDQ: pdq(12)}, 50, []int{12}, 1},
		{"quarter", filter.Criteria{Quarter: schema.NightPeriod}, 50, []int{38}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Criteria = tt.criteria
			cfg.ResultLimit = tt.limit
			runner := NewRunner(newTestLoader(false), nil, nil)

			report, err := runner.BuildDistrictsReport(context.Background(), cfg)
			require.NoError(t, err)

			var ids []int
			for _, row := range report.Districts {
				ids = append(ids, row.District)
			}
			assert.Equal(t, tt.districts, ids)
			assert.Equal(t, tt.records, report.Records)
			assert.Nil(t, report.Unmatched)
		})
	}
}

func TestBuildDistrictsReport_Errors(t *testing.T) {
	t.Run("missing incident file", func(t *testing.T) {
		cfg := testConfig()
		cfg.IncidentsPath = ""
		_, err := NewRunner(&contract.MockDatasetLoader{}, nil, nil).BuildDistrictsReport(context.Background(), cfg)
		assert.ErrorIs(t, err, ErrNoIncidents)
	})

	t.Run("loader failure", func(t *testing.T) {
		loader := &contract.MockDatasetLoader{}
		loader.On("LoadIncidents", mock.Anything, testIncidents, mock.Anything).
			Return(schema.Dataset{}, errors.New("failed to open incident file"))
		_, err := NewRunner(loader, nil, nil).BuildDistrictsReport(context.Background(), testConfig())
		assert.ErrorContains(t, err, "failed to open incident file")
	})

	t.Run("boundary failure", func(t *testing.T) {
		cfg := testConfig()
		cfg.BoundariesPath = testBoundaries
		loader := &contract.MockDatasetLoader{}
		loader.On("LoadIncidents", mock.Anything, testIncidents, mock.Anything).Return(sampleDataset(), nil)
		loader.On("LoadBoundaries", mock.Anything, testBoundaries).
			Return(schema.GeoFeatureCollection{}, errors.New("invalid geojson"))
		_, err := NewRunner(loader, nil, nil).BuildDistrictsReport(context.Background(), cfg)
		assert.ErrorContains(t, err, "invalid geojson")
	})
}

func TestBuildScaleReport(t *testing.T) {
	report, err := NewRunner(newTestLoader(false), nil, nil).BuildScaleReport(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Districts)
	assert.Len(t, report.Legend, schema.BucketCount)
	assert.Equal(t, report.Scale.Legend(), report.Legend)
}

func TestBuildMergedBoundaries(t *testing.T) {
	t.Run("requires boundaries", func(t *testing.T) {
		_, err := NewRunner(&contract.MockDatasetLoader{}, nil, nil).BuildMergedBoundaries(context.Background(), testConfig())
		assert.ErrorIs(t, err, ErrNoBoundaries)
	})

	t.Run("joins statistics", func(t *testing.T) {
		cfg := testConfig()
		cfg.BoundariesPath = testBoundaries
		fc, err := NewRunner(newTestLoader(true), nil, nil).BuildMergedBoundaries(context.Background(), cfg)
		require.NoError(t, err)

		require.Len(t, fc.Features, 3)
		require.NotNil(t, fc.Features[0].CrimeStats)
		assert.Equal(t, 4, fc.Features[0].CrimeStats.Total)
		assert.Equal(t, 3, fc.Features[1].CrimeStats.Total)
		require.NotNil(t, fc.Features[2].CrimeStats, "a district without incidents gets zero stats")
		assert.Equal(t, 0, fc.Features[2].CrimeStats.Total)
	})
}

func TestBuildEvolutionReport(t *testing.T) {
	t.Run("defaults to first and last year", func(t *testing.T) {
		report, err := NewRunner(newTestLoader(false), nil, nil).BuildEvolutionReport(context.Background(), testConfig())
		require.NoError(t, err)

		assert.Equal(t, 2021, report.BaseYear)
		assert.Equal(t, 2022, report.ComparisonYear)
		assert.Equal(t, schema.AllFilter, report.Category)
		require.Len(t, report.Results, 3)
		assert.Equal(t, 7, report.Results[0].DistrictID)
		assert.InDelta(t, 100.0, report.Results[0].EvolutionPercent, 1e-9)
		assert.Equal(t, 38, report.Results[2].DistrictID)
		assert.InDelta(t, 0.0, report.Results[2].EvolutionPercent, 1e-9)
	})

	t.Run("ignores the year filter", func(t *testing.T) {
		cfg := testConfig()
		cfg.Criteria.Year = pdq(2022)
		report, err := NewRunner(newTestLoader(false), nil, nil).BuildEvolutionReport(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, 2021, report.BaseYear)
		assert.Equal(t, 2022, report.ComparisonYear)
		assert.NotNil(t, cfg.Criteria.Year, "the caller's criteria are left untouched")
	})

	t.Run("category scope", func(t *testing.T) {
		cfg := testConfig()
		cfg.Criteria.Category = "Vol"
		report, err := NewRunner(newTestLoader(false), nil, nil).BuildEvolutionReport(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "Vol", report.Category)
		for _, res := range report.Results {
			assert.Empty(t, res.ByCategory)
		}
	})

	t.Run("drops districts without incidents and orders rows", func(t *testing.T) {
		cfg := testConfig()
		cfg.Criteria.Category = "Vol"
		cfg.EvolutionSort = schema.AbsoluteChangeSort
		report, err := NewRunner(newTestLoader(false), nil, nil).BuildEvolutionReport(context.Background(), cfg)
		require.NoError(t, err)

		assert.Equal(t, schema.AbsoluteChangeSort, report.SortedBy)
		require.Len(t, report.Results, 2, "district 7 has no Vol in either year")
		assert.Equal(t, 12, report.Results[0].DistrictID)
		assert.Equal(t, 1, report.Results[0].AbsoluteChange)
		assert.False(t, report.Results[0].IsImproving)
		assert.Equal(t, 38, report.Results[1].DistrictID)
		assert.Equal(t, -1, report.Results[1].AbsoluteChange)
		assert.True(t, report.Results[1].IsImproving)
	})

	t.Run("same year", func(t *testing.T) {
		cfg := testConfig()
		cfg.BaseYear, cfg.ComparisonYear = 2021, 2021
		_, err := NewRunner(newTestLoader(false), nil, nil).BuildEvolutionReport(context.Background(), cfg)
		assert.ErrorIs(t, err, algo.ErrSameYear)
	})

	t.Run("no dated incidents", func(t *testing.T) {
		loader := &contract.MockDatasetLoader{}
		loader.On("LoadIncidents", mock.Anything, testIncidents, mock.Anything).Return(schema.Dataset{}, nil)
		_, err := NewRunner(loader, nil, nil).BuildEvolutionReport(context.Background(), testConfig())
		assert.ErrorContains(t, err, "no dated incidents")
	})
}

func TestBuildCorrelationReport(t *testing.T) {
	tests := []struct {
		name          string
		categoryLimit int
		resultLimit   int
		categories    []string
		dayTotal      int
	}{
		{"all categories", 0, contract.DefaultResultLimit, []string{"Vol", "Méfait"}, 6},
		{"result limit does not cap categories", 0, 1, []string{"Vol", "Méfait"}, 6},
		{"category limit keeps top category", 1, contract.DefaultResultLimit, []string{"Vol"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ResultLimit = tt.resultLimit
			cfg.Criteria.CategoryCountLimit = tt.categoryLimit
			report, err := NewRunner(newTestLoader(false), nil, nil).BuildCorrelationReport(context.Background(), cfg)
			require.NoError(t, err)

			assert.Equal(t, schema.DayPeriodType, report.Matrix.PeriodType)
			assert.Equal(t, 9, report.Matrix.GrandTotal, "grand total spans every filtered record")
			assert.ElementsMatch(t, tt.categories, report.Matrix.Categories)
			assert.Equal(t, tt.dayTotal, report.Matrix.PeriodTotals[string(schema.DayPeriod)])
		})
	}
}

func TestBuildImpactReport(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		year   *int
		scores int
		label  string
	}{
		{"all categories", 50, nil, 2, schema.AllFilter},
		{"limited", 1, nil, 1, schema.AllFilter},
		{"single year", 50, pdq(2021), 2, "2021"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ResultLimit = tt.limit
			cfg.Criteria.Year = tt.year
			report, err := NewRunner(newTestLoader(false), nil, nil).BuildImpactReport(context.Background(), cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.label, report.Year)
			assert.Equal(t, schema.WeightedMetric, report.MetricType)
			assert.Len(t, report.Scores, tt.scores)
			assert.Len(t, report.Insights.Quadrants, 2, "insights cover every category")
		})
	}
}

func TestBuildTrendReport(t *testing.T) {
	cfg := testConfig()
	report, err := NewRunner(newTestLoader(false), nil, nil).BuildTrendReport(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.YearAggregation, report.Aggregation)
	assert.Equal(t, []string{"2021", "2022"}, report.TimeKeys)
	assert.Len(t, report.Trends, 2)

	cfg.ResultLimit = 1
	report, err = NewRunner(newTestLoader(false), nil, nil).BuildTrendReport(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, report.Trends, 1)
}

func TestBuildTrendReportCompositionAndShifts(t *testing.T) {
	cfg := testConfig()
	cfg.Display = schema.PercentageDisplay
	report, err := NewRunner(newTestLoader(false), nil, nil).BuildTrendReport(context.Background(), cfg)
	require.NoError(t, err)

	c := report.Composition
	assert.Equal(t, schema.PercentageDisplay, c.Mode)
	assert.Equal(t, []int{2021, 2022}, c.Years)
	require.Len(t, c.Series, 2)
	assert.Equal(t, "Vol", c.Series[0].Category)
	assert.InDelta(t, 200.0/3, c.Series[0].Values[0].Value, 1e-9)
	assert.InDelta(t, 50.0, c.Series[0].Values[1].Value, 1e-9)

	assert.Equal(t, []int{2021, 2022}, report.Shifts.Years)
	want := map[schema.Period][]int{
		schema.DayPeriod:     {2, 4},
		schema.EveningPeriod: {1, 1},
		schema.NightPeriod:   {0, 1},
	}
	for _, sc := range report.Shifts.Series {
		assert.Equal(t, want[sc.Shift], sc.Values, string(sc.Shift))
	}
}

func TestBuildSeasonalAggregate(t *testing.T) {
	aggregate, err := NewRunner(newTestLoader(false), nil, nil).BuildSeasonalAggregate(context.Background(), testConfig())
	require.NoError(t, err)

	total := 0
	for _, n := range aggregate.Seasonal {
		total += n
	}
	assert.Equal(t, 9, total)
	assert.Equal(t, 3, aggregate.Seasonal[schema.Summer])
}

func TestBuildHeatmapReport(t *testing.T) {
	lat, lon := 45.52, -73.61
	ds := sampleDataset()
	ds.Records[0].Latitude, ds.Records[0].Longitude = &lat, &lon
	ds.Records[1].Latitude = &lat
	loader := &contract.MockDatasetLoader{}
	loader.On("LoadIncidents", mock.Anything, testIncidents, mock.Anything).Return(ds, nil)

	tests := []struct {
		name    string
		year    *int
		records int
		points  int
	}{
		{"all records", nil, 9, 1},
		{"filtered out", pdq(2022), 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Criteria.Year = tt.year
			report, err := NewRunner(loader, nil, nil).BuildHeatmapReport(context.Background(), cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.records, report.Records)
			require.Len(t, report.Points, tt.points)
			if tt.points == 0 {
				assert.Nil(t, report.Bounds)
				return
			}
			assert.Equal(t, schema.HeatPoint{Latitude: lat, Longitude: lon, Weight: 1}, report.Points[0])
			require.NotNil(t, report.Bounds)
			assert.Equal(t, lat, report.Bounds.MaxLatitude)
		})
	}
}

func TestExecuteCommands(t *testing.T) {
	tests := []struct {
		name   string
		method string
		run    func(r *Runner) ExecutorFunc
	}{
		{"districts", "WriteDistricts", func(r *Runner) ExecutorFunc { return r.ExecuteDistricts }},
		{"evolution", "WriteEvolution", func(r *Runner) ExecutorFunc { return r.ExecuteEvolution }},
		{"correlation", "WriteCorrelation", func(r *Runner) ExecutorFunc { return r.ExecuteCorrelation }},
		{"impact", "WriteImpact", func(r *Runner) ExecutorFunc { return r.ExecuteImpact }},
		{"trends", "WriteTrends", func(r *Runner) ExecutorFunc { return r.ExecuteTrends }},
		{"seasonal", "WriteSeasonal", func(r *Runner) ExecutorFunc { return r.ExecuteSeasonal }},
		{"heatmap", "WriteHeatmap", func(r *Runner) ExecutorFunc { return r.ExecuteHeatmap }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			writer := &contract.MockOutputWriter{}
			writer.On(tt.method, mock.Anything, cfg, mock.AnythingOfType("time.Duration")).Return(nil)

			err := tt.run(NewRunner(newTestLoader(false), writer, nil))(context.Background(), cfg)
			require.NoError(t, err)
			writer.AssertExpectations(t)
		})
	}
}

func TestExecuteScaleAndMerge(t *testing.T) {
	cfg := testConfig()
	cfg.BoundariesPath = testBoundaries
	writer := &contract.MockOutputWriter{}
	writer.On("WriteScale", mock.AnythingOfType("schema.ScaleReport"), cfg).Return(nil)
	writer.On("WriteGeoJSON", mock.AnythingOfType("schema.GeoFeatureCollection"), cfg).Return(nil)
	runner := NewRunner(newTestLoader(true), writer, nil)

	require.NoError(t, runner.ExecuteScale(context.Background(), cfg))
	require.NoError(t, runner.ExecuteMerge(context.Background(), cfg))
	writer.AssertExpectations(t)
}

func TestExecute_WriterError(t *testing.T) {
	cfg := testConfig()
	writer := &contract.MockOutputWriter{}
	writer.On("WriteDistricts", mock.Anything, cfg, mock.Anything).Return(errors.New("disk full"))

	err := NewRunner(newTestLoader(false), writer, nil).ExecuteDistricts(context.Background(), cfg)
	assert.ErrorContains(t, err, "disk full")
}

func TestExecute_BuildErrorSkipsWriter(t *testing.T) {
	cfg := testConfig()
	cfg.IncidentsPath = ""
	writer := &contract.MockOutputWriter{}

	err := NewRunner(&contract.MockDatasetLoader{}, writer, nil).ExecuteImpact(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNoIncidents)
	writer.AssertNotCalled(t, "WriteImpact", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisTracking(t *testing.T) {
	t.Run("records districts", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", CommandDistricts, mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
		store.On("RecordDistrictStats", int64(7), mock.MatchedBy(func(rows []schema.DistrictResult) bool {
			return len(rows) == 3 && rows[0].District == 38
		})).Return(nil)
		store.On("EndAnalysis", int64(7), mock.AnythingOfType("time.Time"), 9).Return(nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := NewRunner(newTestLoader(false), nil, mgr).BuildDistrictsReport(context.Background(), testConfig())
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("records impact scores", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", CommandImpact, mock.Anything, mock.MatchedBy(func(params map[string]any) bool {
			return params["metric"] == "weighted" && params["command"] == CommandImpact
		})).Return(int64(3), nil)
		store.On("RecordImpactScores", int64(3), schema.WeightedMetric, mock.Anything).Return(nil)
		store.On("EndAnalysis", int64(3), mock.Anything, 9).Return(nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := NewRunner(newTestLoader(false), nil, mgr).BuildImpactReport(context.Background(), testConfig())
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("tracking failures never fail the run", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", CommandSeasonal, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := NewRunner(newTestLoader(false), nil, mgr).BuildSeasonalAggregate(context.Background(), testConfig())
		require.NoError(t, err)
		store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("record failure is only logged", func(t *testing.T) {
		store := &iocache.MockAnalysisStore{}
		store.On("BeginAnalysis", CommandDistricts, mock.Anything, mock.Anything).Return(int64(1), nil)
		store.On("RecordDistrictStats", int64(1), mock.Anything).Return(errors.New("constraint"))
		store.On("EndAnalysis", int64(1), mock.Anything, mock.Anything).Return(errors.New("closed"))
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetResultStore").Return(nil)
		mgr.On("GetAnalysisStore").Return(store)

		_, err := NewRunner(newTestLoader(false), nil, mgr).BuildDistrictsReport(context.Background(), testConfig())
		assert.NoError(t, err)
	})
}

func TestRunParams(t *testing.T) {
	cfg := testConfig()
	cfg.BoundariesPath = testBoundaries
	cfg.BaseYear, cfg.ComparisonYear = 2020, 2023
	cfg.EvolutionSort = schema.PercentChangeSort
	cfg.Display = schema.GrowthDisplay

	tests := []struct {
		command string
		key     string
		want    any
	}{
		{CommandEvolution, "base_year", 2020},
		{CommandEvolution, "comparison_year", 2023},
		{CommandEvolution, "sort", "percent-change"},
		{CommandTrends, "display", "growth"},
		{CommandCorrelation, "period_type", "day"},
		{CommandImpact, "metric", "weighted"},
		{CommandTrends, "aggregation", "year"},
		{CommandDistricts, "boundaries", testBoundaries},
	}
	for _, tt := range tests {
		t.Run(tt.command+"/"+tt.key, func(t *testing.T) {
			params := runParams(cfg, tt.command)
			assert.Equal(t, tt.want, params[tt.key])
			assert.Equal(t, tt.command, params["command"])
		})
	}
}
