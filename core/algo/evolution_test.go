package algo

import (
	"testing"
	"time"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func yearStats(byYear map[int]int) *schema.DistrictStats {
	s := schema.NewDistrictStats(nil, nil)
	for y, n := range byYear {
		s.ByYear[y] = n
		s.Total += n
	}
	return s
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name             string
		base, comparison float64
		want             float64
	}{
		{"both zero", 0, 0, 0},
		{"from zero", 0, 5, 100},
		{"increase", 10, 15, 50},
		{"decrease", 20, 5, -75},
		{"unchanged", 7, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentChange(tt.base, tt.comparison), 1e-9)
		})
	}
}

func TestEvolutionZeroGuard(t *testing.T) {
	stats := yearStats(map[int]int{2019: 0, 2020: 10, 2021: 0, 2022: 5, 2023: 15})
	stats.ByYear[2018] = 10

	assert.Equal(t, 0.0, Evolution(stats, 2019, 2021, schema.AllFilter))
	assert.Equal(t, 100.0, Evolution(stats, 2021, 2022, schema.AllFilter))
	assert.Equal(t, 100.0, Evolution(stats, 2019, 2020, schema.AllFilter))
	assert.InDelta(t, 50.0, Evolution(stats, 2018, 2023, schema.AllFilter), 1e-9)
}

func TestEvolutionMissingData(t *testing.T) {
	stats := yearStats(map[int]int{2020: 4})
	assert.Equal(t, 0.0, Evolution(stats, 1990, 1991, schema.AllFilter))
	assert.Equal(t, 100.0, Evolution(stats, 1990, 2020, schema.AllFilter))
	assert.Equal(t, 0.0, Evolution(stats, 2020, 2021, "Inconnu"))
	assert.Equal(t, 0.0, Evolution(nil, 2020, 2021, schema.AllFilter))
}

func TestEvolutionScenario(t *testing.T) {
	records := []schema.IncidentRecord{
		{Date: day(2020, 1, 1), Category: "Vol", District: intPtr(1), Period: schema.DayPeriod},
		{Date: day(2021, 1, 1), Category: "Vol", District: intPtr(1), Period: schema.EveningPeriod},
	}
	res := agg.Aggregate(records)
	require.Contains(t, res.ByDistrict, 1)
	assert.Equal(t, 0.0, Evolution(res.ByDistrict[1], 2020, 2021, schema.AllFilter))
	assert.Equal(t, 0.0, Evolution(res.ByDistrict[1], 2020, 2021, "Vol"))
}

func TestComputeEvolution(t *testing.T) {
	s1 := schema.NewDistrictStats([]string{"Vol", "Méfait"}, []int{2020, 2021})
	s1.ByYear[2020], s1.ByYear[2021] = 10, 15
	s1.ByCategoryAndYear["Vol"][2020], s1.ByCategoryAndYear["Vol"][2021] = 10, 5
	s1.ByCategoryAndYear["Méfait"][2021] = 10
	s1.Total = 25

	s2 := schema.NewDistrictStats([]string{"Vol", "Méfait"}, []int{2020, 2021})
	s2.ByYear[2020], s2.ByYear[2021] = 4, 1
	s2.Total = 5

	byDistrict := map[int]*schema.DistrictStats{2: s2, 1: s1}

	t.Run("all categories", func(t *testing.T) {
		report, err := ComputeEvolution(byDistrict, 2020, 2021, schema.AllFilter)
		require.NoError(t, err)
		require.Len(t, report.Results, 2)

		first := report.Results[0]
		assert.Equal(t, 1, first.DistrictID)
		assert.True(t, first.HasData)
		assert.InDelta(t, 50.0, first.EvolutionPercent, 1e-9)
		require.Len(t, first.ByCategory, 2)
		assert.Equal(t, "Méfait", first.ByCategory[0].Category)
		assert.Equal(t, 100.0, first.ByCategory[0].EvolutionPercent)
		assert.InDelta(t, -50.0, first.ByCategory[1].EvolutionPercent, 1e-9)

		assert.InDelta(t, -75.0, report.Results[1].EvolutionPercent, 1e-9)
		assert.InDelta(t, -75.0, report.DomainMin, 1e-9)
		assert.InDelta(t, 75.0, report.DomainMax, 1e-9)
	})

	t.Run("missing years flagged", func(t *testing.T) {
		report, err := ComputeEvolution(byDistrict, 2019, 2021, schema.AllFilter)
		require.NoError(t, err)
		for _, r := range report.Results {
			assert.False(t, r.HasData)
			assert.Equal(t, 0.0, r.EvolutionPercent)
		}
		assert.Equal(t, -20.0, report.DomainMin)
		assert.Equal(t, 20.0, report.DomainMax)
	})

	t.Run("change fields", func(t *testing.T) {
		report, err := ComputeEvolution(byDistrict, 2020, 2021, schema.AllFilter)
		require.NoError(t, err)
		assert.Equal(t, 5, report.Results[0].AbsoluteChange)
		assert.False(t, report.Results[0].IsImproving)
		assert.Equal(t, -5, report.Results[0].ByCategory[1].AbsoluteChange)
		assert.Equal(t, -3, report.Results[1].AbsoluteChange)
		assert.True(t, report.Results[1].IsImproving)
		assert.Equal(t, schema.AlphabeticalSort, report.SortedBy)
	})

	t.Run("districts without incidents dropped", func(t *testing.T) {
		empty := schema.NewDistrictStats([]string{"Vol"}, []int{2020, 2021})
		withEmpty := map[int]*schema.DistrictStats{1: s1, 3: empty, 4: nil}
		report, err := ComputeEvolution(withEmpty, 2020, 2021, schema.AllFilter)
		require.NoError(t, err)
		require.Len(t, report.Results, 1)
		assert.Equal(t, 1, report.Results[0].DistrictID)

		report, err = ComputeEvolution(byDistrict, 2020, 2021, "Méfait")
		require.NoError(t, err)
		require.Len(t, report.Results, 1, "district 2 has no Méfait")
		assert.Equal(t, 1, report.Results[0].DistrictID)
	})

	t.Run("same year rejected", func(t *testing.T) {
		_, err := ComputeEvolution(byDistrict, 2020, 2020, schema.AllFilter)
		assert.ErrorIs(t, err, ErrSameYear)
	})
}

func TestEvolutionDomain(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"none", nil, -20, 20},
		{"all zero", []float64{0, 0}, -20, 20},
		{"only increases", []float64{5, 30}, -30, 30},
		{"small increase", []float64{5, 10}, -10, 10},
		{"mixed", []float64{-60, 0, 10}, -60, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]schema.EvolutionResult, len(tt.values))
			for i, v := range tt.values {
				results[i].EvolutionPercent = v
			}
			lo, hi := EvolutionDomain(results)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestSortEvolution(t *testing.T) {
	rows := func() []schema.EvolutionResult {
		return []schema.EvolutionResult{
			{DistrictID: 5, AbsoluteChange: 2, EvolutionPercent: 10},
			{DistrictID: 1, AbsoluteChange: -4, EvolutionPercent: -40},
			{DistrictID: 3, AbsoluteChange: 6, EvolutionPercent: 5},
			{DistrictID: 2, AbsoluteChange: 2, EvolutionPercent: 50},
		}
	}
	tests := []struct {
		name string
		by   schema.EvolutionSort
		want []int
		used schema.EvolutionSort
	}{
		{"alphabetical", schema.AlphabeticalSort, []int{1, 2, 3, 5}, schema.AlphabeticalSort},
		{"absolute change with ties by pdq", schema.AbsoluteChangeSort, []int{3, 2, 5, 1}, schema.AbsoluteChangeSort},
		{"percent change", schema.PercentChangeSort, []int{2, 5, 3, 1}, schema.PercentChangeSort},
		{"unknown falls back to pdq order", "loudest", []int{1, 2, 3, 5}, schema.AlphabeticalSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := schema.EvolutionReport{Results: rows()}
			SortEvolution(&report, tt.by)
			ids := make([]int, len(report.Results))
			for i, r := range report.Results {
				ids[i] = r.DistrictID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, tt.used, report.SortedBy)
		})
	}
}
