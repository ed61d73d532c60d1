package algo

import (
	"testing"
	"time"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonOf(t *testing.T) {
	want := []schema.Season{
		schema.Winter, schema.Winter,
		schema.Spring, schema.Spring, schema.Spring,
		schema.Summer, schema.Summer, schema.Summer,
		schema.Autumn, schema.Autumn, schema.Autumn,
		schema.Winter,
	}
	for m, s := range want {
		assert.Equal(t, s, SeasonOf(m), "month %d", m)
	}
	assert.Equal(t, [3]int{11, 0, 1}, SeasonMonths(schema.Winter))
}

func TestAggregateSeasonal(t *testing.T) {
	records := []schema.IncidentRecord{
		{Date: day(2021, time.January, 3), Category: "Vol"},
		{Date: day(2021, time.January, 9), Category: "Vol"},
		{Date: day(2021, time.July, 1), Category: "Méfait"},
		{Date: day(2021, time.July, 2), Category: "Méfait"},
		{Date: day(2021, time.July, 3), Category: "Vol"},
		{Date: day(2020, time.December, 24), Category: "Vol"},
		{Date: day(2021, time.April, 1)},
		{Category: "Vol"},
	}
	sa := AggregateSeasonal(records)

	assert.Equal(t, 7, sa.Total)
	assert.Equal(t, 2, sa.Monthly[0])
	assert.Equal(t, 1, sa.Monthly[3])
	assert.Equal(t, 3, sa.Monthly[6])
	assert.Equal(t, 1, sa.Monthly[11])
	assert.Equal(t, [4]int{2, 1, 3, 1}, sa.Quarterly)
	assert.Equal(t, map[schema.Season]int{
		schema.Winter: 3, schema.Spring: 1, schema.Summer: 3, schema.Autumn: 0,
	}, sa.Seasonal)

	winter := sa.Trends[schema.Winter]
	assert.Equal(t, 3, winter.Total)
	assert.Equal(t, "Janvier", winter.PeakMonth)
	assert.Equal(t, 2, winter.PeakMonthCount)
	assert.InDelta(t, 300.0/7, winter.PercentageOfTotal, 1e-9)
	assert.InDelta(t, 1.0, winter.AverageMonthly, 1e-9)

	autumn := sa.Trends[schema.Autumn]
	assert.Equal(t, "Septembre", autumn.PeakMonth)
	assert.Equal(t, 0, autumn.PeakMonthCount)

	require.Contains(t, sa.ByCategory, "Vol")
	assert.Equal(t, 3, sa.ByCategory["Vol"][schema.Winter])
	assert.Equal(t, 1, sa.ByCategory["Vol"][schema.Summer])
	assert.Equal(t, 2, sa.ByCategory["Méfait"][schema.Summer])
	assert.Len(t, sa.ByCategory, 2)
}

func TestAggregateSeasonalEmpty(t *testing.T) {
	sa := AggregateSeasonal(nil)
	assert.Equal(t, 0, sa.Total)
	assert.Len(t, sa.Seasonal, 4)
	assert.Len(t, sa.Trends, 4)
	assert.Empty(t, sa.Variations)
	assert.Empty(t, sa.Seasonality)
	assert.Equal(t, 0.0, sa.Trends[schema.Summer].PercentageOfTotal)
}

func TestMonthlyVariations(t *testing.T) {
	var monthly [12]int
	for i := range monthly {
		monthly[i] = 10
	}
	monthly[0] = 20

	got := MonthlyVariations(monthly)
	require.Len(t, got, 3)
	assert.Equal(t, "Janvier", got[0].Month)
	assert.InDelta(t, 100.0, got[0].PrevVariation, 1e-9)
	assert.InDelta(t, -50.0, got[0].NextVariation, 1e-9)
	assert.Equal(t, "Février", got[1].Month)
	assert.InDelta(t, -50.0, got[1].PrevVariation, 1e-9)
	assert.Equal(t, "Décembre", got[2].Month)
	assert.InDelta(t, 100.0, got[2].NextVariation, 1e-9)

	assert.Empty(t, MonthlyVariations([12]int{}))
}

func TestMonthlyVariationsFromEmptyMonth(t *testing.T) {
	var monthly [12]int
	monthly[5] = 4
	got := MonthlyVariations(monthly)
	require.Len(t, got, 2)
	assert.Equal(t, "Juin", got[0].Month)
	assert.Equal(t, 0.0, got[0].PrevVariation)
	assert.InDelta(t, -100.0, got[0].NextVariation, 1e-9)
	assert.Equal(t, "Juillet", got[1].Month)
	assert.InDelta(t, -100.0, got[1].PrevVariation, 1e-9)
	assert.Equal(t, 0.0, got[1].NextVariation)
}

func TestCategorySeasonality(t *testing.T) {
	var records []schema.IncidentRecord
	add := func(category string, month time.Month, n int) {
		for range n {
			records = append(records, schema.IncidentRecord{Date: day(2022, month, 15), Category: category})
		}
	}
	add("Vol", time.July, 6)
	add("Vol", time.January, 2)
	add("Vol", time.April, 2)
	add("Vol", time.October, 2)
	add("Méfait", time.January, 3)
	add("Méfait", time.April, 3)
	add("Méfait", time.July, 3)
	add("Méfait", time.October, 3)
	add("Rare", time.August, 5)
	add("Froid", time.February, 4)
	add("Froid", time.May, 2)
	add("Froid", time.August, 2)
	add("Froid", time.November, 2)

	got := AggregateSeasonal(records).Seasonality
	require.Len(t, got, 2)
	assert.Equal(t, schema.CategorySeasonality{Category: "Vol", Season: schema.Summer, Percentage: 50}, got[0])
	assert.Equal(t, "Froid", got[1].Category)
	assert.Equal(t, schema.Winter, got[1].Season)
	assert.InDelta(t, 40.0, got[1].Percentage, 1e-9)
}
