//go:build basic

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseArgs points every command at the loader fixtures with caching disabled.
func baseArgs(t *testing.T, command ...string) []string {
	args := append([]string{}, command...)
	return append(args,
		"--incidents", fixturePath(t, "incidents.csv"),
		"--timezone", "UTC",
		"--cache-backend", "none",
		"--analysis-backend", "none",
		"--output", "json",
	)
}

func TestDistrictsCommand(t *testing.T) {
	out, err := runPdqstats(t, baseArgs(t, "districts")...)
	require.NoError(t, err)

	var report struct {
		Records   int `json:"records"`
		Skipped   int `json:"skipped"`
		Districts []struct {
			Rank     int `json:"rank"`
			District int `json:"district"`
			Total    int `json:"total"`
		} `json:"districts"`
	}
	require.NoError(t, json.Unmarshal(out, &report))

	assert.Equal(t, 10, report.Records)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, report.Districts, 3)

	tests := []struct {
		rank     int
		district int
		total    int
	}{
		{1, 1, 5},
		{2, 2, 3},
		{3, 3, 2},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.rank, report.Districts[i].Rank)
		assert.Equal(t, tt.district, report.Districts[i].District)
		assert.Equal(t, tt.total, report.Districts[i].Total)
	}
}

func TestDistrictsCommandFilters(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		records int
	}{
		{"year", []string{"--year", "2020"}, 4},
		{"quarter", []string{"--quarter", "soir"}, 3},
		{"pdq", []string{"--pdq", "2"}, 3},
		{"category", []string{"--category", "Méfait"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPdqstats(t, append(baseArgs(t, "districts"), tt.flags...)...)
			require.NoError(t, err)

			var report struct {
				Records int `json:"records"`
			}
			require.NoError(t, json.Unmarshal(out, &report))
			assert.Equal(t, tt.records, report.Records)
		})
	}
}

func TestEvolutionCommand(t *testing.T) {
	out, err := runPdqstats(t, baseArgs(t, "evolution")...)
	require.NoError(t, err)

	var report struct {
		BaseYear       int `json:"baseYear"`
		ComparisonYear int `json:"comparisonYear"`
		Results        []struct {
			DistrictID      int  `json:"districtId"`
			BaseCount       int  `json:"baseCount"`
			ComparisonCount int  `json:"comparisonCount"`
			HasData         bool `json:"hasData"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out, &report))

	assert.Equal(t, 2020, report.BaseYear)
	assert.Equal(t, 2021, report.ComparisonYear)

	counts := make(map[int][2]int)
	for _, r := range report.Results {
		counts[r.DistrictID] = [2]int{r.BaseCount, r.ComparisonCount}
	}
	assert.Equal(t, [2]int{3, 2}, counts[1])
	assert.Equal(t, [2]int{1, 2}, counts[2])
	assert.Equal(t, [2]int{0, 2}, counts[3])
}

func TestEvolutionCommandSameYear(t *testing.T) {
	args := append(baseArgs(t, "evolution"), "--base-year", "2021", "--comparison-year", "2021")
	_, err := runPdqstats(t, args...)
	assert.Error(t, err)
}

func TestEvolutionCommandSort(t *testing.T) {
	out, err := runPdqstats(t, append(baseArgs(t, "evolution"), "--sort", "absolute-change")...)
	require.NoError(t, err)

	var report struct {
		SortedBy string `json:"sortedBy"`
		Results  []struct {
			DistrictID     int  `json:"districtId"`
			AbsoluteChange int  `json:"absoluteChange"`
			IsImproving    bool `json:"isImproving"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out, &report))

	assert.Equal(t, "absolute-change", report.SortedBy)
	require.Len(t, report.Results, 3)
	tests := []struct {
		district  int
		change    int
		improving bool
	}{
		{3, 2, false},
		{2, 1, false},
		{1, -1, true},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.district, report.Results[i].DistrictID)
		assert.Equal(t, tt.change, report.Results[i].AbsoluteChange)
		assert.Equal(t, tt.improving, report.Results[i].IsImproving)
	}
}

func TestDistrictsCommandShifts(t *testing.T) {
	out, err := runPdqstats(t, baseArgs(t, "districts")...)
	require.NoError(t, err)

	var report struct {
		Districts []struct {
			District int            `json:"district"`
			Shifts   map[string]int `json:"shifts"`
		} `json:"districts"`
	}
	require.NoError(t, json.Unmarshal(out, &report))
	require.NotEmpty(t, report.Districts)
	assert.Equal(t, 1, report.Districts[0].District)
	assert.Equal(t, map[string]int{"jour": 3, "soir": 1, "nuit": 2}, report.Districts[0].Shifts)
}

func TestTrendsCommandDisplay(t *testing.T) {
	out, err := runPdqstats(t, append(baseArgs(t, "trends"), "--display", "percentage")...)
	require.NoError(t, err)

	var report struct {
		Composition struct {
			Mode   string `json:"mode"`
			Years  []int  `json:"years"`
			Series []struct {
				Values []struct {
					Value float64 `json:"value"`
				} `json:"values"`
			} `json:"series"`
		} `json:"composition"`
		Shifts struct {
			Years []int `json:"years"`
		} `json:"shifts"`
	}
	require.NoError(t, json.Unmarshal(out, &report))

	assert.Equal(t, "percentage", report.Composition.Mode)
	assert.Equal(t, []int{2020, 2021}, report.Composition.Years)
	for i := range report.Composition.Years {
		sum := 0.0
		for _, s := range report.Composition.Series {
			sum += s.Values[i].Value
		}
		assert.InDelta(t, 100.0, sum, 1e-6, "shares of a year add up to 100")
	}
	assert.Equal(t, []int{2020, 2021}, report.Shifts.Years)
}

func TestHeatmapCommand(t *testing.T) {
	tests := []struct {
		name   string
		flags  []string
		points int
	}{
		{"all", nil, 2},
		{"night shift", []string{"--quarter", "nuit"}, 0},
		{"first incident", []string{"--start", "2020-01-15", "--end", "2020-01-15"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPdqstats(t, append(baseArgs(t, "heatmap"), tt.flags...)...)
			require.NoError(t, err)

			var report struct {
				Points []struct {
					Latitude  float64 `json:"latitude"`
					Longitude float64 `json:"longitude"`
					Weight    float64 `json:"weight"`
				} `json:"points"`
			}
			require.NoError(t, json.Unmarshal(out, &report))
			require.Len(t, report.Points, tt.points)
			for _, p := range report.Points {
				assert.InDelta(t, 45.5, p.Latitude, 0.1)
				assert.InDelta(t, -73.6, p.Longitude, 0.1)
				assert.Equal(t, 1.0, p.Weight)
			}
		})
	}
}

func TestSeasonalCommand(t *testing.T) {
	out, err := runPdqstats(t, baseArgs(t, "seasonal")...)
	require.NoError(t, err)

	var aggregate struct {
		Total    int            `json:"total"`
		Seasonal map[string]int `json:"seasonal"`
	}
	require.NoError(t, json.Unmarshal(out, &aggregate))

	assert.Equal(t, 12, aggregate.Total)
	sum := 0
	for _, n := range aggregate.Seasonal {
		sum += n
	}
	assert.Equal(t, aggregate.Total, sum)
}

func TestMergeCommand(t *testing.T) {
	args := append(baseArgs(t, "merge"), "--boundaries", fixturePath(t, "pdq.geojson"))
	out, err := runPdqstats(t, args...)
	require.NoError(t, err)

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(out, &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotEmpty(t, fc.Features)
}

func TestMergeCommandRequiresBoundaries(t *testing.T) {
	_, err := runPdqstats(t, baseArgs(t, "merge")...)
	assert.Error(t, err)
}

func TestAnalysisCommandsRun(t *testing.T) {
	commands := [][]string{
		{"scale"},
		{"correlation"},
		{"correlation", "--period-type", "month"},
		{"impact"},
		{"impact", "--metric", "frequency"},
		{"trends"},
		{"trends", "--aggregation", "year"},
		{"trends", "--display", "growth"},
	}

	for _, command := range commands {
		t.Run(command[0], func(t *testing.T) {
			out, err := runPdqstats(t, baseArgs(t, command...)...)
			require.NoError(t, err)
			assert.True(t, json.Valid(out), "output should be valid JSON")
		})
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	args := append(baseArgs(t, "districts"), "--output", "xml")
	_, err := runPdqstats(t, args...)
	assert.Error(t, err)
}
