package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mtlpdq/pdqstats/core"
	"github.com/mtlpdq/pdqstats/internal/contract"
	mcp_internal "github.com/mtlpdq/pdqstats/internal/mcp"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func district(n int) *int { return &n }

func testDataset() schema.Dataset {
	at := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}
	return schema.Dataset{Records: []schema.IncidentRecord{
		{Date: at("2021-03-04"), Category: "Vol", District: district(38), Period: schema.DayPeriod},
		{Date: at("2022-01-20"), Category: "Méfait", District: district(38), Period: schema.NightPeriod},
		{Date: at("2022-08-02"), Category: "Vol", District: district(38), Period: schema.DayPeriod},
		{Date: at("2021-05-09"), Category: "Méfait", District: district(7), Period: schema.EveningPeriod},
		{Date: at("2022-06-11"), Category: "Méfait", District: district(7), Period: schema.DayPeriod},
	}}
}

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	return newTestServerWith(t, contract.Config{})
}

// newTestServerWith builds a server whose base config carries the given criteria.
func newTestServerWith(t *testing.T, overrides contract.Config) *server.MCPServer {
	t.Helper()
	loader := &contract.MockDatasetLoader{}
	loader.On("LoadIncidents", mock.Anything, mock.Anything, mock.Anything).Return(testDataset(), nil)
	baseCfg := &contract.Config{
		IncidentsPath: "incidents.csv",
		Location:      time.UTC,
		ResultLimit:   contract.DefaultResultLimit,
		PeriodType:    schema.DayPeriodType,
		MetricType:    schema.WeightedMetric,
		Aggregation:   schema.YearAggregation,
		Criteria:      overrides.Criteria,
	}
	return mcp_internal.NewMCPServer(baseCfg, core.NewRunner(loader, nil, nil))
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServer_Tools(t *testing.T) {
	s := newTestServer(t)
	tools := s.ListTools()
	for _, name := range []string{
		"get_districts", "get_color_scale", "get_evolution", "get_correlations",
		"get_impact_scores", "get_trends", "get_seasonal", "get_heatmap",
	} {
		assert.Contains(t, tools, name)
	}
}

func TestMCPServerHandlers_Success(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		keys []string
	}{
		{"districts", "get_districts", map[string]any{"limit": 1.0}, []string{"districts", "scale", "records"}},
		{"color scale", "get_color_scale", nil, []string{"scale", "legend"}},
		{"evolution", "get_evolution", map[string]any{"base_year": 2021.0, "comparison_year": 2022.0}, []string{"baseYear", "results"}},
		{"correlations", "get_correlations", map[string]any{"period_type": "day"}, []string{"matrix", "positive"}},
		{"impact", "get_impact_scores", map[string]any{"metric": "frequency"}, []string{"scores", "insights"}},
		{"trends", "get_trends", map[string]any{"aggregation": "year", "display": "growth"}, []string{"trends", "timeKeys", "composition", "shifts"}},
		{"seasonal", "get_seasonal", map[string]any{"category": "Méfait"}, []string{"seasonal", "variations"}},
		{"heatmap", "get_heatmap", map[string]any{"pdq": 38.0}, []string{"records", "points"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			res := callTool(t, s, tt.tool, tt.args)
			assert.False(t, res.IsError, resultText(t, res))

			var decoded map[string]any
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
			for _, key := range tt.keys {
				assert.Contains(t, decoded, key)
			}
		})
	}
}

func TestMCPServerHandlers_Districts(t *testing.T) {
	s := newTestServer(t)
	res := callTool(t, s, "get_districts", map[string]any{"pdq": 7.0})
	require.False(t, res.IsError)

	var decoded struct {
		Records   int `json:"records"`
		Districts []struct {
			Rank     int    `json:"rank"`
			District int    `json:"district"`
			Color    string `json:"color"`
		} `json:"districts"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, 2, decoded.Records)
	require.Len(t, decoded.Districts, 1)
	assert.Equal(t, 1, decoded.Districts[0].Rank)
	assert.Equal(t, 7, decoded.Districts[0].District)
	assert.NotEmpty(t, decoded.Districts[0].Color)
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		message string
	}{
		{"invalid year", "get_districts", map[string]any{"year": "last"}, "invalid year"},
		{"invalid quarter", "get_color_scale", map[string]any{"quarter": "matin"}, "invalid quarter"},
		{"invalid limit", "get_districts", map[string]any{"limit": -3.0}, "limit must be greater than 0"},
		{"invalid period type", "get_correlations", map[string]any{"period_type": "hour"}, "invalid period type"},
		{"invalid metric", "get_impact_scores", map[string]any{"metric": "loudest"}, "invalid metric"},
		{"invalid aggregation", "get_trends", map[string]any{"aggregation": "week"}, "invalid aggregation"},
		{"invalid category limit", "get_districts", map[string]any{"category_limit": "many"}, "invalid category limit"},
		{"invalid display", "get_trends", map[string]any{"display": "stacked"}, "invalid display"},
		{"invalid sort", "get_evolution", map[string]any{"sort": "loudest"}, "invalid sort"},
		{"same year", "get_evolution", map[string]any{"base_year": 2021.0, "comparison_year": 2021.0}, "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.message)
		})
	}
}

func TestMCPServerHandlers_DoesNotMutateBaseConfig(t *testing.T) {
	s := newTestServer(t)
	callTool(t, s, "get_districts", map[string]any{"year": "2022", "limit": 1.0})

	res := callTool(t, s, "get_districts", nil)
	require.False(t, res.IsError)
	var decoded struct {
		Records int `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, 5, decoded.Records)
}

func TestMCPServerHandlers_CategoryLimit(t *testing.T) {
	tests := []struct {
		name      string
		baseLimit int
		args      map[string]any
		records   int
	}{
		{"no limit", 0, nil, 5},
		{"string limit", 0, map[string]any{"category_limit": "1"}, 3},
		{"numeric limit", 0, map[string]any{"category_limit": 1.0}, 3},
		{"all categories", 1, map[string]any{"category_limit": "all"}, 5},
		{"configured limit kept with other filters", 1, map[string]any{"year": "2022"}, 2},
		{"configured limit without arguments", 1, nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := contract.Config{}
			base.Criteria.CategoryCountLimit = tt.baseLimit
			s := newTestServerWith(t, base)

			res := callTool(t, s, "get_districts", tt.args)
			require.False(t, res.IsError, resultText(t, res))
			var decoded struct {
				Records int `json:"records"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
			assert.Equal(t, tt.records, decoded.Records)
		})
	}
}

func TestMCPServerHandlers_EvolutionSort(t *testing.T) {
	s := newTestServer(t)
	res := callTool(t, s, "get_evolution", map[string]any{
		"base_year": 2021.0, "comparison_year": 2022.0, "sort": "percent-change",
	})
	require.False(t, res.IsError, resultText(t, res))

	var decoded struct {
		SortedBy string `json:"sortedBy"`
		Results  []struct {
			DistrictID     int  `json:"districtId"`
			AbsoluteChange int  `json:"absoluteChange"`
			IsImproving    bool `json:"isImproving"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, "percent-change", decoded.SortedBy)
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, 38, decoded.Results[0].DistrictID)
	assert.Equal(t, 1, decoded.Results[0].AbsoluteChange)
	assert.False(t, decoded.Results[0].IsImproving)
	assert.Equal(t, 7, decoded.Results[1].DistrictID)
	assert.Equal(t, 0, decoded.Results[1].AbsoluteChange)
}
