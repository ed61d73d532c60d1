package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mtlpdq/pdqstats/core"
	"github.com/mtlpdq/pdqstats/core/filter"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	runner  *core.Runner
}

// configure clones the base config and applies the shared tool arguments.
// Filter arguments replace the configured criteria only when at least one is given.
func (h *toolHandler) configure(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("incidents", ""); p != "" {
		cfg.IncidentsPath = p
	}
	if p := request.GetString("boundaries", ""); p != "" {
		cfg.BoundariesPath = p
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return nil, fmt.Errorf("limit must be greater than 0 and cannot exceed %d", contract.MaxResultLimit)
		}
		cfg.ResultLimit = l
	}

	raw := filter.RawCriteria{
		Category: request.GetString("category", ""),
		Year:     numericArg(request, "year"),
		Quarter:  request.GetString("quarter", ""),
		PDQ:      numericArg(request, "pdq"),
		Start:    request.GetString("start", ""),
		End:      request.GetString("end", ""),

		CategoryLimit: numericArg(request, "category_limit"),
	}
	if raw != (filter.RawCriteria{}) {
		criteria, err := filter.ParseCriteria(raw, cfg.Location)
		if err != nil {
			return nil, err
		}
		if raw.CategoryLimit == "" {
			criteria.CategoryCountLimit = cfg.Criteria.CategoryCountLimit
		}
		cfg.Criteria = criteria
	}
	return cfg, nil
}

// numericArg returns an argument that clients may send either as a string or as a number.
func numericArg(request mcp.CallToolRequest, key string) string {
	switch v := request.GetArguments()[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// jsonResult encodes v as the text content of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDistricts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := h.runner.BuildDistrictsReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return jsonResult(struct {
		schema.DistrictsReport
		Districts []schema.EnrichedDistrictResult `json:"districts"`
	}{report, schema.EnrichDistricts(report.Districts, report.Scale)})
}

func (h *toolHandler) handleGetColorScale(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := h.runner.BuildScaleReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetEvolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.BaseYear = request.GetInt("base_year", cfg.BaseYear)
	cfg.ComparisonYear = request.GetInt("comparison_year", cfg.ComparisonYear)
	if s := strings.ToLower(request.GetString("sort", "")); s != "" {
		cfg.EvolutionSort = schema.EvolutionSort(s)
		if _, ok := schema.ValidEvolutionSorts[cfg.EvolutionSort]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid sort '%s'. must be alphabetical, absolute-change, percent-change", s)), nil
		}
	}

	report, err := h.runner.BuildEvolutionReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evolution failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetCorrelations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p := strings.ToLower(request.GetString("period_type", "")); p != "" {
		cfg.PeriodType = schema.PeriodType(p)
		if _, ok := schema.ValidPeriodTypes[cfg.PeriodType]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid period type '%s'. must be day, month, weekday", p)), nil
		}
	}

	report, err := h.runner.BuildCorrelationReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("correlation analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetImpactScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if m := strings.ToLower(request.GetString("metric", "")); m != "" {
		cfg.MetricType = schema.MetricType(m)
		if _, ok := schema.ValidMetricTypes[cfg.MetricType]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid metric '%s'. must be weighted, frequency, distribution", m)), nil
		}
	}

	report, err := h.runner.BuildImpactReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("impact analysis failed: %v", err)), nil
	}

	return jsonResult(struct {
		schema.ImpactReport
		Scores []schema.EnrichedImpactScore `json:"scores"`
	}{report, schema.EnrichImpact(report.Scores, report.Insights.Quadrants)})
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if a := strings.ToLower(request.GetString("aggregation", "")); a != "" {
		cfg.Aggregation = schema.AggregationType(a)
		if _, ok := schema.ValidAggregationTypes[cfg.Aggregation]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid aggregation '%s'. must be year, quarter, month", a)), nil
		}
	}
	if d := strings.ToLower(request.GetString("display", "")); d != "" {
		cfg.Display = schema.DisplayMode(d)
		if _, ok := schema.ValidDisplayModes[cfg.Display]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid display '%s'. must be absolute, percentage, growth", d)), nil
		}
	}

	report, err := h.runner.BuildTrendReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleGetSeasonal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	aggregate, err := h.runner.BuildSeasonalAggregate(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("seasonal analysis failed: %v", err)), nil
	}
	return jsonResult(aggregate)
}

func (h *toolHandler) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configure(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := h.runner.BuildHeatmapReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heat map extraction failed: %v", err)), nil
	}
	return jsonResult(report)
}
