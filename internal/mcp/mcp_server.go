// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mtlpdq/pdqstats/core"
	"github.com/mtlpdq/pdqstats/internal/contract"
)

// filterOptions are the record filter arguments shared by every tool.
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("incidents", mcp.Description("Path to the incident CSV (defaults to the configured file).")),
		mcp.WithString("category", mcp.Description("Keep a single crime category (CATEGORIE), or 'all'.")),
		mcp.WithString("year", mcp.Description("Keep a single year, or 'all'.")),
		mcp.WithString("quarter", mcp.Description("Keep a single police shift, or 'all'."), mcp.Enum("jour", "soir", "nuit", "all")),
		mcp.WithString("pdq", mcp.Description("Keep a single PDQ number, or 'all'.")),
		mcp.WithString("start", mcp.Description("Inclusive start date (e.g. '2021', '2021-06', '2021-06-15').")),
		mcp.WithString("end", mcp.Description("Inclusive end date, same formats as start.")),
		mcp.WithString("category_limit", mcp.Description("Keep only the N most frequent categories, or 'all'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	}
}

// newTool builds a tool carrying the shared filter arguments plus opts.
func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, filterOptions()...)
	return mcp.NewTool(name, append(all, opts...)...)
}

// NewMCPServer initializes and configures the pdqstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, runner *core.Runner) *server.MCPServer {
	s := server.NewMCPServer(
		"PDQ Crime Statistics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		runner:  runner,
	}

	// --- 1. Tool: get_districts ---
	s.AddTool(newTool("get_districts",
		"Rank Montreal police districts (PDQ) by incident count, with top category and severity label.",
		mcp.WithString("boundaries", mcp.Description("Path to the PDQ boundary GeoJSON, used for district names.")),
	), h.handleGetDistricts)

	// --- 2. Tool: get_color_scale ---
	s.AddTool(newTool("get_color_scale",
		"Compute the 5-bucket quantile color scale of district incident counts."),
		h.handleGetColorScale)

	// --- 3. Tool: get_evolution ---
	s.AddTool(newTool("get_evolution",
		"Compare incident counts per district between two years, in percent.",
		mcp.WithNumber("base_year", mcp.Description("Reference year (defaults to the first year in the data).")),
		mcp.WithNumber("comparison_year", mcp.Description("Year compared against the base (defaults to the last year in the data).")),
		mcp.WithString("sort", mcp.Description("Row order. Defaults to 'alphabetical' (by PDQ)."), mcp.Enum("alphabetical", "absolute-change", "percent-change")),
	), h.handleGetEvolution)

	// --- 4. Tool: get_correlations ---
	s.AddTool(newTool("get_correlations",
		"Find categories over- or under-represented in a period compared to independence.",
		mcp.WithString("period_type", mcp.Description("Period dimension. Defaults to 'day' (police shifts)."), mcp.Enum("day", "month", "weekday")),
	), h.handleGetCorrelations)

	// --- 5. Tool: get_impact_scores ---
	s.AddTool(newTool("get_impact_scores",
		"Score crime categories by frequency, severity and geographic spread.",
		mcp.WithString("metric", mcp.Description("Scoring metric. Defaults to 'weighted'."), mcp.Enum("weighted", "frequency", "distribution")),
	), h.handleGetImpactScores)

	// --- 6. Tool: get_trends ---
	s.AddTool(newTool("get_trends",
		"Classify the trend of every category over time with least squares regression, with year by category and year by shift breakdowns.",
		mcp.WithString("aggregation", mcp.Description("Time bucket size. Defaults to 'month'."), mcp.Enum("year", "quarter", "month")),
		mcp.WithString("display", mcp.Description("Category by year values. Defaults to 'absolute'."), mcp.Enum("absolute", "percentage", "growth")),
	), h.handleGetTrends)

	// --- 7. Tool: get_seasonal ---
	s.AddTool(newTool("get_seasonal",
		"Distribute incidents over months and seasons and flag sharp monthly variations."),
		h.handleGetSeasonal)

	// --- 8. Tool: get_heatmap ---
	s.AddTool(newTool("get_heatmap",
		"List the coordinates of located incidents as weighted heat map points, with their bounding box."),
		h.handleGetHeatmap)

	return s
}

// StartMCPServer starts the pdqstats MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, runner *core.Runner) error {
	s := NewMCPServer(baseCfg, runner)
	return server.ServeStdio(s)
}
