// Package core orchestrates the pdqstats pipeline: load, filter, aggregate, derive and render.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mtlpdq/pdqstats/core/agg"
	"github.com/mtlpdq/pdqstats/core/algo"
	"github.com/mtlpdq/pdqstats/core/geo"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
)

// Command names, used for run tracking and cache keys.
const (
	CommandDistricts   = "districts"
	CommandScale       = "scale"
	CommandMerge       = "merge"
	CommandEvolution   = "evolution"
	CommandCorrelation = "correlation"
	CommandImpact      = "impact"
	CommandTrends      = "trends"
	CommandSeasonal    = "seasonal"
	CommandHeatmap     = "heatmap"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// Runner runs pipeline commands against a dataset loader, an output writer and the stores.
type Runner struct {
	loader contract.DatasetLoader
	writer contract.OutputWriter
	mgr    contract.CacheManager // nil disables caching and tracking
}

// NewRunner creates a Runner.
func NewRunner(loader contract.DatasetLoader, writer contract.OutputWriter, mgr contract.CacheManager) *Runner {
	return &Runner{loader: loader, writer: writer, mgr: mgr}
}

// ExecuteDistricts ranks districts by incident count and prints them.
func (r *Runner) ExecuteDistricts(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildDistrictsReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteDistricts(report, cfg, time.Since(start))
}

// ExecuteScale prints the color scale of the filtered districts.
func (r *Runner) ExecuteScale(ctx context.Context, cfg *contract.Config) error {
	report, err := r.BuildScaleReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteScale(report, cfg)
}

// ExecuteMerge prints the boundaries with district statistics attached.
func (r *Runner) ExecuteMerge(ctx context.Context, cfg *contract.Config) error {
	fc, err := r.BuildMergedBoundaries(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteGeoJSON(fc, cfg)
}

// ExecuteEvolution prints per-district evolution between two years.
func (r *Runner) ExecuteEvolution(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildEvolutionReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteEvolution(report, cfg, time.Since(start))
}

// ExecuteCorrelation prints the category by period deviation analysis.
func (r *Runner) ExecuteCorrelation(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildCorrelationReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteCorrelation(report, cfg, time.Since(start))
}

// ExecuteImpact prints the impact score ranking.
func (r *Runner) ExecuteImpact(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildImpactReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteImpact(report, cfg, time.Since(start))
}

// ExecuteTrends prints per-category trends.
func (r *Runner) ExecuteTrends(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildTrendReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteTrends(report, cfg, time.Since(start))
}

// ExecuteSeasonal prints the seasonal distribution.
func (r *Runner) ExecuteSeasonal(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	aggregate, err := r.BuildSeasonalAggregate(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteSeasonal(aggregate, cfg, time.Since(start))
}

// ExecuteHeatmap prints the located incidents.
func (r *Runner) ExecuteHeatmap(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := r.BuildHeatmapReport(ctx, cfg)
	if err != nil {
		return err
	}
	return r.writer.WriteHeatmap(report, cfg, time.Since(start))
}

// BuildDistrictsReport aggregates the filtered records and ranks every district.
// With boundaries loaded, rows carry district names and unmatched districts are listed.
func (r *Runner) BuildDistrictsReport(ctx context.Context, cfg *contract.Config) (schema.DistrictsReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandDistricts)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.DistrictsReport{}, err
	}
	result := r.aggregate(ctx, in, cfg.Criteria)

	rows := algo.RankDistricts(result.ByDistrict, cfg.ResultLimit)
	report := schema.DistrictsReport{
		Criteria:  cfg.Criteria.String(),
		Records:   result.Total(),
		Skipped:   agg.CountSkipped(in.records),
		Scale:     algo.BuildColorScale(result.ByDistrict),
		Districts: rows,
	}
	shifts := algo.ShiftsByDistrict(in.records)
	for i := range report.Districts {
		report.Districts[i].Shifts = shifts[report.Districts[i].District]
	}
	if fc := in.dataset.Boundaries; fc != nil {
		names := fc.Names()
		for i := range report.Districts {
			report.Districts[i].Name = names[report.Districts[i].District]
		}
		report.Unmatched = geo.Unmatched(*fc, result.ByDistrict)
	}

	r.recordDistricts(ctx, report.Districts)
	r.endRun(ctx, len(in.records))
	return report, nil
}

// BuildScaleReport builds the color scale and legend of the filtered districts.
func (r *Runner) BuildScaleReport(ctx context.Context, cfg *contract.Config) (schema.ScaleReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandScale)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.ScaleReport{}, err
	}
	result := r.aggregate(ctx, in, cfg.Criteria)

	scale := algo.BuildColorScale(result.ByDistrict)
	r.endRun(ctx, len(in.records))
	return schema.ScaleReport{
		Criteria:  cfg.Criteria.String(),
		Districts: len(result.ByDistrict),
		Scale:     scale,
		Legend:    scale.Legend(),
	}, nil
}

// BuildMergedBoundaries attaches the statistics of every district to its boundary.
func (r *Runner) BuildMergedBoundaries(ctx context.Context, cfg *contract.Config) (schema.GeoFeatureCollection, error) {
	if cfg.BoundariesPath == "" {
		return schema.GeoFeatureCollection{}, ErrNoBoundaries
	}
	ctx = r.beginRun(ctx, cfg, CommandMerge)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.GeoFeatureCollection{}, err
	}
	result := r.aggregate(ctx, in, cfg.Criteria)

	merged := geo.Merge(*in.dataset.Boundaries, result.ByDistrict)
	if unmatched := geo.Unmatched(*in.dataset.Boundaries, result.ByDistrict); len(unmatched) > 0 {
		contract.LogWarn("Some districts have no boundary", fmt.Errorf("unmatched districts %v", unmatched))
	}
	r.endRun(ctx, len(in.records))
	return merged, nil
}

// BuildEvolutionReport compares every district between the base and comparison years.
// A zero base year selects the first year of the data and a zero comparison year the last.
// The year criterion is ignored since the comparison spans years.
func (r *Runner) BuildEvolutionReport(ctx context.Context, cfg *contract.Config) (schema.EvolutionReport, error) {
	criteria := cfg.Criteria
	criteria.Year = nil

	ctx = r.beginRun(ctx, cfg, CommandEvolution)
	in, err := r.prepare(ctx, cfg, criteria)
	if err != nil {
		return schema.EvolutionReport{}, err
	}
	result := r.aggregate(ctx, in, criteria)

	baseYear, comparisonYear := cfg.BaseYear, cfg.ComparisonYear
	if baseYear == 0 || comparisonYear == 0 {
		if len(result.Years) == 0 {
			return schema.EvolutionReport{}, errors.New("no dated incidents to compare")
		}
		if baseYear == 0 {
			baseYear = result.Years[0]
		}
		if comparisonYear == 0 {
			comparisonYear = result.Years[len(result.Years)-1]
		}
	}

	category := criteria.Category
	if category == "" {
		category = schema.AllFilter
	}
	report, err := algo.ComputeEvolution(result.ByDistrict, baseYear, comparisonYear, category)
	if err != nil {
		return schema.EvolutionReport{}, fmt.Errorf("failed to compute evolution %d to %d: %w", baseYear, comparisonYear, err)
	}
	algo.SortEvolution(&report, cfg.EvolutionSort)
	r.endRun(ctx, len(in.records))
	return report, nil
}

// BuildCorrelationReport computes the category by period deviation matrix.
// The category limit selects the matrix rows while the grand total keeps every
// filtered record, so expectations stay relative to the whole population.
func (r *Runner) BuildCorrelationReport(ctx context.Context, cfg *contract.Config) (schema.CorrelationReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandCorrelation)
	criteria := cfg.Criteria
	categoryLimit := criteria.CategoryCountLimit
	criteria.CategoryCountLimit = 0
	in, err := r.prepare(ctx, cfg, criteria)
	if err != nil {
		return schema.CorrelationReport{}, err
	}

	report := algo.AnalyzeCorrelations(in.records, cfg.PeriodType, categoryLimit)
	r.endRun(ctx, len(in.records))
	return report, nil
}

// BuildImpactReport scores every category and keeps the top ones.
// Insights are computed over every score before truncation.
func (r *Runner) BuildImpactReport(ctx context.Context, cfg *contract.Config) (schema.ImpactReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandImpact)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.ImpactReport{}, err
	}

	rules := cfg.Severity
	if len(rules) == 0 {
		rules = algo.DefaultSeverityRules()
	}
	weights := cfg.ImpactWeights
	if len(weights) == 0 {
		weights = schema.GetDefaultImpactWeights()
	}
	scores := algo.ComputeImpactScoresWithWeights(in.records, rules, cfg.MetricType, weights)

	year := schema.AllFilter
	if cfg.Criteria.Year != nil {
		year = fmt.Sprint(*cfg.Criteria.Year)
	}
	report := schema.ImpactReport{
		MetricType: cfg.MetricType,
		Year:       year,
		Scores:     algo.RankImpact(scores, cfg.ResultLimit),
		Insights:   algo.ImpactInsights(scores),
	}

	r.recordImpact(ctx, cfg.MetricType, report.Scores)
	r.endRun(ctx, len(in.records))
	return report, nil
}

// BuildTrendReport classifies the trend of every category over time.
func (r *Runner) BuildTrendReport(ctx context.Context, cfg *contract.Config) (schema.TrendReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandTrends)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.TrendReport{}, err
	}

	report := algo.ClassifyCategoryTrends(agg.BuildTimeSeries(in.records, cfg.Aggregation))
	if cfg.ResultLimit > 0 && len(report.Trends) > cfg.ResultLimit {
		report.Trends = report.Trends[:cfg.ResultLimit]
	}
	report.Composition = algo.CategoryComposition(in.records, cfg.Display)
	report.Shifts = agg.ShiftSeries(in.records)
	r.endRun(ctx, len(in.records))
	return report, nil
}

// BuildSeasonalAggregate distributes the filtered records over months and seasons.
func (r *Runner) BuildSeasonalAggregate(ctx context.Context, cfg *contract.Config) (schema.SeasonalAggregate, error) {
	ctx = r.beginRun(ctx, cfg, CommandSeasonal)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.SeasonalAggregate{}, err
	}

	aggregate := algo.AggregateSeasonal(in.records)
	r.endRun(ctx, len(in.records))
	return aggregate, nil
}

// BuildHeatmapReport extracts the weighted location of every filtered record that has one.
func (r *Runner) BuildHeatmapReport(ctx context.Context, cfg *contract.Config) (schema.HeatmapReport, error) {
	ctx = r.beginRun(ctx, cfg, CommandHeatmap)
	in, err := r.prepare(ctx, cfg, cfg.Criteria)
	if err != nil {
		return schema.HeatmapReport{}, err
	}

	points := geo.HeatPoints(in.records)
	r.endRun(ctx, len(in.records))
	return schema.HeatmapReport{
		Criteria: cfg.Criteria.String(),
		Records:  len(in.records),
		Bounds:   geo.HeatPointBounds(points),
		Points:   points,
	}, nil
}
