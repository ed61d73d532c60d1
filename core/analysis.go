package core

import (
	"context"
	"errors"
	"time"

	"github.com/mtlpdq/pdqstats/core/filter"
	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoIncidents is returned when no incident file is configured.
var ErrNoIncidents = errors.New("an incident file is required (--incidents)")

// ErrNoBoundaries is returned when a command needs a boundary file and none is configured.
var ErrNoBoundaries = errors.New("a boundary file is required (--boundaries)")

// runInput is the loaded and filtered input of one run.
type runInput struct {
	dataset schema.Dataset
	records []schema.IncidentRecord
}

// loadDataset reads the incident file and, when configured, the boundary file concurrently.
func (r *Runner) loadDataset(ctx context.Context, cfg *contract.Config) (schema.Dataset, error) {
	if cfg.IncidentsPath == "" {
		return schema.Dataset{}, ErrNoIncidents
	}

	var (
		ds schema.Dataset
		fc schema.GeoFeatureCollection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds, err = r.loader.LoadIncidents(gctx, cfg.IncidentsPath, cfg.Location)
		return err
	})
	if cfg.BoundariesPath != "" {
		g.Go(func() error {
			var err error
			fc, err = r.loader.LoadBoundaries(gctx, cfg.BoundariesPath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return schema.Dataset{}, err
	}

	if cfg.BoundariesPath != "" {
		ds.Boundaries = &fc
	}
	log.Debug().
		Int("rows", ds.Rows).
		Int("malformed", ds.Malformed).
		Bool("boundaries", ds.Boundaries != nil).
		Msg("Loaded dataset")
	return ds, nil
}

// prepare loads the dataset and applies criteria to its records.
func (r *Runner) prepare(ctx context.Context, cfg *contract.Config, criteria filter.Criteria) (*runInput, error) {
	ds, err := r.loadDataset(ctx, cfg)
	if err != nil {
		return nil, err
	}
	records := filter.Apply(ds.Records, criteria)
	log.Debug().
		Str("criteria", criteria.String()).
		Int("kept", len(records)).
		Int("total", len(ds.Records)).
		Msg("Applied filters")
	return &runInput{dataset: ds, records: records}, nil
}

// aggregate rolls the filtered records up per district through the result cache.
func (r *Runner) aggregate(ctx context.Context, in *runInput, criteria filter.Criteria) schema.AggregationResult {
	return cachedAggregate(r.resultStore(), in.dataset.Digest, criteria, commandFromContext(ctx), in.records)
}

// resultStore returns the result cache, or nil when caching is disabled.
func (r *Runner) resultStore() contract.CacheStore {
	if r.mgr == nil {
		return nil
	}
	return r.mgr.GetResultStore()
}

// analysisStore returns the run store, or nil when tracking is disabled.
func (r *Runner) analysisStore() contract.AnalysisStore {
	if r.mgr == nil {
		return nil
	}
	return r.mgr.GetAnalysisStore()
}

// beginRun opens a tracked run for command. Tracking failures never fail the command.
func (r *Runner) beginRun(ctx context.Context, cfg *contract.Config, command string) context.Context {
	ctx = withCommand(ctx, command)
	store := r.analysisStore()
	if store == nil {
		return ctx
	}
	analysisID, err := store.BeginAnalysis(command, time.Now(), runParams(cfg, command))
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	if analysisID > 0 {
		ctx = withAnalysisID(ctx, analysisID)
	}
	return ctx
}

// endRun closes the tracked run of ctx, if any.
func (r *Runner) endRun(ctx context.Context, totalRecords int) {
	analysisID, ok := getAnalysisID(ctx)
	if !ok {
		return
	}
	if err := r.analysisStore().EndAnalysis(analysisID, time.Now(), totalRecords); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// recordDistricts stores ranked district rows on the tracked run of ctx, if any.
func (r *Runner) recordDistricts(ctx context.Context, rows []schema.DistrictResult) {
	analysisID, ok := getAnalysisID(ctx)
	if !ok {
		return
	}
	if err := r.analysisStore().RecordDistrictStats(analysisID, rows); err != nil {
		contract.LogWarn("Failed to record district stats", err)
	}
}

// recordImpact stores impact scores on the tracked run of ctx, if any.
func (r *Runner) recordImpact(ctx context.Context, metricType schema.MetricType, scores []schema.ImpactScore) {
	analysisID, ok := getAnalysisID(ctx)
	if !ok {
		return
	}
	if err := r.analysisStore().RecordImpactScores(analysisID, metricType, scores); err != nil {
		contract.LogWarn("Failed to record impact scores", err)
	}
}

// runParams is the configuration snapshot stored with a tracked run.
func runParams(cfg *contract.Config, command string) map[string]any {
	params := map[string]any{
		"command":      command,
		"incidents":    cfg.IncidentsPath,
		"criteria":     cfg.Criteria.String(),
		"result_limit": cfg.ResultLimit,
		"output":       string(cfg.Output),
	}
	if cfg.BoundariesPath != "" {
		params["boundaries"] = cfg.BoundariesPath
	}
	switch command {
	case CommandEvolution:
		params["base_year"] = cfg.BaseYear
		params["comparison_year"] = cfg.ComparisonYear
		params["sort"] = string(cfg.EvolutionSort)
	case CommandCorrelation:
		params["period_type"] = string(cfg.PeriodType)
	case CommandImpact:
		params["metric"] = string(cfg.MetricType)
		params["weights"] = cfg.ImpactWeights
	case CommandTrends:
		params["aggregation"] = string(cfg.Aggregation)
		params["display"] = string(cfg.Display)
	}
	return params
}
