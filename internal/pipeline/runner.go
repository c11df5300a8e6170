package pipeline

import (
	"context"
	"fmt"

	"github.com/wonny/climata/internal/collect"
	"github.com/wonny/climata/internal/noaa"
	"github.com/wonny/climata/internal/process"
	"github.com/wonny/climata/internal/visualize"
	"github.com/wonny/climata/pkg/config"
	"github.com/wonny/climata/pkg/httputil"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

// Runner wires the three pipeline stages together. Stage sequencing and
// staleness tracking across processes belong to DVC; Runner only provides
// the in-process "run this stage now" surface the CLI and scheduler use.
type Runner struct {
	cfg     *config.Config
	params  *params.Params
	logger  *logger.Logger
	archive collect.Archive
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, p *params.Params, log *logger.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		params: p,
		logger: log,
	}
}

// WithArchive attaches the optional readings archive used by the collector.
func (r *Runner) WithArchive(a collect.Archive) *Runner {
	r.archive = a
	return r
}

// Collect runs the collector stage.
func (r *Runner) Collect(ctx context.Context) error {
	source, err := r.source()
	if err != nil {
		return err
	}

	c := collect.New(source, r.params, r.logger)
	if r.archive != nil {
		c = c.WithArchive(r.archive)
	}
	return c.Run(ctx)
}

// Process runs the processor stage.
func (r *Runner) Process(ctx context.Context) error {
	return process.New(r.params, r.logger).Run(ctx)
}

// Visualize runs the visualizer stage.
func (r *Runner) Visualize(ctx context.Context) error {
	return visualize.New(r.params, r.logger).Run(ctx)
}

// Run executes collect, process, and visualize in order, stopping at the
// first failure.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Collect(ctx); err != nil {
		return fmt.Errorf("collect stage: %w", err)
	}
	if err := r.Process(ctx); err != nil {
		return fmt.Errorf("process stage: %w", err)
	}
	if err := r.Visualize(ctx); err != nil {
		return fmt.Errorf("visualize stage: %w", err)
	}
	return nil
}

// source picks the collector's data source from the params.
func (r *Runner) source() (collect.Source, error) {
	switch r.params.Data.Mode {
	case params.ModeSynthetic:
		return collect.NewSyntheticSource(r.params.Data.Stations), nil
	case params.ModeAPI:
		if r.cfg.NOAA.Token == "" {
			return nil, fmt.Errorf("data mode %q requires NOAA_TOKEN", params.ModeAPI)
		}
		httpClient := httputil.New(r.logger).WithRateLimit(r.cfg.NOAA.RateLimit)
		return noaa.NewClient(httpClient, r.logger, r.params.Data.URL, r.cfg.NOAA.Token), nil
	default:
		return nil, fmt.Errorf("unknown data mode %q", r.params.Data.Mode)
	}
}
