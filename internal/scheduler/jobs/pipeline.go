package jobs

import (
	"context"

	"github.com/wonny/climata/internal/pipeline"
	"github.com/wonny/climata/pkg/logger"
)

// PipelineJob runs the full collect -> process -> visualize pipeline on a
// cron schedule.
// ⭐ SSOT: 파이프라인 스케줄은 이 Job에서만
type PipelineJob struct {
	runner   *pipeline.Runner
	logger   *logger.Logger
	schedule string
}

// NewPipelineJob creates a pipeline job with the given cron expression
// (six-field, with seconds).
func NewPipelineJob(runner *pipeline.Runner, log *logger.Logger, schedule string) *PipelineJob {
	return &PipelineJob{
		runner:   runner,
		logger:   log,
		schedule: schedule,
	}
}

// Name returns the job name
func (j *PipelineJob) Name() string {
	return "pipeline"
}

// Schedule returns the cron schedule expression
func (j *PipelineJob) Schedule() string {
	return j.schedule
}

// Run executes the full pipeline
func (j *PipelineJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled pipeline run")
	return j.runner.Run(ctx)
}
