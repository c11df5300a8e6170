package collect

import (
	"context"
	"fmt"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/internal/noaa"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

// Source supplies daily summaries for one station. The NOAA client and the
// synthetic generator both satisfy it.
type Source interface {
	DailySummaries(ctx context.Context, req noaa.Request) ([]artifact.Reading, error)
}

// Archive persists collected readings outside the pipeline artifact, for
// ad-hoc inspection. Optional.
type Archive interface {
	SaveReadings(ctx context.Context, readings []artifact.Reading) (int64, error)
}

// Collector is the first pipeline stage: it pulls daily temperature
// summaries for every configured station and writes the raw CSV artifact.
// ⭐ SSOT: 데이터 수집 오케스트레이션은 이 패키지에서만
type Collector struct {
	source  Source
	params  *params.Params
	archive Archive
	logger  *logger.Logger
}

// New creates a Collector.
func New(source Source, p *params.Params, log *logger.Logger) *Collector {
	return &Collector{
		source: source,
		params: p,
		logger: log.WithField("stage", "collect"),
	}
}

// WithArchive attaches the optional readings archive.
func (c *Collector) WithArchive(a Archive) *Collector {
	c.archive = a
	return c
}

// Run executes the stage. Any request or write failure aborts the whole
// run: there is no partial-success policy and no retry here.
func (c *Collector) Run(ctx context.Context) error {
	data := &c.params.Data

	dates, err := data.Dates()
	if err != nil {
		return err
	}
	start, end := dates[0], dates[len(dates)-1]

	c.logger.WithFields(map[string]interface{}{
		"mode":      data.Mode,
		"stations":  len(data.Stations),
		"datatypes": data.Datatypes,
		"days":      len(dates),
		"from":      data.StartDate,
		"to":        data.EndDate,
	}).Info("Starting collection")

	var readings []artifact.Reading
	for _, station := range data.Stations {
		got, err := c.source.DailySummaries(ctx, noaa.Request{
			Dataset:   data.Dataset,
			Station:   station,
			Datatypes: data.Datatypes,
			Start:     start,
			End:       end,
		})
		if err != nil {
			return fmt.Errorf("collect station %s: %w", station, err)
		}
		readings = append(readings, got...)
	}

	if err := artifact.WriteReadingsCSV(c.params.Output.InputData, readings); err != nil {
		return fmt.Errorf("write raw artifact: %w", err)
	}

	if c.archive != nil {
		saved, err := c.archive.SaveReadings(ctx, readings)
		if err != nil {
			return fmt.Errorf("archive readings: %w", err)
		}
		c.logger.WithField("rows", saved).Info("Readings archived")
	}

	c.logger.WithFields(map[string]interface{}{
		"rows": len(readings),
		"path": c.params.Output.InputData,
	}).Info("Raw artifact written")

	return nil
}
