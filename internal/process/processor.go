package process

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/internal/cluster"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

// Processor is the second pipeline stage: it turns the raw CSV artifact
// into feature vectors, clusters them, and writes the metrics artifact.
type Processor struct {
	params *params.Params
	logger *logger.Logger
}

// New creates a Processor.
func New(p *params.Params, log *logger.Logger) *Processor {
	return &Processor{
		params: p,
		logger: log.WithField("stage", "process"),
	}
}

// Run executes the stage. Metrics are computed in full before anything is
// written, so a failing run never leaves a partial metrics artifact.
func (p *Processor) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	readings, err := artifact.ReadReadingsCSV(p.params.Output.InputData)
	if err != nil {
		return err
	}

	features := BuildFeatures(readings, p.params.Data.Datatypes)
	p.logger.WithFields(map[string]interface{}{
		"rows":     len(readings),
		"samples":  len(features),
		"features": p.params.Data.Datatypes,
	}).Info("Loaded raw artifact")

	cl := &p.params.Clustering
	result, err := cluster.Run(features, cluster.Config{
		K:       cl.NClusters,
		Seed:    cl.RandomState,
		MaxIter: cl.MaxIter,
		NInit:   cl.NInit,
	})
	if err != nil {
		return fmt.Errorf("k-means: %w", err)
	}

	metrics := &artifact.Metrics{
		Algorithm:   "K-Means",
		NClusters:   cl.NClusters,
		NSamples:    len(features),
		NFeatures:   len(p.params.Data.Datatypes),
		RandomState: cl.RandomState,

		Inertia:               result.Inertia,
		SilhouetteScore:       cluster.Silhouette(features, result.Labels, cl.NClusters),
		DaviesBouldinScore:    cluster.DaviesBouldin(features, result.Labels, result.Centers),
		CalinskiHarabaszScore: cluster.CalinskiHarabasz(features, result.Labels, result.Centers),

		ClusterCenters: result.Centers,
		ClusterSizes:   cluster.Sizes(result.Labels, cl.NClusters),
		Labels:         result.Labels,
		DataPoints:     features,
		FeatureNames:   p.params.Data.Datatypes,
	}

	if err := artifact.WriteMetrics(p.params.Output.MetricsFile, metrics); err != nil {
		return err
	}

	p.logger.WithFields(map[string]interface{}{
		"silhouette":     metrics.SilhouetteScore,
		"davies_bouldin": metrics.DaviesBouldinScore,
		"inertia":        metrics.Inertia,
		"cluster_sizes":  metrics.ClusterSizes,
		"path":           p.params.Output.MetricsFile,
	}).Info("Metrics artifact written")

	return nil
}

// sampleKey identifies one feature vector: one station on one day.
type sampleKey struct {
	station string
	date    time.Time
}

// BuildFeatures pivots long-format readings into one feature vector per
// (station, date), with columns ordered by the configured datatype list.
// Tuples missing any configured datatype are dropped. Output order is
// deterministic: by station, then date.
func BuildFeatures(readings []artifact.Reading, datatypes []string) [][]float64 {
	col := make(map[string]int, len(datatypes))
	for i, dt := range datatypes {
		col[dt] = i
	}

	values := make(map[sampleKey][]float64)
	seen := make(map[sampleKey]int)
	for _, r := range readings {
		i, ok := col[r.Datatype]
		if !ok {
			continue
		}
		key := sampleKey{r.Station, r.Date}
		if _, ok := values[key]; !ok {
			values[key] = make([]float64, len(datatypes))
		}
		values[key][i] = r.Value
		seen[key] |= 1 << i
	}

	complete := 1<<len(datatypes) - 1
	keys := make([]sampleKey, 0, len(values))
	for key, mask := range seen {
		if mask == complete {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].station != keys[j].station {
			return keys[i].station < keys[j].station
		}
		return keys[i].date.Before(keys[j].date)
	})

	features := make([][]float64, 0, len(keys))
	for _, key := range keys {
		features = append(features, values[key])
	}
	return features
}
