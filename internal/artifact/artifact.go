package artifact

import (
	"time"
)

// Reading is one temperature observation: a single (station, date, datatype)
// value as returned by the data source. The raw CSV artifact is an ordered
// sequence of these.
type Reading struct {
	Station  string
	Date     time.Time
	Datatype string
	Value    float64
}

// Metrics is the processor's output artifact: cluster assignments plus the
// quality scores, serialized as JSON. The visualizer consumes it read-only.
type Metrics struct {
	Algorithm   string `json:"algorithm"`
	NClusters   int    `json:"n_clusters"`
	NSamples    int    `json:"n_samples"`
	NFeatures   int    `json:"n_features"`
	RandomState int64  `json:"random_state"`

	// Quality metrics
	Inertia               float64 `json:"inertia"`
	SilhouetteScore       float64 `json:"silhouette_score"`
	DaviesBouldinScore    float64 `json:"davies_bouldin_score"`
	CalinskiHarabaszScore float64 `json:"calinski_harabasz_score"`

	// Cluster information
	ClusterCenters [][]float64 `json:"cluster_centers"`
	ClusterSizes   []int       `json:"cluster_sizes"`

	// Assignments and features for visualization
	Labels       []int       `json:"labels"`
	DataPoints   [][]float64 `json:"data_points"`
	FeatureNames []string    `json:"feature_names"`
}
