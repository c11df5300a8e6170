package visualize

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

func fixtureMetrics() *artifact.Metrics {
	return &artifact.Metrics{
		Algorithm:   "K-Means",
		NClusters:   3,
		NSamples:    6,
		NFeatures:   2,
		RandomState: 42,

		Inertia:               4.2,
		SilhouetteScore:       0.8,
		DaviesBouldinScore:    0.3,
		CalinskiHarabaszScore: 120.5,

		ClusterCenters: [][]float64{{-15, -23}, {15, 3}, {28, 23}},
		ClusterSizes:   []int{2, 2, 2},
		Labels:         []int{0, 0, 1, 1, 2, 2},
		DataPoints: [][]float64{
			{-16, -24}, {-14, -22},
			{14, 2}, {16, 4},
			{27, 22}, {29, 24},
		},
		FeatureNames: []string{"TMAX", "TMIN"},
	}
}

func testParams(t *testing.T, width, height, dpi float64, colormap string) *params.Params {
	t.Helper()
	dir := t.TempDir()
	p := &params.Params{
		Visualization: params.Visualization{
			FigureWidth:  width,
			FigureHeight: height,
			DPI:          dpi,
			Colormap:     colormap,
		},
		Output: params.Output{
			MetricsFile:   filepath.Join(dir, "metrics.json"),
			Visualization: filepath.Join(dir, "plots", "clusters.png"),
		},
	}
	require.NoError(t, artifact.WriteMetrics(p.Output.MetricsFile, fixtureMetrics()))
	return p
}

func TestRunExactPixelDimensions(t *testing.T) {
	p := testParams(t, 14, 6, 100, "rainbow")

	require.NoError(t, New(p, logger.NewNop()).Run(context.Background()))

	f, err := os.Open(p.Output.Visualization)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 1400, bounds.Dx()) // 14 in x 100 dpi
	assert.Equal(t, 600, bounds.Dy())  // 6 in x 100 dpi
}

func TestRunDeterministic(t *testing.T) {
	p := testParams(t, 8, 4, 72, "viridis")
	r := New(p, logger.NewNop())

	require.NoError(t, r.Run(context.Background()))
	first, err := os.ReadFile(p.Output.Visualization)
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background()))
	second, err := os.ReadFile(p.Output.Visualization)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunUnknownColormap(t *testing.T) {
	p := testParams(t, 8, 4, 72, "plasma-deluxe")

	err := New(p, logger.NewNop()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown colormap")

	_, statErr := os.Stat(p.Output.Visualization)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingMetrics(t *testing.T) {
	p := testParams(t, 8, 4, 72, "rainbow")
	require.NoError(t, os.Remove(p.Output.MetricsFile))

	err := New(p, logger.NewNop()).Run(context.Background())
	assert.Error(t, err)
}

func TestRunSingleFeatureRejected(t *testing.T) {
	p := testParams(t, 8, 4, 72, "rainbow")
	m := fixtureMetrics()
	m.NFeatures = 1
	require.NoError(t, artifact.WriteMetrics(p.Output.MetricsFile, m))

	err := New(p, logger.NewNop()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 features")
}

func TestColors(t *testing.T) {
	for _, name := range []string{"rainbow", "viridis", "kindlmann", "coolwarm", "blackbody"} {
		colors, err := Colors(name, 4)
		require.NoError(t, err, name)
		assert.Len(t, colors, 4, name)
	}

	_, err := Colors("nope", 3)
	assert.Error(t, err)
}
