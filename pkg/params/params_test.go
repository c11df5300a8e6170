package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `data:
  mode: api
  url: https://www.ncei.noaa.gov/cdo-web/api/v2
  dataset: GHCND
  stations:
    - GHCND:USW00094728
    - GHCND:USW00023174
  start_date: "2024-01-01"
  end_date: "2024-01-31"
  datatypes:
    - TMAX
    - TMIN
clustering:
  n_clusters: 3
  random_state: 42
  max_iter: 300
  n_init: 10
visualization:
  figure_width: 14
  figure_height: 6
  dpi: 100
  colormap: rainbow
output:
  input_data: data/temperature_data.csv
  metrics_file: metrics/clustering_metrics.json
  visualization: plots/clusters.png
`

func writeParams(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writeParams(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ModeAPI, p.Data.Mode)
	assert.Len(t, p.Data.Stations, 2)
	assert.Equal(t, []string{"TMAX", "TMIN"}, p.Data.Datatypes)
	assert.Equal(t, 3, p.Clustering.NClusters)
	assert.Equal(t, int64(42), p.Clustering.RandomState)
	assert.Equal(t, 100.0, p.Visualization.DPI)
	assert.Equal(t, "plots/clusters.png", p.Output.Visualization)
}

func TestLoadUnknownField(t *testing.T) {
	// Strict decoding rejects typos instead of silently ignoring them.
	_, err := Load(writeParams(t, validYAML+"extra_group:\n  key: 1\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func(t *testing.T) *Params {
		p, err := Load(writeParams(t, validYAML))
		require.NoError(t, err)
		return p
	}

	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"unknown mode", func(p *Params) { p.Data.Mode = "ftp" }, "data.mode"},
		{"no stations", func(p *Params) { p.Data.Stations = nil }, "data.stations"},
		{"no datatypes", func(p *Params) { p.Data.Datatypes = nil }, "data.datatypes"},
		{"reversed range", func(p *Params) { p.Data.StartDate = "2024-02-01" }, "data.start_date"},
		{"bad date", func(p *Params) { p.Data.EndDate = "Jan 31" }, "data.start_date/end_date"},
		{"one cluster", func(p *Params) { p.Clustering.NClusters = 1 }, "clustering.n_clusters"},
		{"zero iterations", func(p *Params) { p.Clustering.MaxIter = 0 }, "clustering.max_iter"},
		{"zero inits", func(p *Params) { p.Clustering.NInit = 0 }, "clustering.n_init"},
		{"zero dpi", func(p *Params) { p.Visualization.DPI = 0 }, "visualization.dpi"},
		{"negative width", func(p *Params) { p.Visualization.FigureWidth = -1 }, "visualization.figure_width/figure_height"},
		{"no colormap", func(p *Params) { p.Visualization.Colormap = "" }, "visualization.colormap"},
		{"no metrics path", func(p *Params) { p.Output.MetricsFile = "" }, "output.metrics_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base(t)
			tt.mutate(p)

			err := Validate(p)
			require.Error(t, err)

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestHashStable(t *testing.T) {
	p1, err := Load(writeParams(t, validYAML))
	require.NoError(t, err)
	p2, err := Load(writeParams(t, validYAML))
	require.NoError(t, err)

	h1, err := Hash(p1)
	require.NoError(t, err)
	h2, err := Hash(p2)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	// Any parameter change must change the hash.
	p2.Clustering.NClusters = 4
	h3, err := Hash(p2)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestDates(t *testing.T) {
	d := Data{StartDate: "2024-01-30", EndDate: "2024-02-02"}

	dates, err := d.Dates()
	require.NoError(t, err)
	require.Len(t, dates, 4)
	assert.Equal(t, "2024-01-30", dates[0].Format("2006-01-02"))
	assert.Equal(t, "2024-02-02", dates[3].Format("2006-01-02"))
}

func TestDatesSingleDay(t *testing.T) {
	d := Data{StartDate: "2024-01-15", EndDate: "2024-01-15"}

	dates, err := d.Dates()
	require.NoError(t, err)
	assert.Len(t, dates, 1)
}
