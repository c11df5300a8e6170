package visualize

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

// Renderer is the third pipeline stage: it turns the metrics artifact into
// a raster scatter plot of the clustered temperature data.
type Renderer struct {
	params *params.Params
	logger *logger.Logger
}

// New creates a Renderer.
func New(p *params.Params, log *logger.Logger) *Renderer {
	return &Renderer{
		params: p,
		logger: log.WithField("stage", "visualize"),
	}
}

// Run executes the stage: one deterministic render at the configured
// dimensions, colormap, and DPI.
func (r *Renderer) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := artifact.ReadMetrics(r.params.Output.MetricsFile)
	if err != nil {
		return err
	}
	if m.NFeatures < 2 {
		return fmt.Errorf("scatter plot needs at least 2 features, metrics have %d", m.NFeatures)
	}
	if len(m.Labels) != len(m.DataPoints) {
		return fmt.Errorf("metrics artifact inconsistent: %d labels for %d data points",
			len(m.Labels), len(m.DataPoints))
	}

	viz := &r.params.Visualization
	colors, err := Colors(viz.Colormap, m.NClusters)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "K-Means Clustering of Temperature Data"
	p.X.Label.Text = fmt.Sprintf("%s (°C)", m.FeatureNames[0])
	p.Y.Label.Text = fmt.Sprintf("%s (°C)", m.FeatureNames[1])
	p.Add(plotter.NewGrid())

	// One scatter per cluster so each gets its own color and legend entry.
	for c := 0; c < m.NClusters; c++ {
		var xys plotter.XYs
		for i, point := range m.DataPoints {
			if m.Labels[i] == c {
				xys = append(xys, plotter.XY{X: point[0], Y: point[1]})
			}
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("build cluster %d scatter: %w", c, err)
		}
		scatter.GlyphStyle.Color = colors[c]
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("Cluster %d (n=%d)", c, m.ClusterSizes[c]), scatter)
	}

	centers, err := centersScatter(m.ClusterCenters)
	if err != nil {
		return err
	}
	p.Add(centers)
	p.Legend.Add("Centers", centers)

	return r.save(p)
}

// centersScatter marks the cluster centers with red crosses.
func centersScatter(centers [][]float64) (*plotter.Scatter, error) {
	var xys plotter.XYs
	for _, c := range centers {
		xys = append(xys, plotter.XY{X: c[0], Y: c[1]})
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("build centers scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(7)
	scatter.GlyphStyle.Shape = draw.CrossGlyph{}
	return scatter, nil
}

// save rasterizes the plot at the configured size and writes the PNG via
// temp-and-rename, like every other artifact.
func (r *Renderer) save(p *plot.Plot) error {
	viz := &r.params.Visualization
	path := r.params.Output.Visualization

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}

	// Pixel dimensions come out as inches x DPI exactly.
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(viz.FigureWidth)*vg.Inch, vg.Length(viz.FigureHeight)*vg.Inch),
		vgimg.UseDPI(int(viz.DPI)),
	)
	p.Draw(draw.New(canvas))

	tmp, err := os.CreateTemp(filepath.Dir(path), ".png-*")
	if err != nil {
		return fmt.Errorf("create temp plot: %w", err)
	}
	defer os.Remove(tmp.Name())

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode plot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp plot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	r.logger.WithFields(map[string]interface{}{
		"path": path,
		"dpi":  viz.DPI,
		"size": fmt.Sprintf("%gx%g in", viz.FigureWidth, viz.FigureHeight),
	}).Info("Visualization artifact written")

	return nil
}
