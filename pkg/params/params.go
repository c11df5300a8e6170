package params

import (
	"fmt"
	"time"
)

// DefaultPath is where every stage looks for the pipeline parameters.
// DVC tracks the same file, so a params change reruns the affected stages.
const DefaultPath = "params.yaml"

// Collection modes for the data group.
const (
	ModeAPI       = "api"
	ModeSynthetic = "synthetic"
)

// Params is the full parameter document shared by all pipeline stages.
// Loaded once per stage invocation and never mutated afterwards.
type Params struct {
	Data          Data          `yaml:"data" json:"data"`
	Clustering    Clustering    `yaml:"clustering" json:"clustering"`
	Visualization Visualization `yaml:"visualization" json:"visualization"`
	Output        Output        `yaml:"output" json:"output"`
}

// Data configures the collector stage.
type Data struct {
	// Mode selects the data source: "api" (NOAA CDO) or "synthetic".
	Mode      string   `yaml:"mode" json:"mode"`
	URL       string   `yaml:"url" json:"url"`
	Dataset   string   `yaml:"dataset" json:"dataset"`
	Stations  []string `yaml:"stations" json:"stations"`
	StartDate string   `yaml:"start_date" json:"start_date"`
	EndDate   string   `yaml:"end_date" json:"end_date"`
	Datatypes []string `yaml:"datatypes" json:"datatypes"`
}

// Clustering configures the processor stage.
type Clustering struct {
	NClusters   int   `yaml:"n_clusters" json:"n_clusters"`
	RandomState int64 `yaml:"random_state" json:"random_state"`
	MaxIter     int   `yaml:"max_iter" json:"max_iter"`
	NInit       int   `yaml:"n_init" json:"n_init"`
}

// Visualization configures the visualizer stage. Figure dimensions are in
// inches, matching the DPI setting for exact output pixel sizes.
type Visualization struct {
	FigureWidth  float64 `yaml:"figure_width" json:"figure_width"`
	FigureHeight float64 `yaml:"figure_height" json:"figure_height"`
	DPI          float64 `yaml:"dpi" json:"dpi"`
	Colormap     string  `yaml:"colormap" json:"colormap"`
}

// Output holds the artifact paths declared to DVC.
type Output struct {
	InputData     string `yaml:"input_data" json:"input_data"`
	MetricsFile   string `yaml:"metrics_file" json:"metrics_file"`
	Visualization string `yaml:"visualization" json:"visualization"`
}

const dateLayout = "2006-01-02"

// DateRange parses the configured start/end dates.
func (d *Data) DateRange() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, d.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start_date: %w", err)
	}
	end, err := time.Parse(dateLayout, d.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end_date: %w", err)
	}
	return start, end, nil
}

// Dates expands the configured range into individual days, inclusive.
func (d *Data) Dates() ([]time.Time, error) {
	start, end, err := d.DateRange()
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur)
	}
	return dates, nil
}
