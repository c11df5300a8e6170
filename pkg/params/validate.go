package params

import (
	"fmt"
)

// ValidationError 검증 실패 (스테이지 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (스테이지 중단)
func Validate(p *Params) error {
	// === data ===
	switch p.Data.Mode {
	case ModeAPI, ModeSynthetic:
	default:
		return ValidationError{"data.mode", `must be "api" or "synthetic"`}
	}
	if p.Data.Mode == ModeAPI && p.Data.URL == "" {
		return ValidationError{"data.url", "required in api mode"}
	}
	if p.Data.Mode == ModeAPI && p.Data.Dataset == "" {
		return ValidationError{"data.dataset", "required in api mode"}
	}
	if len(p.Data.Stations) == 0 {
		return ValidationError{"data.stations", "at least one station required"}
	}
	if len(p.Data.Datatypes) == 0 {
		return ValidationError{"data.datatypes", "at least one datatype required"}
	}
	start, end, err := p.Data.DateRange()
	if err != nil {
		return ValidationError{"data.start_date/end_date", err.Error()}
	}
	if start.After(end) {
		return ValidationError{"data.start_date", "must not be after end_date"}
	}

	// === clustering ===
	if p.Clustering.NClusters < 2 {
		return ValidationError{"clustering.n_clusters", "must be >= 2"}
	}
	if p.Clustering.MaxIter < 1 {
		return ValidationError{"clustering.max_iter", "must be >= 1"}
	}
	if p.Clustering.NInit < 1 {
		return ValidationError{"clustering.n_init", "must be >= 1"}
	}

	// === visualization ===
	if p.Visualization.FigureWidth <= 0 || p.Visualization.FigureHeight <= 0 {
		return ValidationError{"visualization.figure_width/figure_height", "must be > 0"}
	}
	if p.Visualization.DPI <= 0 {
		return ValidationError{"visualization.dpi", "must be > 0"}
	}
	if p.Visualization.Colormap == "" {
		return ValidationError{"visualization.colormap", "required"}
	}

	// === output ===
	if p.Output.InputData == "" {
		return ValidationError{"output.input_data", "required"}
	}
	if p.Output.MetricsFile == "" {
		return ValidationError{"output.metrics_file", "required"}
	}
	if p.Output.Visualization == "" {
		return ValidationError{"output.visualization", "required"}
	}

	return nil
}
