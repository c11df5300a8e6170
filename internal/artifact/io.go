package artifact

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// csvHeader is the fixed column layout of the raw data artifact.
var csvHeader = []string{"station", "date", "datatype", "value"}

// WriteReadingsCSV writes the raw data artifact. The file is regenerated
// wholesale on every collector run: readings are staged to a temp file and
// renamed into place so a failed run never leaves a partial artifact.
func WriteReadingsCSV(path string, readings []Reading) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".csv-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range readings {
		row := []string{
			r.Station,
			r.Date.Format(dateLayout),
			r.Datatype,
			strconv.FormatFloat(r.Value, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// ReadReadingsCSV loads the raw data artifact.
func ReadReadingsCSV(path string) ([]Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw artifact: %w", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = len(csvHeader)

	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read raw artifact: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("raw artifact %s is empty", path)
	}
	for i, col := range csvHeader {
		if records[0][i] != col {
			return nil, fmt.Errorf("unexpected csv header %v in %s", records[0], path)
		}
	}

	readings := make([]Reading, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := time.Parse(dateLayout, rec[1])
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", rec[1], err)
		}
		value, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parse value %q: %w", rec[3], err)
		}
		readings = append(readings, Reading{
			Station:  rec[0],
			Date:     date,
			Datatype: rec[2],
			Value:    value,
		})
	}
	return readings, nil
}

// WriteMetrics writes the metrics artifact as indented JSON, again via
// temp-and-rename so a failed processor run never leaves partial metrics.
func WriteMetrics(path string, m *Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".metrics-*")
	if err != nil {
		return fmt.Errorf("create temp metrics: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write metrics: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp metrics: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}

// ReadMetrics loads the metrics artifact.
func ReadMetrics(path string) (*Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metrics artifact: %w", err)
	}

	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode metrics artifact: %w", err)
	}
	return &m, nil
}
