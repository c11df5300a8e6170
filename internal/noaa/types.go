package noaa

import (
	"fmt"
	"time"

	"github.com/wonny/climata/internal/artifact"
)

// dataResponse mirrors the CDO v2 /data wire format.
type dataResponse struct {
	Metadata struct {
		Resultset struct {
			Offset int `json:"offset"`
			Count  int `json:"count"`
			Limit  int `json:"limit"`
		} `json:"resultset"`
	} `json:"metadata"`
	Results []dataRecord `json:"results"`
}

// dataRecord is one value in a /data response.
type dataRecord struct {
	Date       string  `json:"date"`
	Datatype   string  `json:"datatype"`
	Station    string  `json:"station"`
	Attributes string  `json:"attributes"`
	Value      float64 `json:"value"`
}

// recordDateLayout is the timestamp format CDO uses for daily values.
const recordDateLayout = "2006-01-02T15:04:05"

func (r dataRecord) toReading() (artifact.Reading, error) {
	date, err := time.Parse(recordDateLayout, r.Date)
	if err != nil {
		return artifact.Reading{}, fmt.Errorf("parse record date %q: %w", r.Date, err)
	}

	return artifact.Reading{
		Station:  r.Station,
		Date:     date,
		Datatype: r.Datatype,
		Value:    r.Value,
	}, nil
}
