package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/climata/internal/artifact"
	"github.com/wonny/climata/pkg/httputil"
	"github.com/wonny/climata/pkg/logger"
)

// pageLimit is the maximum page size the CDO v2 API allows.
const pageLimit = 1000

// Client handles communication with the NOAA Climate Data Online v2 API
// ⭐ SSOT: NOAA API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a new NOAA CDO client. The HTTP client runs with
// retries disabled: any failed request is fatal for the collector run.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, token string) *Client {
	return &Client{
		httpClient: httpClient.DisableRetry(),
		logger:     log.WithField("module", "noaa"),
		baseURL:    baseURL,
		token:      token,
	}
}

// Request describes one daily-summaries query for a single station.
type Request struct {
	Dataset   string
	Station   string
	Datatypes []string
	Start     time.Time
	End       time.Time
}

// DailySummaries fetches all daily values for the request, following the
// API's pagination until the full result set is in hand.
func (c *Client) DailySummaries(ctx context.Context, req Request) ([]artifact.Reading, error) {
	var readings []artifact.Reading

	// CDO offsets are 1-based.
	offset := 1
	for {
		page, err := c.fetchPage(ctx, req, offset)
		if err != nil {
			return nil, err
		}

		for _, rec := range page.Results {
			reading, err := rec.toReading()
			if err != nil {
				return nil, fmt.Errorf("station %s: %w", req.Station, err)
			}
			readings = append(readings, reading)
		}

		count := page.Metadata.Resultset.Count
		if offset+len(page.Results) > count || len(page.Results) == 0 {
			break
		}
		offset += len(page.Results)
	}

	c.logger.WithFields(map[string]interface{}{
		"station":  req.Station,
		"readings": len(readings),
	}).Debug("Fetched daily summaries")

	return readings, nil
}

// fetchPage requests a single page of results.
func (c *Client) fetchPage(ctx context.Context, req Request, offset int) (*dataResponse, error) {
	params := url.Values{}
	params.Set("datasetid", req.Dataset)
	params.Set("stationid", req.Station)
	params.Set("startdate", req.Start.Format("2006-01-02"))
	params.Set("enddate", req.End.Format("2006-01-02"))
	for _, dt := range req.Datatypes {
		params.Add("datatypeid", dt)
	}
	params.Set("units", "metric")
	params.Set("limit", strconv.Itoa(pageLimit))
	params.Set("offset", strconv.Itoa(offset))

	fullURL := fmt.Sprintf("%s/data?%s", c.baseURL, params.Encode())

	headers := map[string]string{}
	if c.token != "" {
		headers["token"] = c.token
	}

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, headers)
	if err != nil {
		return nil, fmt.Errorf("request daily summaries for %s: %w", req.Station, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station %s: unexpected status code %d", req.Station, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var page dataResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("station %s: malformed response: %w", req.Station, err)
	}

	return &page, nil
}
