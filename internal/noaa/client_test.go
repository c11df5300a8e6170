package noaa

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/climata/pkg/httputil"
	"github.com/wonny/climata/pkg/logger"
	"github.com/wonny/climata/pkg/params"
)

func testRequest() Request {
	return Request{
		Dataset:   "GHCND",
		Station:   "GHCND:USW00094728",
		Datatypes: []string{"TMAX", "TMIN"},
		Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestDailySummaries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("token"))

		q := r.URL.Query()
		assert.Equal(t, "GHCND", q.Get("datasetid"))
		assert.Equal(t, "GHCND:USW00094728", q.Get("stationid"))
		assert.Equal(t, []string{"TMAX", "TMIN"}, q["datatypeid"])
		assert.Equal(t, "2024-01-01", q.Get("startdate"))
		assert.Equal(t, "2024-01-02", q.Get("enddate"))
		assert.Equal(t, "metric", q.Get("units"))

		fmt.Fprint(w, `{
			"metadata": {"resultset": {"offset": 1, "count": 4, "limit": 1000}},
			"results": [
				{"date": "2024-01-01T00:00:00", "datatype": "TMAX", "station": "GHCND:USW00094728", "value": 7.2},
				{"date": "2024-01-01T00:00:00", "datatype": "TMIN", "station": "GHCND:USW00094728", "value": -1.1},
				{"date": "2024-01-02T00:00:00", "datatype": "TMAX", "station": "GHCND:USW00094728", "value": 5.0},
				{"date": "2024-01-02T00:00:00", "datatype": "TMIN", "station": "GHCND:USW00094728", "value": -3.4}
			]
		}`)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "secret-token")

	readings, err := client.DailySummaries(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, readings, 4)

	assert.Equal(t, "GHCND:USW00094728", readings[0].Station)
	assert.Equal(t, "TMAX", readings[0].Datatype)
	assert.Equal(t, 7.2, readings[0].Value)
	assert.Equal(t, "2024-01-01", readings[0].Date.Format("2006-01-02"))
}

// The shipped params.yaml carries the CDO base URL without a trailing
// endpoint segment; the client appends /data itself. This loads the real
// shipped file so the two cannot drift apart.
func TestShippedConfigEndpointPath(t *testing.T) {
	p, err := params.Load(filepath.Join("..", "..", "params.yaml"))
	require.NoError(t, err)

	base, err := url.Parse(p.Data.URL)
	require.NoError(t, err)
	require.False(t, strings.HasSuffix(base.Path, "/data"),
		"shipped data.url must not include the /data endpoint")

	var seenPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		fmt.Fprint(w, `{"metadata": {"resultset": {"offset": 1, "count": 0, "limit": 1000}}}`)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL+base.Path, "secret-token")

	_, err = client.DailySummaries(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, base.Path+"/data", seenPath)
}

func TestDailySummariesPagination(t *testing.T) {
	// Two values per page, three pages total.
	const total = 6
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		require.NoError(t, err)

		fmt.Fprintf(w, `{"metadata": {"resultset": {"offset": %d, "count": %d, "limit": 1000}},
			"results": [
				{"date": "2024-01-%02dT00:00:00", "datatype": "TMAX", "station": "S", "value": 1},
				{"date": "2024-01-%02dT00:00:00", "datatype": "TMIN", "station": "S", "value": 2}
			]}`, offset, total, offset, offset)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "")

	readings, err := client.DailySummaries(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, readings, total)
}

func TestDailySummariesEmptyResultSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "")

	readings, err := client.DailySummaries(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestDailySummariesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "")

	_, err := client.DailySummaries(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 503")
}

func TestDailySummariesMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>rate limited</html>`)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "")

	_, err := client.DailySummaries(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestDailySummariesBadRecordDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"metadata": {"resultset": {"offset": 1, "count": 1, "limit": 1000}},
			"results": [{"date": "01/01/2024", "datatype": "TMAX", "station": "S", "value": 1}]}`)
	}))
	defer srv.Close()

	client := NewClient(httputil.New(logger.NewNop()), logger.NewNop(), srv.URL, "")

	_, err := client.DailySummaries(context.Background(), testRequest())
	assert.Error(t, err)
}
