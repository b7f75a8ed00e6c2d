//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

func registerUpstreams(t *httpmock.MockTransport) {
	t.RegisterResponder(http.MethodGet, locatorURL+"/json",
		httpmock.NewStringResponder(http.StatusOK,
			`{"status":"success","lat":50.45,"lon":30.52,"city":"Kyiv","country":"Ukraine","timezone":"Europe/Kyiv"}`))
	t.RegisterResponder(http.MethodGet, forecastURL, httpmock.NewStringResponder(http.StatusOK, forecastBody()))
}

func forecastBody() string {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)

	times := make([]string, 24)
	temps := make([]string, 24)
	for i := range times {
		times[i] = fmt.Sprint(midnight.Add(time.Duration(i) * time.Hour).Unix())
		temps[i] = fmt.Sprintf("%d.7", i)
	}

	return fmt.Sprintf(`{
		"utc_offset_seconds": 0,
		"timezone": "GMT",
		"current": {"time": %d, "temperature_2m": -2.4, "weather_code": 71},
		"hourly": {"time": [%s], "temperature_2m": [%s]},
		"daily": {"time": [%d], "temperature_2m_mean": [-1.9]}
	}`, midnight.Unix(), strings.Join(times, ","), strings.Join(temps, ","), midnight.Unix())
}

func get(t *testing.T, path string) (int, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, testServerURL+path, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func(body io.ReadCloser) {
		assert.NoError(t, body.Close(), "Failed to close response body")
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestWeatherFlow(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		wantCode int
		contains string
	}{
		{name: "json", path: "/api/v1/weather", wantCode: http.StatusOK, contains: `"city":"Kyiv"`},
		{name: "page", path: "/weather", wantCode: http.StatusOK, contains: "Snow fall: Slight, moderate, and heavy intensity"},
		{name: "health", path: "/healthz", wantCode: http.StatusOK, contains: `"ok"`},
		{name: "metrics", path: "/metrics", wantCode: http.StatusOK, contains: "it_forecast_requests_total"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := get(t, tc.path)
			assert.Equal(t, tc.wantCode, code)
			assert.Contains(t, body, tc.contains)
		})
	}
}

func TestWeatherFlow_View(t *testing.T) {
	code, body := get(t, "/api/v1/weather")
	require.Equal(t, http.StatusOK, code)

	var view models.ForecastView
	require.NoError(t, json.Unmarshal([]byte(body), &view))

	assert.Equal(t, -2, view.CurrentTemp)
	require.Len(t, view.DailyForecast, 1)
	assert.Equal(t, -1, view.DailyForecast[0].Temp)

	hour, err := strconv.Atoi(view.Time[:2])
	require.NoError(t, err)
	assert.Len(t, view.HourlyForecast, 24-hour)
}

func TestWarmerKeepsCacheWarm(t *testing.T) {
	before := transport.GetCallCountInfo()["GET "+locatorURL+"/json"]

	assert.Eventually(t, func() bool {
		return transport.GetCallCountInfo()["GET "+locatorURL+"/json"] > before
	}, 3*time.Second, 100*time.Millisecond)
}
