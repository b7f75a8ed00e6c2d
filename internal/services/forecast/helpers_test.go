package forecast_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Lviv, 2025-07-14 (Monday), UTC+3.
var (
	testOffset   = 3 * time.Hour
	testZone     = time.FixedZone("Europe/Kyiv", int(testOffset.Seconds()))
	testMidnight = time.Date(2025, 7, 14, 0, 0, 0, 0, testZone)
)

type fixture struct {
	Latitude         float64        `json:"latitude"`
	Longitude        float64        `json:"longitude"`
	UTCOffsetSeconds int            `json:"utc_offset_seconds"`
	Timezone         string         `json:"timezone"`
	Current          map[string]any `json:"current"`
	Hourly           map[string]any `json:"hourly"`
	Daily            map[string]any `json:"daily"`
}

func newFixture(hours, days int) fixture {
	hourlyTimes := make([]int64, hours)
	hourlyTemps := make([]float64, hours)
	for i := range hours {
		hourlyTimes[i] = testMidnight.Add(time.Duration(i) * time.Hour).Unix()
		hourlyTemps[i] = 15 + float64(i%24)/2
	}

	dailyTimes := make([]int64, days)
	dailyTemps := make([]float64, days)
	for i := range days {
		dailyTimes[i] = testMidnight.AddDate(0, 0, i).Unix()
		dailyTemps[i] = 20.7 - float64(i)
	}

	return fixture{
		Latitude:         49.84,
		Longitude:        24.03,
		UTCOffsetSeconds: int(testOffset.Seconds()),
		Timezone:         "Europe/Kyiv",
		Current: map[string]any{
			"time":           testMidnight.Add(14*time.Hour + 15*time.Minute).Unix(),
			"interval":       900,
			"temperature_2m": 23.6,
			"weather_code":   61,
		},
		Hourly: map[string]any{
			"time":           hourlyTimes,
			"temperature_2m": hourlyTemps,
		},
		Daily: map[string]any{
			"time":                dailyTimes,
			"temperature_2m_mean": dailyTemps,
		},
	}
}

func (f fixture) JSON(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(f)
	require.NoError(t, err)
	return b
}
