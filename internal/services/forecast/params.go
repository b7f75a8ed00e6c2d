package forecast

import (
	"net/url"
	"strconv"
	"strings"
)

// Params names the forecast variables to request. Decoding looks values up by
// these names, so the order they are sent in does not matter.
type Params struct {
	CurrentTemperature string
	CurrentWeatherCode string
	HourlyTemperature  string
	DailyMeanTemp      string
	Timezone           string
}

// DefaultParams requests current temperature and weather code, hourly
// temperature and daily mean temperature.
func DefaultParams(timezone string) Params {
	if timezone == "" {
		timezone = "auto"
	}
	return Params{
		CurrentTemperature: "temperature_2m",
		CurrentWeatherCode: "weather_code",
		HourlyTemperature:  "temperature_2m",
		DailyMeanTemp:      "temperature_2m_mean",
		Timezone:           timezone,
	}
}

// Query builds the forecast query string for the given coordinates.
// url.Values encodes keys sorted, which keeps the URL stable as a cache key.
func (p Params) Query(latitude, longitude float64) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	q.Set("current", strings.Join([]string{p.CurrentTemperature, p.CurrentWeatherCode}, ","))
	q.Set("hourly", p.HourlyTemperature)
	q.Set("daily", p.DailyMeanTemp)
	q.Set("timezone", p.Timezone)
	q.Set("timeformat", "unixtime")
	return q
}
