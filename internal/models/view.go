package models

import "time"

type DayForecast struct {
	Day  string `json:"day"`
	Temp int    `json:"temp"`
}

type HourForecast struct {
	Time string `json:"time"`
	Temp int    `json:"temp"`
}

// ForecastView is the render model handed to the page template and the JSON API.
type ForecastView struct {
	Date           string         `json:"date"`
	Time           string         `json:"time"`
	Day            string         `json:"day"`
	CurrentTemp    int            `json:"current_temp"`
	WeatherCode    string         `json:"weather_code"`
	City           string         `json:"city"`
	DailyForecast  []DayForecast  `json:"daily_forecast"`
	HourlyForecast []HourForecast `json:"hourly_forecast"`

	GeneratedAt time.Time `json:"generated_at"`
	Stale       bool      `json:"stale"`
	StaleReason string    `json:"stale_reason,omitempty"`
}
