package models

import "time"

type CurrentConditions struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	WeatherCode int       `json:"weather_code"`
}

// TimeSeries holds evenly spaced samples; len(Values) == (End-Start)/Interval.
type TimeSeries struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Interval time.Duration `json:"interval"`
	Values   []float64     `json:"values"`
}

// Len returns the number of samples in the series.
func (ts TimeSeries) Len() int {
	return len(ts.Values)
}

// At returns the timestamp of the i-th sample.
func (ts TimeSeries) At(i int) time.Time {
	return ts.Start.Add(time.Duration(i) * ts.Interval)
}

// Forecast is the decoded forecast service response.
type Forecast struct {
	Timezone  string            `json:"timezone"`
	UTCOffset time.Duration     `json:"utc_offset"`
	Current   CurrentConditions `json:"current"`
	Hourly    TimeSeries        `json:"hourly"`
	Daily     TimeSeries        `json:"daily"`
}

// Zone returns the fixed zone the forecast service resolved for the location.
func (f Forecast) Zone() *time.Location {
	name := f.Timezone
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, int(f.UTCOffset.Seconds()))
}
