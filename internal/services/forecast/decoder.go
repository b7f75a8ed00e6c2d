package forecast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

const (
	hourlyInterval = time.Hour
	dailyInterval  = 24 * time.Hour
	// daily timestamps are local midnights, so DST shifts a step by up to an hour
	dailyTolerance = time.Hour
)

type rawResponse struct {
	Timezone         string                     `json:"timezone"`
	UTCOffsetSeconds int                        `json:"utc_offset_seconds"`
	Current          map[string]json.RawMessage `json:"current"`
	Hourly           map[string]json.RawMessage `json:"hourly"`
	Daily            map[string]json.RawMessage `json:"daily"`
}

// Decode extracts current conditions, the hourly temperature series and the
// daily mean temperature series, looking every variable up by the name in p.
// Any deviation from the expected shape wraps models.ErrSchemaMismatch.
func Decode(body []byte, p Params) (models.Forecast, error) {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Forecast{}, schemaErr("invalid JSON: %v", err)
	}

	current, err := decodeCurrent(raw.Current, p)
	if err != nil {
		return models.Forecast{}, err
	}

	hourly, err := decodeSeries("hourly", raw.Hourly, p.HourlyTemperature, hourlyInterval, 0)
	if err != nil {
		return models.Forecast{}, err
	}

	daily, err := decodeSeries("daily", raw.Daily, p.DailyMeanTemp, dailyInterval, dailyTolerance)
	if err != nil {
		return models.Forecast{}, err
	}

	return models.Forecast{
		Timezone:  raw.Timezone,
		UTCOffset: time.Duration(raw.UTCOffsetSeconds) * time.Second,
		Current:   current,
		Hourly:    hourly,
		Daily:     daily,
	}, nil
}

func decodeCurrent(block map[string]json.RawMessage, p Params) (models.CurrentConditions, error) {
	if block == nil {
		return models.CurrentConditions{}, schemaErr("missing block %q", "current")
	}

	var ts int64
	if err := lookup(block, "current", "time", &ts); err != nil {
		return models.CurrentConditions{}, err
	}

	var temp *float64
	if err := lookup(block, "current", p.CurrentTemperature, &temp); err != nil {
		return models.CurrentConditions{}, err
	}
	if temp == nil {
		return models.CurrentConditions{}, schemaErr("current.%s is null", p.CurrentTemperature)
	}

	// weather codes arrive as JSON numbers, sometimes with a fractional part
	var code *float64
	if err := lookup(block, "current", p.CurrentWeatherCode, &code); err != nil {
		return models.CurrentConditions{}, err
	}
	if code == nil {
		return models.CurrentConditions{}, schemaErr("current.%s is null", p.CurrentWeatherCode)
	}

	return models.CurrentConditions{
		Time:        time.Unix(ts, 0).UTC(),
		Temperature: *temp,
		WeatherCode: int(*code),
	}, nil
}

func decodeSeries(
	name string,
	block map[string]json.RawMessage,
	variable string,
	natural, tolerance time.Duration,
) (models.TimeSeries, error) {
	if block == nil {
		return models.TimeSeries{}, schemaErr("missing block %q", name)
	}

	var times []int64
	if err := lookup(block, name, "time", &times); err != nil {
		return models.TimeSeries{}, err
	}

	var raw []*float64
	if err := lookup(block, name, variable, &raw); err != nil {
		return models.TimeSeries{}, err
	}

	if len(times) != len(raw) {
		return models.TimeSeries{}, schemaErr("%s.%s has %d values for %d timestamps",
			name, variable, len(raw), len(times))
	}

	values := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			return models.TimeSeries{}, schemaErr("%s.%s[%d] is null", name, variable, i)
		}
		values[i] = *v
	}

	if len(times) == 0 {
		return models.TimeSeries{Interval: natural, Values: values}, nil
	}

	// tolerant series keep their natural interval so a DST step at the head cannot skew it
	interval := natural
	if tolerance == 0 && len(times) > 1 {
		interval = time.Duration(times[1]-times[0]) * time.Second
	}
	if interval <= 0 {
		return models.TimeSeries{}, schemaErr("%s.time is not increasing", name)
	}

	for i := 1; i < len(times); i++ {
		step := time.Duration(times[i]-times[i-1]) * time.Second
		if step <= 0 || (step-interval).Abs() > tolerance {
			return models.TimeSeries{}, schemaErr("%s.time step %s at %d differs from %s",
				name, step, i, interval)
		}
	}

	start := time.Unix(times[0], 0).UTC()
	return models.TimeSeries{
		Start:    start,
		End:      start.Add(time.Duration(len(values)) * interval),
		Interval: interval,
		Values:   values,
	}, nil
}

func lookup(block map[string]json.RawMessage, blockName, key string, dst any) error {
	msg, ok := block[key]
	if !ok {
		return schemaErr("missing variable %s.%s", blockName, key)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return schemaErr("%s.%s: %v", blockName, key, err)
	}
	return nil
}

func schemaErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrSchemaMismatch, fmt.Sprintf(format, args...))
}
