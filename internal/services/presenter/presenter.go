package presenter

import (
	"fmt"
	"time"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

const (
	hoursPerDay = 24
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// DailyForecast returns one entry per row of ts from the row holding local's
// date onward, with the short weekday name of the row's date in local's zone
// and the mean temperature truncated toward zero.
func DailyForecast(ts models.TimeSeries, local time.Time) []models.DayForecast {
	today := midnightOf(local)
	out := make([]models.DayForecast, 0, ts.Len())
	for i, v := range ts.Values {
		// mid-interval keeps the date stable when DST moves midnight by an hour
		day := ts.At(i).Add(ts.Interval / 2).In(local.Location())
		if midnightOf(day).Before(today) {
			continue
		}
		out = append(out, models.DayForecast{
			Day:  WeekdayOf(day).Short(),
			Temp: int(v),
		})
	}
	return out
}

// HourlyForecast returns entries for the clock hours from local's hour to 23.
// The sample for hour h sits at offset+h, where offset counts the intervals
// between ts.Start and local midnight. Hours the series does not cover are
// left out.
func HourlyForecast(ts models.TimeSeries, local time.Time) ([]models.HourForecast, error) {
	if ts.Len() > 0 && ts.Interval <= 0 {
		return nil, fmt.Errorf("hourly series has non-positive interval %s", ts.Interval)
	}

	var offset int
	if ts.Len() > 0 {
		offset = int(midnightOf(local).Sub(ts.Start) / ts.Interval)
	}

	out := make([]models.HourForecast, 0, hoursPerDay-local.Hour())
	for h := local.Hour(); h < hoursPerDay; h++ {
		idx := offset + h
		if idx < 0 {
			continue
		}
		if idx >= ts.Len() {
			break
		}
		out = append(out, models.HourForecast{
			Time: fmt.Sprintf("%02d:00", h),
			Temp: int(ts.Values[idx]),
		})
	}
	return out, nil
}

func midnightOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Build assembles the render model. now is converted to the forecast's zone so
// the date, weekday and current hour match the series the service returned.
func Build(now time.Time, loc models.Location, fc models.Forecast) (models.ForecastView, error) {
	zone := fc.Zone()
	local := now.In(zone)

	hourly, err := HourlyForecast(fc.Hourly, local)
	if err != nil {
		return models.ForecastView{}, fmt.Errorf("%w: %w", models.ErrFormatting, err)
	}

	day, err := WeekdayName(int(WeekdayOf(local)))
	if err != nil {
		return models.ForecastView{}, fmt.Errorf("%w: %w", models.ErrFormatting, err)
	}

	return models.ForecastView{
		Date:           local.Format(dateLayout),
		Time:           local.Format(clockLayout),
		Day:            day,
		CurrentTemp:    int(fc.Current.Temperature),
		WeatherCode:    WeatherCode(fc.Current.WeatherCode).Description(),
		City:           loc.City,
		DailyForecast:  DailyForecast(fc.Daily, local),
		HourlyForecast: hourly,
		GeneratedAt:    now.UTC(),
	}, nil
}
