package presenter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nazarious-ucu/local-forecast/internal/services/presenter"
)

func TestWeatherCode_Description(t *testing.T) {
	groups := map[string][]int{
		"Clear sky": {0},
		"Mainly clear, partly cloudy, or overcast":         {1, 2, 3},
		"Fog and depositing rime fog":                      {45, 48},
		"Drizzle: Light, moderate, and dense intensity":    {51, 53, 55},
		"Freezing Drizzle: Light and dense intensity":      {56, 57},
		"Rain: Slight, moderate, and heavy intensity":      {61, 63, 65},
		"Freezing Rain: Light and heavy intensity":         {66, 67},
		"Snow fall: Slight, moderate, and heavy intensity": {71, 73, 75},
		"Snow grains": {77},
		"Rain showers: Slight, moderate, and violent": {80, 81, 82},
		"Snow showers: Slight and heavy":              {85, 86},
		"Thunderstorm: Slight or moderate":            {95},
		"Thunderstorm with slight or heavy hail":      {96, 99},
	}

	known := map[int]string{}
	for desc, codes := range groups {
		for _, c := range codes {
			known[c] = desc
		}
	}

	for code := 0; code <= 99; code++ {
		want, ok := known[code]
		if !ok {
			want = presenter.UnknownCondition
		}
		assert.Equal(t, want, presenter.WeatherCode(code).Description(), "code %d", code)
		assert.Equal(t, ok, presenter.WeatherCode(code).Known(), "code %d", code)
	}
}

func TestWeatherCode_Examples(t *testing.T) {
	assert.Equal(t, "Rain: Slight, moderate, and heavy intensity", presenter.WeatherCode(61).Description())
	assert.Equal(t, "Unknown weather condition", presenter.WeatherCode(999).Description())
	assert.Equal(t, "Unknown weather condition", presenter.WeatherCode(-1).Description())
}
