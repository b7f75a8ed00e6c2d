package presenter

// WeatherCode is a WMO weather interpretation code as reported by Open-Meteo.
type WeatherCode int

const UnknownCondition = "Unknown weather condition"

var weatherDescriptions = map[WeatherCode]string{
	0: "Clear sky",

	1: "Mainly clear, partly cloudy, or overcast",
	2: "Mainly clear, partly cloudy, or overcast",
	3: "Mainly clear, partly cloudy, or overcast",

	45: "Fog and depositing rime fog",
	48: "Fog and depositing rime fog",

	51: "Drizzle: Light, moderate, and dense intensity",
	53: "Drizzle: Light, moderate, and dense intensity",
	55: "Drizzle: Light, moderate, and dense intensity",

	56: "Freezing Drizzle: Light and dense intensity",
	57: "Freezing Drizzle: Light and dense intensity",

	61: "Rain: Slight, moderate, and heavy intensity",
	63: "Rain: Slight, moderate, and heavy intensity",
	65: "Rain: Slight, moderate, and heavy intensity",

	66: "Freezing Rain: Light and heavy intensity",
	67: "Freezing Rain: Light and heavy intensity",

	71: "Snow fall: Slight, moderate, and heavy intensity",
	73: "Snow fall: Slight, moderate, and heavy intensity",
	75: "Snow fall: Slight, moderate, and heavy intensity",

	77: "Snow grains",

	80: "Rain showers: Slight, moderate, and violent",
	81: "Rain showers: Slight, moderate, and violent",
	82: "Rain showers: Slight, moderate, and violent",

	85: "Snow showers: Slight and heavy",
	86: "Snow showers: Slight and heavy",

	95: "Thunderstorm: Slight or moderate",

	96: "Thunderstorm with slight or heavy hail",
	99: "Thunderstorm with slight or heavy hail",
}

// Description returns the prose category, or UnknownCondition for codes
// outside the table.
func (c WeatherCode) Description() string {
	if d, ok := weatherDescriptions[c]; ok {
		return d
	}
	return UnknownCondition
}

func (c WeatherCode) Known() bool {
	_, ok := weatherDescriptions[c]
	return ok
}
