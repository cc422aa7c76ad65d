package types

// WeatherCode represents a WMO weather code
type WeatherCode int

// Weather represents weather conditions with a code and description
type Weather struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// UnknownWeather is returned for codes outside the table
const UnknownWeather = "Unknown"

const (
	ClearSky                   WeatherCode = 0
	MainlyClear                WeatherCode = 1
	PartlyCloudy               WeatherCode = 2
	Overcast                   WeatherCode = 3
	Fog                        WeatherCode = 45
	DepositingRimeFog          WeatherCode = 48
	DrizzleLight               WeatherCode = 51
	DrizzleModerate            WeatherCode = 53
	DrizzleDense               WeatherCode = 55
	FreezingDrizzleLight       WeatherCode = 56
	FreezingDrizzleDense       WeatherCode = 57
	RainSlight                 WeatherCode = 61
	RainModerate               WeatherCode = 63
	RainHeavy                  WeatherCode = 65
	FreezingRainLight          WeatherCode = 66
	FreezingRainHeavy          WeatherCode = 67
	SnowFallSlight             WeatherCode = 71
	SnowFallModerate           WeatherCode = 73
	SnowFallHeavy              WeatherCode = 75
	SnowGrains                 WeatherCode = 77
	RainShowersSlight          WeatherCode = 80
	RainShowersModerate        WeatherCode = 81
	RainShowersViolent         WeatherCode = 82
	SnowShowersSlight          WeatherCode = 85
	SnowShowersHeavy           WeatherCode = 86
	Thunderstorm               WeatherCode = 95
	ThunderstormWithSlightHail WeatherCode = 96
	ThunderstormWithHeavyHail  WeatherCode = 99
)

var weatherDescriptions = map[WeatherCode]string{
	ClearSky:                   "Clear sky",
	MainlyClear:                "Mainly clear",
	PartlyCloudy:               "Partly cloudy",
	Overcast:                   "Overcast",
	Fog:                        "Foggy",
	DepositingRimeFog:          "Depositing rime fog",
	DrizzleLight:               "Light drizzle",
	DrizzleModerate:            "Moderate drizzle",
	DrizzleDense:               "Dense drizzle",
	FreezingDrizzleLight:       "Light freezing drizzle",
	FreezingDrizzleDense:       "Dense freezing drizzle",
	RainSlight:                 "Slight rain",
	RainModerate:               "Moderate rain",
	RainHeavy:                  "Heavy rain",
	FreezingRainLight:          "Light freezing rain",
	FreezingRainHeavy:          "Heavy freezing rain",
	SnowFallSlight:             "Slight snow fall",
	SnowFallModerate:           "Moderate snow fall",
	SnowFallHeavy:              "Heavy snow fall",
	SnowGrains:                 "Snow grains",
	RainShowersSlight:          "Slight rain showers",
	RainShowersModerate:        "Moderate rain showers",
	RainShowersViolent:         "Violent rain showers",
	SnowShowersSlight:          "Slight snow showers",
	SnowShowersHeavy:           "Heavy snow showers",
	Thunderstorm:               "Thunderstorm",
	ThunderstormWithSlightHail: "Thunderstorm with slight hail",
	ThunderstormWithHeavyHail:  "Thunderstorm with heavy hail",
}

// DescribeWeatherCode returns the label for a WMO code, or "Unknown"
func DescribeWeatherCode(code int) string {
	if desc, ok := weatherDescriptions[WeatherCode(code)]; ok {
		return desc
	}
	return UnknownWeather
}

func (c WeatherCode) String() string {
	return DescribeWeatherCode(int(c))
}

// NewWeather creates a Weather instance from a weather code
func NewWeather(code int) Weather {
	return Weather{
		Code:        code,
		Description: DescribeWeatherCode(code),
	}
}
