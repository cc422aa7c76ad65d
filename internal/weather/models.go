package weather

import (
	"time"

	"medi-map/internal/types"
)

// hourlyTimeLayout is the iso8601 layout Open-Meteo uses for local times
const hourlyTimeLayout = "2006-01-02T15:04"

// Conditions is one fetch of current conditions plus the hourly series
type Conditions struct {
	Timezone         string            `json:"timezone"`
	UtcOffsetSeconds int               `json:"utc_offset_seconds"`
	Current          CurrentConditions `json:"current"`
	Hourly           HourlySeries      `json:"hourly"`
	Sun              []SunTimes        `json:"sun,omitempty"`
}

// SunTimes holds one local date's sunrise and sunset
type SunTimes struct {
	Date    time.Time `json:"date"`
	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
}

type CurrentConditions struct {
	Time                time.Time           `json:"time"`
	Temperature         types.Temperature   `json:"temperature"`
	ApparentTemperature types.Temperature   `json:"apparent_temperature"`
	RelativeHumidity    float64             `json:"relative_humidity"`
	Precipitation       types.Precipitation `json:"precipitation"`
	Rain                types.Precipitation `json:"rain"`
	CloudCover          float64             `json:"cloud_cover"`
	Wind                types.Wind          `json:"wind"`
	Weather             types.Weather       `json:"weather"`
	IsDay               bool                `json:"is_day"`
}

// HourlySeries holds a shared time axis and one equally long value slice per
// parameter.
type HourlySeries struct {
	Time   []time.Time             `json:"time"`
	Values map[Parameter][]float64 `json:"values"`
}

// DailySummary aggregates one calendar day of hourly data. An aggregate is
// nil when its parameter was not fetched for that day.
type DailySummary struct {
	Date                        time.Time            `json:"date"`
	Hours                       int                  `json:"hours"`
	Weather                     *types.Weather       `json:"weather"`
	HighTemperature             *types.Temperature   `json:"high_temperature"`
	LowTemperature              *types.Temperature   `json:"low_temperature"`
	TotalPrecipitation          *types.Precipitation `json:"total_precipitation"`
	TotalRain                   *types.Precipitation `json:"total_rain"`
	TotalSnowfallCm             *float64             `json:"total_snowfall_cm"`
	MaxPrecipitationProbability *float64             `json:"max_precipitation_probability"`
	MaxWindSpeed                *types.WindSpeed     `json:"max_wind_speed"`
	MaxWindGusts                *types.WindSpeed     `json:"max_wind_gusts"`
	Sunrise                     *time.Time           `json:"sunrise,omitempty"`
	Sunset                      *time.Time           `json:"sunset,omitempty"`
}
