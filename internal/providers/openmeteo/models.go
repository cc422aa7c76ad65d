package openmeteo

import (
	"encoding/json"
	"fmt"
)

type ForecastAPIResponse struct {
	Latitude             float64           `json:"latitude"`
	Longitude            float64           `json:"longitude"`
	GenerationtimeMs     float64           `json:"generationtime_ms"`
	UtcOffsetSeconds     int               `json:"utc_offset_seconds"`
	Timezone             string            `json:"timezone"`
	TimezoneAbbreviation string            `json:"timezone_abbreviation"`
	Elevation            float64           `json:"elevation"`
	CurrentUnits         map[string]string `json:"current_units"`
	Current              *CurrentAPIData   `json:"current"`
	HourlyUnits          map[string]string `json:"hourly_units"`
	Hourly               *HourlyAPIData    `json:"hourly"`
	DailyUnits           map[string]string `json:"daily_units"`
	Daily                *DailyAPIData     `json:"daily"`
}

type CurrentAPIData struct {
	Time                string  `json:"time"`
	Interval            int     `json:"interval"`
	Temperature2M       float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	RelativeHumidity2M  float64 `json:"relative_humidity_2m"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	CloudCover          float64 `json:"cloud_cover"`
	WindSpeed10M        float64 `json:"wind_speed_10m"`
	WindGusts10M        float64 `json:"wind_gusts_10m"`
	WindDirection10M    float64 `json:"wind_direction_10m"`
	WeatherCode         int     `json:"weather_code"`
	IsDay               int     `json:"is_day"`
}

// DailyAPIData holds local iso8601 times, one entry per forecast day
type DailyAPIData struct {
	Time    []string `json:"time"`
	Sunrise []string `json:"sunrise"`
	Sunset  []string `json:"sunset"`
}

// HourlyAPIData holds the shared time axis plus one series per requested
// variable. Missing samples (JSON null) decode to zero.
type HourlyAPIData struct {
	Time      []string
	Variables map[string][]float64
}

func (h *HourlyAPIData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	h.Variables = make(map[string][]float64, len(raw))
	for key, value := range raw {
		if key == "time" {
			if err := json.Unmarshal(value, &h.Time); err != nil {
				return fmt.Errorf("hourly time: %w", err)
			}
			continue
		}

		var series []*float64
		if err := json.Unmarshal(value, &series); err != nil {
			return fmt.Errorf("hourly %s: %w", key, err)
		}
		values := make([]float64, len(series))
		for i, v := range series {
			if v != nil {
				values[i] = *v
			}
		}
		h.Variables[key] = values
	}

	return nil
}

func (h HourlyAPIData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Variables)+1)
	out["time"] = h.Time
	for key, values := range h.Variables {
		out[key] = values
	}
	return json.Marshal(out)
}

type ElevationAPIResponse struct {
	Elevation []float64 `json:"elevation"`
}
