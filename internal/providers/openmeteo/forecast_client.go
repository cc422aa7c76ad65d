package openmeteo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Sample request: https://api.open-meteo.com/v1/forecast?latitude=39.11&longitude=-107.65&current=temperature_2m,relative_humidity_2m&hourly=temperature_2m&timezone=auto&forecast_days=7

// CurrentVariables are requested for every lookup
var CurrentVariables = []string{
	"temperature_2m",
	"apparent_temperature",
	"relative_humidity_2m",
	"precipitation",
	"rain",
	"cloud_cover",
	"wind_speed_10m",
	"wind_gusts_10m",
	"wind_direction_10m",
	"weather_code",
	"is_day",
}

// DailyVariables are the daily aggregates requested alongside the hourly data
var DailyVariables = []string{"sunrise", "sunset"}

// ForecastRequest describes one forecast call
type ForecastRequest struct {
	Latitude     float64
	Longitude    float64
	Current      []string
	Hourly       []string
	Daily        []string
	ForecastDays int
	// Elevation overrides the digital elevation model used for statistical
	// downscaling. NaN disables downscaling; nil leaves the model default.
	Elevation *float64
	// Timezone defaults to "auto" which resolves the zone from the coordinate
	Timezone string
}

// GetForecast fetches current conditions, hourly and daily data for one coordinate
func (c *Client) GetForecast(ctx context.Context, r ForecastRequest) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.forecastURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	timezone := r.Timezone
	if timezone == "" {
		timezone = "auto"
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(r.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(r.Longitude, 'f', -1, 64))
	if len(r.Current) > 0 {
		q.Set("current", strings.Join(r.Current, ","))
	}
	if len(r.Hourly) > 0 {
		q.Set("hourly", strings.Join(r.Hourly, ","))
	}
	if len(r.Daily) > 0 {
		q.Set("daily", strings.Join(r.Daily, ","))
	}
	if r.Elevation != nil {
		if math.IsNaN(*r.Elevation) {
			q.Set("elevation", "nan")
		} else {
			q.Set("elevation", strconv.FormatFloat(*r.Elevation, 'f', -1, 64))
		}
	}
	q.Set("timezone", timezone)
	if r.ForecastDays > 0 {
		q.Set("forecast_days", strconv.Itoa(r.ForecastDays))
	}
	q.Set("timeformat", "iso8601")
	u.RawQuery = q.Encode()

	var apiResp ForecastAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}
