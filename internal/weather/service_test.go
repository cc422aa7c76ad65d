package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"medi-map/internal/config"
	"medi-map/internal/providers/openmeteo"
	"medi-map/internal/types"
)

type mockForecastProvider struct {
	response *openmeteo.ForecastAPIResponse
	err      error
	request  openmeteo.ForecastRequest
}

func (m *mockForecastProvider) GetForecast(ctx context.Context, r openmeteo.ForecastRequest) (*openmeteo.ForecastAPIResponse, error) {
	m.request = r
	return m.response, m.err
}

type mockTimezoneService struct {
	name string
	err  error
}

func (m mockTimezoneService) GetTimezone(latitude, longitude float64) (string, error) {
	return m.name, m.err
}

func (m mockTimezoneService) Location(latitude, longitude float64) (*time.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	return time.LoadLocation(m.name)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{ForecastDays: 3}}
}

// sampleResponse covers three days with two hours each
func sampleResponse() *openmeteo.ForecastAPIResponse {
	return &openmeteo.ForecastAPIResponse{
		Latitude:             39.12,
		Longitude:            -107.66,
		UtcOffsetSeconds:     -25200,
		Timezone:             "America/Denver",
		TimezoneAbbreviation: "MST",
		Current: &openmeteo.CurrentAPIData{
			Time:                "2025-01-15T10:30",
			Temperature2M:       -3.5,
			ApparentTemperature: -8,
			RelativeHumidity2M:  71,
			Precipitation:       0.5,
			Rain:                0,
			CloudCover:          88,
			WindSpeed10M:        14.4,
			WindGusts10M:        31.7,
			WindDirection10M:    270,
			WeatherCode:         71,
			IsDay:               1,
		},
		Hourly: &openmeteo.HourlyAPIData{
			Time: []string{
				"2025-01-15T00:00", "2025-01-15T01:00",
				"2025-01-16T00:00", "2025-01-16T01:00",
				"2025-01-17T00:00", "2025-01-17T01:00",
			},
			Variables: map[string][]float64{
				"temperature_2m": {-6, -4, -2, 1, 3, 5},
				"precipitation":  {0.5, 1.5, 0, 0, 0.25, 0.25},
				"weather_code":   {3, 71, 0, 1, 61, 95},
				"wind_speed_10m": {10, 20, 5, 5, 30, 15},
				"unrelated":      {1, 2, 3, 4, 5, 6},
			},
		},
		Daily: &openmeteo.DailyAPIData{
			Time:    []string{"2025-01-15", "2025-01-16", "2025-01-17"},
			Sunrise: []string{"2025-01-15T07:18", "2025-01-16T07:17", "2025-01-17T07:17"},
			Sunset:  []string{"2025-01-15T17:02", "2025-01-16T17:03", "2025-01-17T17:04"},
		},
	}
}

func TestWeatherService_GetConditions(t *testing.T) {
	provider := &mockForecastProvider{response: sampleResponse()}
	svc := NewWeatherServiceWithProvider(provider, nil, testConfig(), discardLogger())

	got, err := svc.GetConditions(context.Background(), types.NewCoords(39.11539, -107.6584))
	if err != nil {
		t.Fatalf("GetConditions() error = %v", err)
	}

	if provider.request.ForecastDays != 3 {
		t.Errorf("ForecastDays = %d, want 3", provider.request.ForecastDays)
	}
	if provider.request.Latitude != 39.11539 || provider.request.Longitude != -107.6584 {
		t.Errorf("request coords = %v, %v", provider.request.Latitude, provider.request.Longitude)
	}
	if len(provider.request.Hourly) != len(HourlyParameters) {
		t.Errorf("requested %d hourly variables, want %d", len(provider.request.Hourly), len(HourlyParameters))
	}

	denver, _ := time.LoadLocation("America/Denver")
	wantCurrent := CurrentConditions{
		Time:                time.Date(2025, 1, 15, 10, 30, 0, 0, denver),
		Temperature:         types.NewTemperatureFromCelsius(-3.5),
		ApparentTemperature: types.NewTemperatureFromCelsius(-8),
		RelativeHumidity:    71,
		Precipitation:       types.NewPrecipitationFromMm(0.5),
		Rain:                types.NewPrecipitationFromMm(0),
		CloudCover:          88,
		Wind:                types.NewWindFromKph(14.4, 31.7, 270),
		Weather:             types.Weather{Code: 71, Description: "Slight snow fall"},
		IsDay:               true,
	}
	timeEqual := cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })
	if diff := cmp.Diff(wantCurrent, got.Current, timeEqual); diff != "" {
		t.Errorf("Current mismatch (-want +got):\n%s", diff)
	}

	if got.Timezone != "America/Denver" {
		t.Errorf("Timezone = %q, want America/Denver", got.Timezone)
	}
	if got.Hourly.Len() != 6 {
		t.Errorf("Hourly.Len() = %d, want 6", got.Hourly.Len())
	}
	if _, ok := got.Hourly.Values["unrelated"]; ok {
		t.Error("unknown variables must be dropped from the series")
	}
	if got.Current.Wind.Direction.Cardinal != "W" {
		t.Errorf("Wind cardinal = %q, want W", got.Current.Wind.Direction.Cardinal)
	}

	if diff := cmp.Diff([]string{"sunrise", "sunset"}, provider.request.Daily); diff != "" {
		t.Errorf("daily variables mismatch (-want +got):\n%s", diff)
	}
	if provider.request.Elevation != nil {
		t.Errorf("Elevation = %v, want nil without an override", *provider.request.Elevation)
	}
	if len(got.Sun) != 3 {
		t.Fatalf("len(Sun) = %d, want 3", len(got.Sun))
	}
	wantSun := SunTimes{
		Date:    time.Date(2025, 1, 15, 0, 0, 0, 0, denver),
		Sunrise: time.Date(2025, 1, 15, 7, 18, 0, 0, denver),
		Sunset:  time.Date(2025, 1, 15, 17, 2, 0, 0, denver),
	}
	if diff := cmp.Diff(wantSun, got.Sun[0], timeEqual); diff != "" {
		t.Errorf("Sun[0] mismatch (-want +got):\n%s", diff)
	}
}

func TestWeatherService_GetConditions_ElevationOverride(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		want    float64
		wantNaN bool
	}{
		{name: "meters", opts: []Option{WithElevation(3100)}, want: 3100},
		{name: "nan", opts: []Option{WithElevation(math.NaN())}, wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockForecastProvider{response: sampleResponse()}
			svc := NewWeatherServiceWithProvider(provider, nil, testConfig(), discardLogger())

			if _, err := svc.GetConditions(context.Background(), types.NewCoords(39.1, -107.6), tt.opts...); err != nil {
				t.Fatalf("GetConditions() error = %v", err)
			}
			got := provider.request.Elevation
			if got == nil {
				t.Fatal("Elevation = nil, want an override")
			}
			if tt.wantNaN != math.IsNaN(*got) || (!tt.wantNaN && *got != tt.want) {
				t.Errorf("Elevation = %v, want %v (nan %v)", *got, tt.want, tt.wantNaN)
			}
		})
	}
}

func TestWeatherService_GetConditions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		coords   types.Coords
		response *openmeteo.ForecastAPIResponse
		err      error
		opts     []Option
		wantErr  error
	}{
		{
			name:    "invalid coordinate issues no request",
			coords:  types.NewCoords(0, 181),
			wantErr: types.ErrInvalidCoordinate,
		},
		{
			name:   "provider error",
			coords: types.NewCoords(1, 1),
			err:    &openmeteo.StatusError{StatusCode: 500, Body: "boom"},
		},
		{
			name:     "missing current block",
			coords:   types.NewCoords(1, 1),
			response: &openmeteo.ForecastAPIResponse{Timezone: "UTC"},
		},
		{
			name:   "unparsable current time",
			coords: types.NewCoords(1, 1),
			response: &openmeteo.ForecastAPIResponse{
				Timezone: "UTC",
				Current:  &openmeteo.CurrentAPIData{Time: "2025-01-15 10:00:00"},
			},
		},
		{
			name:    "infinite elevation override",
			coords:  types.NewCoords(1, 1),
			opts:    []Option{WithElevation(math.Inf(1))},
			wantErr: ErrInvalidElevation,
		},
		{
			name:   "ragged sunrise",
			coords: types.NewCoords(1, 1),
			response: &openmeteo.ForecastAPIResponse{
				Timezone: "UTC",
				Current:  &openmeteo.CurrentAPIData{Time: "2025-01-15T10:00"},
				Daily: &openmeteo.DailyAPIData{
					Time:    []string{"2025-01-15", "2025-01-16"},
					Sunrise: []string{"2025-01-15T07:18"},
					Sunset:  []string{"2025-01-15T17:02", "2025-01-16T17:03"},
				},
			},
		},
		{
			name:   "ragged hourly series",
			coords: types.NewCoords(1, 1),
			response: &openmeteo.ForecastAPIResponse{
				Timezone: "UTC",
				Current:  &openmeteo.CurrentAPIData{Time: "2025-01-15T10:00"},
				Hourly: &openmeteo.HourlyAPIData{
					Time:      []string{"2025-01-15T00:00", "2025-01-15T01:00"},
					Variables: map[string][]float64{"temperature_2m": {1}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockForecastProvider{response: tt.response, err: tt.err}
			svc := NewWeatherServiceWithProvider(provider, nil, testConfig(), discardLogger())

			got, err := svc.GetConditions(context.Background(), tt.coords, tt.opts...)
			if err == nil {
				t.Fatal("GetConditions() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("GetConditions() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("GetConditions() = %+v, want nil", got)
			}
		})
	}
}

func TestWeatherService_TimezoneFallback(t *testing.T) {
	tests := []struct {
		name     string
		tz       mockTimezoneService
		useTz    bool
		provider string
		want     string
	}{
		{
			name:     "provider zone loads",
			provider: "Asia/Karachi",
			useTz:    true,
			tz:       mockTimezoneService{name: "Europe/London"},
			want:     "Asia/Karachi",
		},
		{
			name:     "tzf fallback",
			provider: "Not/AZone",
			useTz:    true,
			tz:       mockTimezoneService{name: "Europe/London"},
			want:     "Europe/London",
		},
		{
			name:     "fixed offset last resort",
			provider: "Not/AZone",
			useTz:    true,
			tz:       mockTimezoneService{err: errors.New("ocean")},
			want:     "MST",
		},
		{
			name:     "no tz service",
			provider: "",
			want:     "MST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sampleResponse()
			resp.Timezone = tt.provider

			svc := &weatherService{
				forecastProvider: &mockForecastProvider{response: resp},
				cfg:              testConfig(),
				logger:           discardLogger(),
			}
			if tt.useTz {
				svc.timezoneService = tt.tz
			}

			got, err := svc.GetConditions(context.Background(), types.NewCoords(39.1, -107.6))
			if err != nil {
				t.Fatalf("GetConditions() error = %v", err)
			}
			if got.Timezone != tt.want {
				t.Errorf("Timezone = %q, want %q", got.Timezone, tt.want)
			}
		})
	}
}

func TestToTime(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid time",
			input: "2025-01-15T10:30",
		},
		{
			name:    "invalid format",
			input:   "not a time",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "different format",
			input:   "2025-01-15 10:30:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := toTime(tt.input, denver)

			if (err != nil) != tt.wantErr {
				t.Fatalf("toTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			expected := time.Date(2025, 1, 15, 10, 30, 0, 0, denver)
			if !result.Equal(expected) {
				t.Errorf("toTime(%q) = %v, want %v", tt.input, result, expected)
			}
		})
	}
}

func TestMinMaxSum(t *testing.T) {
	tests := []struct {
		name    string
		input   []float64
		wantMin float64
		wantMax float64
		wantSum float64
		wantOK  bool
	}{
		{
			name:    "single value",
			input:   []float64{5.5},
			wantMin: 5.5,
			wantMax: 5.5,
			wantSum: 5.5,
			wantOK:  true,
		},
		{
			name:    "mixed positive and negative",
			input:   []float64{5, -2, 3},
			wantMin: -2,
			wantMax: 5,
			wantSum: 6,
			wantOK:  true,
		},
		{
			name:   "empty slice",
			input:  []float64{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := minFloat(tt.input); got != tt.wantMin || ok != tt.wantOK {
				t.Errorf("minFloat(%v) = %v, %v; want %v, %v", tt.input, got, ok, tt.wantMin, tt.wantOK)
			}
			if got, ok := maxFloat(tt.input); got != tt.wantMax || ok != tt.wantOK {
				t.Errorf("maxFloat(%v) = %v, %v; want %v, %v", tt.input, got, ok, tt.wantMax, tt.wantOK)
			}
			if got, ok := sum(tt.input); got != tt.wantSum || ok != tt.wantOK {
				t.Errorf("sum(%v) = %v, %v; want %v, %v", tt.input, got, ok, tt.wantSum, tt.wantOK)
			}
		})
	}
}
