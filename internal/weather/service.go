package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"medi-map/internal/config"
	"medi-map/internal/providers/openmeteo"
	"medi-map/internal/timezone"
	"medi-map/internal/types"
)

type ForecastProvider interface {
	// GetForecast fetches current conditions and hourly data for one coordinate
	GetForecast(ctx context.Context, r openmeteo.ForecastRequest) (*openmeteo.ForecastAPIResponse, error)
}

type Service interface {
	GetConditions(ctx context.Context, coords types.Coords, opts ...Option) (*Conditions, error)
}

// ErrInvalidElevation is returned for an infinite elevation override
var ErrInvalidElevation = errors.New("elevation must be a finite number of meters or nan")

// Option adjusts a single forecast request
type Option func(*request)

type request struct {
	elevation *float64
}

// WithElevation overrides the elevation the provider downscales to. NaN
// disables downscaling.
func WithElevation(meters float64) Option {
	return func(r *request) {
		r.elevation = &meters
	}
}

type weatherService struct {
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	cfg              *config.Config
	logger           *slog.Logger
}

// NewWeatherService uses tzf as a fallback when the provider's zone name
// cannot be loaded. A tzf failure is logged and leaves the fixed UTC offset as
// the last resort.
func NewWeatherService(cfg *config.Config, meteo *openmeteo.Client, logger *slog.Logger) Service {
	tzSvc, err := timezone.NewService()
	if err != nil {
		logger.Warn("timezone finder unavailable, falling back to provider offsets", "error", err)
	}
	return NewWeatherServiceWithProvider(meteo, tzSvc, cfg, logger)
}

func NewWeatherServiceWithProvider(
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		cfg:              cfg,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetConditions(ctx context.Context, coords types.Coords, opts ...Option) (*Conditions, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	var req request
	for _, opt := range opts {
		opt(&req)
	}
	if req.elevation != nil && math.IsInf(*req.elevation, 0) {
		return nil, ErrInvalidElevation
	}

	apiResponse, err := s.forecastProvider.GetForecast(ctx, openmeteo.ForecastRequest{
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
		Current:      openmeteo.CurrentVariables,
		Hourly:       parameterNames(HourlyParameters),
		Daily:        openmeteo.DailyVariables,
		ForecastDays: config.ClampForecastDays(s.cfg.App.ForecastDays),
		Elevation:    req.elevation,
	})
	if err != nil {
		s.logger.Error("failed to get forecast from provider", "error", err)
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	loc := s.resolveLocation(coords, apiResponse)

	s.logger.Debug("resolved timezone for location",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"timezone", loc.String(),
	)

	return mapForecastAPIResponseToConditions(apiResponse, loc)
}

// resolveLocation prefers the provider's zone, then tzf, then the raw offset
func (s *weatherService) resolveLocation(coords types.Coords, apiResponse *openmeteo.ForecastAPIResponse) *time.Location {
	if apiResponse.Timezone != "" {
		if loc, err := time.LoadLocation(apiResponse.Timezone); err == nil {
			return loc
		}
	}

	if s.timezoneService != nil {
		loc, err := s.timezoneService.Location(coords.Latitude, coords.Longitude)
		if err == nil {
			return loc
		}
		s.logger.Warn("failed to determine timezone",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
	}

	name := apiResponse.TimezoneAbbreviation
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, apiResponse.UtcOffsetSeconds)
}

func mapForecastAPIResponseToConditions(apiResponse *openmeteo.ForecastAPIResponse, loc *time.Location) (*Conditions, error) {
	if apiResponse == nil {
		return nil, fmt.Errorf("forecast response is nil")
	}
	if apiResponse.Current == nil {
		return nil, fmt.Errorf("forecast response has no current conditions")
	}

	current := apiResponse.Current
	currentTime, err := toTime(current.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse current time %q: %w", current.Time, err)
	}

	conditions := &Conditions{
		Timezone:         loc.String(),
		UtcOffsetSeconds: apiResponse.UtcOffsetSeconds,
		Current: CurrentConditions{
			Time:                currentTime,
			Temperature:         types.NewTemperatureFromCelsius(current.Temperature2M),
			ApparentTemperature: types.NewTemperatureFromCelsius(current.ApparentTemperature),
			RelativeHumidity:    current.RelativeHumidity2M,
			Precipitation:       types.NewPrecipitationFromMm(current.Precipitation),
			Rain:                types.NewPrecipitationFromMm(current.Rain),
			CloudCover:          current.CloudCover,
			Wind:                types.NewWindFromKph(current.WindSpeed10M, current.WindGusts10M, current.WindDirection10M),
			Weather:             types.NewWeather(current.WeatherCode),
			IsDay:               current.IsDay == 1,
		},
		Hourly: HourlySeries{Values: map[Parameter][]float64{}},
	}

	sun, err := mapSunTimes(apiResponse.Daily, loc)
	if err != nil {
		return nil, err
	}
	conditions.Sun = sun

	if apiResponse.Hourly == nil {
		return conditions, nil
	}

	hourlyTimes := make([]time.Time, 0, len(apiResponse.Hourly.Time))
	for _, raw := range apiResponse.Hourly.Time {
		t, err := toTime(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly time %q: %w", raw, err)
		}
		hourlyTimes = append(hourlyTimes, t)
	}
	conditions.Hourly.Time = hourlyTimes

	for name, values := range apiResponse.Hourly.Variables {
		p := Parameter(name)
		if !p.Valid() {
			continue
		}
		if len(values) != len(hourlyTimes) {
			return nil, fmt.Errorf("hourly %s has %d values for %d timestamps", name, len(values), len(hourlyTimes))
		}
		conditions.Hourly.Values[p] = values
	}

	return conditions, nil
}

// mapSunTimes pairs each daily date with its sunrise and sunset. Polar days
// without either event come back with empty strings and are skipped.
func mapSunTimes(daily *openmeteo.DailyAPIData, loc *time.Location) ([]SunTimes, error) {
	if daily == nil {
		return nil, nil
	}
	if len(daily.Sunrise) != len(daily.Time) || len(daily.Sunset) != len(daily.Time) {
		return nil, fmt.Errorf("daily sunrise/sunset have %d/%d values for %d dates",
			len(daily.Sunrise), len(daily.Sunset), len(daily.Time))
	}

	out := make([]SunTimes, 0, len(daily.Time))
	for i, raw := range daily.Time {
		date, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse daily time %q: %w", raw, err)
		}
		if daily.Sunrise[i] == "" || daily.Sunset[i] == "" {
			continue
		}
		sunrise, err := toTime(daily.Sunrise[i], loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sunrise %q: %w", daily.Sunrise[i], err)
		}
		sunset, err := toTime(daily.Sunset[i], loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sunset %q: %w", daily.Sunset[i], err)
		}
		out = append(out, SunTimes{Date: date, Sunrise: sunrise, Sunset: sunset})
	}
	return out, nil
}

func toTime(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(hourlyTimeLayout, value, loc)
}

// minFloat reports false for an empty slice
func minFloat(value []float64) (float64, bool) {
	if len(value) == 0 {
		return 0, false
	}

	minValue := value[0]
	for _, v := range value {
		if v < minValue {
			minValue = v
		}
	}
	return minValue, true
}

func maxFloat(value []float64) (float64, bool) {
	if len(value) == 0 {
		return 0, false
	}

	maxValue := value[0]
	for _, v := range value {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue, true
}

func sum(value []float64) (float64, bool) {
	total := 0.0
	for _, v := range value {
		total += v
	}
	return total, len(value) > 0
}
