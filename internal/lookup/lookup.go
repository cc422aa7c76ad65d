package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"medi-map/internal/config"
	"medi-map/internal/location"
	"medi-map/internal/providers/openmeteo"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

// ErrLookupFailed wraps the first failure of any request in the joined set
var ErrLookupFailed = errors.New("lookup failed")

// Result is the joined outcome of one lookup. It is only ever returned whole.
type Result struct {
	Coordinates types.Coords              `json:"coordinates"`
	Conditions  weather.CurrentConditions `json:"current"`
	Elevation   types.Elevation           `json:"elevation"`
	Hourly      weather.HourlySeries      `json:"hourly"`
	Place       *types.Place              `json:"place,omitempty"`
	Timezone    string                    `json:"timezone"`
	Sun         []weather.SunTimes        `json:"sun,omitempty"`
	FetchedAt   time.Time                 `json:"fetched_at"`
	// Sequence is stamped by the caller that started the lookup
	Sequence uint64 `json:"sequence,omitempty"`
}

type Service interface {
	Lookup(ctx context.Context, coords types.Coords, opts ...Option) (*Result, error)
}

// Options are the per-lookup settings built from Option values
type Options struct {
	Elevation *float64
}

// Option adjusts a single lookup
type Option func(*Options)

// WithElevation forwards an elevation override to the forecast request. A
// finite value is also reported as the result's elevation; NaN disables
// downscaling and keeps the looked up elevation.
func WithElevation(meters float64) Option {
	return func(o *Options) {
		o.Elevation = &meters
	}
}

// ServiceOption configures a lookup service
type ServiceOption func(*lookupService)

// WithMeter records lookup metrics on m instead of the global meter
func WithMeter(m metric.Meter) ServiceOption {
	return func(s *lookupService) {
		s.meter = m
	}
}

type lookupService struct {
	weatherService  weather.Service
	locationService location.Service
	meter           metric.Meter
	metrics         *metrics
	logger          *slog.Logger
	now             func() time.Time
}

// NewLookupService builds the provider clients from cfg. The forecast and
// elevation calls share one rate-limited Open-Meteo client.
func NewLookupService(cfg *config.Config, logger *slog.Logger, opts ...ServiceOption) (Service, location.Service, error) {
	meteo := NewOpenMeteoClient(cfg, logger)

	locationSvc := location.NewLocationService(cfg, meteo, logger)
	weatherSvc := weather.NewWeatherService(cfg, meteo, logger)

	svc, err := NewLookupServiceWithServices(weatherSvc, locationSvc, logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, locationSvc, nil
}

// NewOpenMeteoClient applies the openmeteo config section
func NewOpenMeteoClient(cfg *config.Config, logger *slog.Logger) *openmeteo.Client {
	return openmeteo.NewClient(logger,
		openmeteo.WithForecastURL(cfg.OpenMeteo.ForecastURL),
		openmeteo.WithElevationURL(cfg.OpenMeteo.ElevationURL),
		openmeteo.WithTimeout(cfg.OpenMeteo.Timeout),
		openmeteo.WithRateLimit(cfg.OpenMeteo.RequestsPerSecond, cfg.OpenMeteo.Burst),
	)
}

func NewLookupServiceWithServices(
	weatherService weather.Service,
	locationService location.Service,
	logger *slog.Logger,
	opts ...ServiceOption,
) (Service, error) {
	s := &lookupService{
		weatherService:  weatherService,
		locationService: locationService,
		meter:           otel.Meter(instrumentationName),
		logger:          logger.With("component", "lookup-service"),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	m, err := newMetrics(s.meter)
	if err != nil {
		return nil, err
	}
	s.metrics = m
	return s, nil
}

// Lookup validates coords, then issues the forecast and forecast point
// requests concurrently. It returns once every request has settled; any
// failure yields ErrLookupFailed and no partial result.
func (s *lookupService) Lookup(ctx context.Context, coords types.Coords, opts ...Option) (*Result, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	var weatherOpts []weather.Option
	if o.Elevation != nil {
		weatherOpts = append(weatherOpts, weather.WithElevation(*o.Elevation))
	}

	started := s.now()
	s.metrics.requests.Add(ctx, 1)

	var (
		conditions *weather.Conditions
		point      *types.ForecastPoint
	)

	p := pool.New().WithErrors().WithContext(ctx).WithFirstError().WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		c, err := s.weatherService.GetConditions(ctx, coords, weatherOpts...)
		if err != nil {
			return fmt.Errorf("weather: %w", err)
		}
		conditions = c
		return nil
	})

	p.Go(func(ctx context.Context) error {
		fp, err := s.locationService.GetForecastPoint(ctx, coords)
		if err != nil {
			return fmt.Errorf("forecast point: %w", err)
		}
		point = fp
		return nil
	})

	if err := p.Wait(); err != nil {
		s.metrics.record(ctx, s.now().Sub(started), "error")
		s.logger.Error("lookup failed",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	if conditions == nil || point == nil {
		s.metrics.record(ctx, s.now().Sub(started), "incomplete")
		return nil, fmt.Errorf("%w: incomplete response", ErrLookupFailed)
	}

	s.metrics.record(ctx, s.now().Sub(started), "")

	elevation := point.Elevation
	if o.Elevation != nil && !math.IsNaN(*o.Elevation) {
		elevation = types.NewElevationFromMeters(*o.Elevation)
	}

	s.logger.Debug("lookup complete",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"timezone", conditions.Timezone,
		"elevation", elevation.String(),
	)

	return &Result{
		Coordinates: coords,
		Conditions:  conditions.Current,
		Elevation:   elevation,
		Hourly:      conditions.Hourly,
		Place:       point.Place,
		Timezone:    conditions.Timezone,
		Sun:         conditions.Sun,
		FetchedAt:   s.now().UTC(),
	}, nil
}
