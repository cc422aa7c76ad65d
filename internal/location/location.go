package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"medi-map/internal/config"
	"medi-map/internal/providers/openmeteo"
	"medi-map/internal/providers/openstreetmap"
	"medi-map/internal/providers/usgs"
	"medi-map/internal/types"
)

var ErrPlaceNotFound = errors.New("place not found")

type locationService struct {
	elevationProvider ElevationProvider
	geocodeProvider   GeocodeProvider
	reverseGeocode    bool
	logger            *slog.Logger
}

// NewLocationService wires the configured elevation provider and Nominatim.
// meteo is shared with the weather service so both draw from one rate limit.
func NewLocationService(cfg *config.Config, meteo *openmeteo.Client, logger *slog.Logger) Service {
	var elevation ElevationProvider = OpenMeteoElevation{Client: meteo}
	if cfg.Elevation.Provider == "usgs" {
		elevation = USGSElevation{Client: usgs.NewClient(logger, cfg.USGS.URL, cfg.OpenMeteo.Timeout)}
	}

	geocoder := openstreetmap.NewClient(logger,
		openstreetmap.WithBaseURL(cfg.Geocoding.URL),
		openstreetmap.WithUserAgent(cfg.Geocoding.UserAgent),
		openstreetmap.WithTimeout(cfg.OpenMeteo.Timeout),
	)

	return NewLocationServiceWithProviders(elevation, geocoder, cfg.Geocoding.Reverse, logger)
}

// NewLocationServiceWithProviders creates a new location service with custom providers
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(
	elevationProvider ElevationProvider,
	geocodeProvider GeocodeProvider,
	reverseGeocode bool,
	logger *slog.Logger,
) Service {
	return &locationService{
		elevationProvider: elevationProvider,
		geocodeProvider:   geocodeProvider,
		reverseGeocode:    reverseGeocode,
		logger:            logger.With("component", "location-service"),
	}
}

// GetForecastPoint calls the providers in parallel. The first failure cancels
// the other call and is returned.
func (s *locationService) GetForecastPoint(ctx context.Context, coords types.Coords) (*types.ForecastPoint, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	var (
		elevation types.Elevation
		place     *types.Place
	)

	p := pool.New().WithErrors().WithContext(ctx).WithFirstError().WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		e, err := s.elevationProvider.Elevation(ctx, coords.Latitude, coords.Longitude)
		if err != nil {
			return fmt.Errorf("failed to get elevation: %w", err)
		}
		elevation = e
		return nil
	})

	if s.reverseGeocode && s.geocodeProvider != nil {
		p.Go(func(ctx context.Context) error {
			resp, err := s.geocodeProvider.Reverse(ctx, coords.Latitude, coords.Longitude)
			if err != nil {
				return fmt.Errorf("failed to get location: %w", err)
			}
			place = translatePlace(resp)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		s.logger.Error("failed to resolve forecast point",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, err
	}

	return &types.ForecastPoint{
		Coordinates: coords,
		Elevation:   elevation,
		Place:       place,
	}, nil
}

func (s *locationService) Search(ctx context.Context, query string) (*Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrPlaceNotFound)
	}
	if s.geocodeProvider == nil {
		return nil, errors.New("no geocoding provider configured")
	}

	resp, err := s.geocodeProvider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %q", ErrPlaceNotFound, query)
	}

	lat, err := strconv.ParseFloat(resp.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q in search result: %w", resp.Lat, err)
	}
	lon, err := strconv.ParseFloat(resp.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q in search result: %w", resp.Lon, err)
	}

	coords := types.NewCoords(lat, lon)
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("resolved place", "query", query, "display_name", resp.DisplayName)

	return &Match{
		Coordinates: coords,
		Place:       newPlace(resp.Name, resp.DisplayName, resp.Address),
	}, nil
}

// translatePlace converts a reverse lookup response; nil means no place at the point
func translatePlace(resp *openstreetmap.LookupAPIResponse) *types.Place {
	if resp == nil {
		return nil
	}
	place := newPlace(resp.Name, resp.DisplayName, resp.Address)
	return &place
}

func newPlace(name, displayName string, addr openstreetmap.Address) types.Place {
	if name == "" {
		name = addr.Locality()
	}
	if name == "" {
		name = displayName
	}

	return types.Place{
		Name:        name,
		DisplayName: displayName,
		County:      addr.County,
		State:       addr.State,
		Country:     addr.Country,
		CountryCode: addr.CountryCode,
	}
}
