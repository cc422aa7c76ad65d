package location

import (
	"context"

	"medi-map/internal/providers/openstreetmap"
	"medi-map/internal/types"
)

// Service provides location and elevation data for a lookup
type Service interface {
	// GetForecastPoint resolves elevation and, when enabled, a place name for a coordinate
	GetForecastPoint(ctx context.Context, coords types.Coords) (*types.ForecastPoint, error)
	// Search geocodes a place name to coordinates
	Search(ctx context.Context, query string) (*Match, error)
}

// ElevationProvider returns the elevation for a point; an absent value is
// NoElevation with a nil error.
type ElevationProvider interface {
	Elevation(ctx context.Context, latitude, longitude float64) (types.Elevation, error)
}

// GeocodeProvider defines the Nominatim calls the service needs
type GeocodeProvider interface {
	Reverse(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
	Search(ctx context.Context, query string) (*openstreetmap.SearchAPIResult, error)
}

// Match is a geocoded place
type Match struct {
	Coordinates types.Coords `json:"coordinates"`
	Place       types.Place  `json:"place"`
}
