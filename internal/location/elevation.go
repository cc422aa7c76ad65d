package location

import (
	"context"

	"medi-map/internal/providers/openmeteo"
	"medi-map/internal/providers/usgs"
	"medi-map/internal/types"
)

type openMeteoElevationClient interface {
	GetElevation(ctx context.Context, latitude, longitude float64) (*openmeteo.ElevationAPIResponse, error)
}

type usgsElevationClient interface {
	GetElevationPoint(ctx context.Context, latitude, longitude float64) (*usgs.ElevationPointAPIResponse, error)
}

// OpenMeteoElevation adapts the Open-Meteo elevation endpoint
type OpenMeteoElevation struct {
	Client openMeteoElevationClient
}

// Elevation takes index 0 of the response array; an empty array means no data
func (p OpenMeteoElevation) Elevation(ctx context.Context, latitude, longitude float64) (types.Elevation, error) {
	resp, err := p.Client.GetElevation(ctx, latitude, longitude)
	if err != nil {
		return types.Elevation{}, err
	}
	if resp == nil || len(resp.Elevation) == 0 {
		return types.NoElevation(), nil
	}
	return types.NewElevationFromMeters(resp.Elevation[0]), nil
}

// USGSElevation adapts the USGS point query service
type USGSElevation struct {
	Client usgsElevationClient
}

func (p USGSElevation) Elevation(ctx context.Context, latitude, longitude float64) (types.Elevation, error) {
	resp, err := p.Client.GetElevationPoint(ctx, latitude, longitude)
	if err != nil {
		return types.Elevation{}, err
	}
	if !resp.HasValue() {
		return types.NoElevation(), nil
	}
	return types.NewElevationFromMeters(resp.Value), nil
}
