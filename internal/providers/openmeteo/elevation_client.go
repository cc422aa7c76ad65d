package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=39.1178&longitude=-106.4452

func (c *Client) GetElevation(ctx context.Context, latitude, longitude float64) (*ElevationAPIResponse, error) {
	u, err := url.Parse(c.elevationURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	var apiResp ElevationAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}
