package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API Docs: https://epqs.nationalmap.gov/v1/docs
// Sample request: https://epqs.nationalmap.gov/v1/json?x=-107.65840&y=39.0639&units=Meters
const (
	baseElevationURL = "https://epqs.nationalmap.gov/v1/json"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient builds a client against baseURL; an empty baseURL uses the public EPQS endpoint
func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = baseElevationURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger.With("component", "usgs-client"),
	}
}

// GetElevationPoint returns the elevation in meters for a single point
func (c *Client) GetElevationPoint(ctx context.Context, latitude, longitude float64) (*ElevationPointAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("y", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("x", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("units", "Meters")
	q.Set("wkid", "4326")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching USGS elevation data",
		"latitude", latitude,
		"longitude", longitude,
		"url", u.String(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch USGS elevation data",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("USGS API returned error",
			"status_code", resp.StatusCode,
			"latitude", latitude,
			"longitude", longitude,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ElevationPointAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode USGS response",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched USGS elevation data",
		"latitude", latitude,
		"longitude", longitude,
		"elevation_meters", apiResp.Value,
	)

	return &apiResp, nil
}
