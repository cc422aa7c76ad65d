package openstreetmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Overview/
// Sample requests:
//
//	https://nominatim.openstreetmap.org/reverse?lat=39.11&lon=-107.65&format=json
//	https://nominatim.openstreetmap.org/search?q=Aspen&format=json&limit=1
const (
	baseURL          = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "medi-map/1.0"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the identifying User-Agent Nominatim requires
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient defaults to one request per second, the public instance's usage limit
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		logger:     logger.With("component", "openstreetmap-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reverse resolves a coordinate to the nearest named place
func (c *Client) Reverse(ctx context.Context, latitude, longitude float64) (*LookupAPIResponse, error) {
	u, err := url.Parse(c.baseURL + "/reverse")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	var apiResp LookupAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		return nil, err
	}

	// Nominatim answers 200 with an error body for points over open water
	if apiResp.Error != "" {
		c.logger.Debug("no place for coordinate",
			"latitude", latitude,
			"longitude", longitude,
			"reason", apiResp.Error,
		)
		return nil, nil
	}

	c.logger.Debug("successfully fetched OpenStreetMap location data",
		"latitude", latitude,
		"longitude", longitude,
		"display_name", apiResp.DisplayName,
	)

	return &apiResp, nil
}

// Search geocodes a free-form query and returns the best match, or nil when
// nothing matches.
func (c *Client) Search(ctx context.Context, query string) (*SearchAPIResult, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	u.RawQuery = q.Encode()

	var results []SearchAPIResult
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	return &results[0], nil
}

func (c *Client) getJSON(ctx context.Context, u *url.URL, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	c.logger.Debug("fetching OpenStreetMap data", "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch OpenStreetMap data", "url", u.String(), "error", err)
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("OpenStreetMap API returned error",
			"status_code", resp.StatusCode,
			"url", u.String(),
			"response_body", string(body),
		)
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode OpenStreetMap response", "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
