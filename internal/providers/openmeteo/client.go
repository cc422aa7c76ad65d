package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// API Docs: https://open-meteo.com/en/docs
const (
	baseForecastURL  = "https://api.open-meteo.com/v1/forecast"
	baseElevationURL = "https://api.open-meteo.com/v1/elevation"
)

// Client talks to the Open-Meteo forecast and elevation APIs. Both endpoints
// share one limiter so a single lookup never exceeds the configured rate.
type Client struct {
	httpClient   *http.Client
	forecastURL  string
	elevationURL string
	limiter      *rate.Limiter
	logger       *slog.Logger
}

type Option func(*Client)

func WithForecastURL(u string) Option {
	return func(c *Client) { c.forecastURL = u }
}

func WithElevationURL(u string) Option {
	return func(c *Client) { c.elevationURL = u }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithRateLimit caps outbound requests; rps may be fractional
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		forecastURL:  baseForecastURL,
		elevationURL: baseElevationURL,
		limiter:      rate.NewLimiter(rate.Inf, 0),
		logger:       logger.With("component", "openmeteo-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues a GET for u and decodes a 200 response into out
func (c *Client) getJSON(ctx context.Context, u *url.URL, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	c.logger.Debug("fetching", "url", u.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", "url", u.String(), "error", err)
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Open-Meteo API returned error",
			"status_code", resp.StatusCode,
			"url", u.String(),
			"response_body", string(body),
		)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("failed to decode Open-Meteo response", "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// StatusError is returned for any non-200 response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}
