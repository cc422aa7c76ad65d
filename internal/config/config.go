package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MinForecastDays = 1
	MaxForecastDays = 16
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	OpenMeteo OpenMeteoConfig
	Elevation ElevationConfig
	USGS      USGSConfig
	Geocoding GeocodingConfig
	GPS       GPSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	ForecastDays int // Number of days of hourly data fetched per lookup
}

// OpenMeteoConfig holds forecast and elevation API settings
type OpenMeteoConfig struct {
	ForecastURL       string
	ElevationURL      string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// ElevationConfig selects the elevation provider
type ElevationConfig struct {
	Provider string // openmeteo, usgs
}

type USGSConfig struct {
	URL string
}

// GeocodingConfig holds Nominatim settings
type GeocodingConfig struct {
	Reverse   bool // include a reverse geocoded place name in every lookup
	URL       string
	UserAgent string
}

// GPSConfig holds tracking settings
type GPSConfig struct {
	FirstFixTimeout time.Duration
	WatchTimeout    time.Duration
	MinMoveMeters   float64
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.forecastDays", 7)
	v.SetDefault("openmeteo.forecastURL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("openmeteo.elevationURL", "https://api.open-meteo.com/v1/elevation")
	v.SetDefault("openmeteo.timeout", 10*time.Second)
	v.SetDefault("openmeteo.requestsPerSecond", 5.0)
	v.SetDefault("openmeteo.burst", 5)
	v.SetDefault("elevation.provider", "openmeteo")
	v.SetDefault("usgs.url", "https://epqs.nationalmap.gov/v1/json")
	v.SetDefault("geocoding.reverse", false)
	v.SetDefault("geocoding.url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.userAgent", "medi-map/1.0")
	v.SetDefault("gps.firstFixTimeout", 5*time.Second)
	v.SetDefault("gps.watchTimeout", 30*time.Second)
	v.SetDefault("gps.minMoveMeters", 250.0)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return LoadWith(viper.GetViper())
}

// LoadWith reads configuration into the given viper instance. Callers that
// bind command line flags pass their own instance.
func LoadWith(v *viper.Viper) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.medi-map")

	SetDefaults(v)

	v.SetEnvPrefix("MEDI_MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate normalizes out of range values and rejects unusable ones
func (c *Config) Validate() error {
	c.App.ForecastDays = ClampForecastDays(c.App.ForecastDays)

	switch strings.ToLower(c.Elevation.Provider) {
	case "openmeteo", "usgs":
		c.Elevation.Provider = strings.ToLower(c.Elevation.Provider)
	default:
		return fmt.Errorf("unknown elevation provider %q", c.Elevation.Provider)
	}

	if c.OpenMeteo.RequestsPerSecond <= 0 {
		return fmt.Errorf("openmeteo.requestsPerSecond must be positive, got %v", c.OpenMeteo.RequestsPerSecond)
	}
	if c.OpenMeteo.Burst < 1 {
		c.OpenMeteo.Burst = 1
	}

	return nil
}

// ClampForecastDays bounds days to what the forecast API accepts
func ClampForecastDays(days int) int {
	if days < MinForecastDays {
		return MinForecastDays
	}
	if days > MaxForecastDays {
		return MaxForecastDays
	}
	return days
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
