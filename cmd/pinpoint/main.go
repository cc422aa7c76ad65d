// Command pinpoint looks up the weather for one coordinate, or follows a GPS
// replay, and prints the detail panel to the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"medi-map/internal/config"
	"medi-map/internal/gps"
	"medi-map/internal/lookup"
	"medi-map/internal/session"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

type options struct {
	lat, lon       float64
	dms            string
	replay         string
	replayInterval time.Duration
	forecastDays   int
	params         string
	follow         time.Duration
	html           bool
}

func main() {
	var opts options
	fs := newFlagSet(&opts, pflag.ExitOnError)
	_ = fs.Parse(os.Args[1:])

	cfg, err := loadConfig(fs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, fs, opts, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newFlagSet(opts *options, handling pflag.ErrorHandling) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pinpoint", handling)
	fs.Float64Var(&opts.lat, "lat", 0, "latitude in decimal degrees")
	fs.Float64Var(&opts.lon, "lon", 0, "longitude in decimal degrees")
	fs.StringVar(&opts.dms, "dms", "", `coordinates as degrees, minutes, seconds, e.g. 35°52'59.9"N 76°30'48.4"E`)
	fs.StringVar(&opts.replay, "gps-replay", "", "track positions from a lat,lon[,accuracy] CSV file")
	fs.DurationVar(&opts.replayInterval, "replay-interval", time.Second, "delay between replayed fixes")
	fs.IntVar(&opts.forecastDays, "forecast-days", 0, "show the hourly forecast for this many days")
	fs.StringVar(&opts.params, "params", "", "comma separated hourly parameters for the forecast view")
	fs.DurationVar(&opts.follow, "follow", 0, "keep tracking for this long (0 tracks until the replay ends)")
	fs.BoolVar(&opts.html, "html", false, "render HTML instead of text")
	fs.String("log-level", "info", "log level (debug, info, warn, error); overrides MEDI_MAP_LOG_LEVEL when set")
	fs.Float64("min-move", 250, "meters a tracked position must move before another lookup")
	fs.Int("fetch-days", 7, "days of hourly data fetched per lookup")
	return fs
}

// loadConfig layers flags the user set over env and config defaults
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	v := viper.New()
	_ = v.BindPFlag("log.level", fs.Lookup("log-level"))
	_ = v.BindPFlag("gps.minMoveMeters", fs.Lookup("min-move"))
	_ = v.BindPFlag("app.forecastDays", fs.Lookup("fetch-days"))
	return config.LoadWith(v)
}

func run(ctx context.Context, cfg *config.Config, fs *pflag.FlagSet, opts options, out io.Writer, logger *slog.Logger) error {
	lookupSvc, _, err := lookup.NewLookupService(cfg, logger)
	if err != nil {
		return err
	}

	var provider gps.Provider
	var replay *gps.ReplayProvider
	if opts.replay != "" {
		replay, err = gps.OpenReplayFile(opts.replay, opts.replayInterval)
		if err != nil {
			return fmt.Errorf("failed to load replay: %w", err)
		}
		provider = replay
	}

	s := session.New(lookupSvc, newRenderer(out, opts.html), provider, session.Options{
		MinMoveMeters: cfg.GPS.MinMoveMeters,
		GPS: gps.Options{
			FirstFixTimeout: cfg.GPS.FirstFixTimeout,
			WatchTimeout:    cfg.GPS.WatchTimeout,
		},
	}, logger)
	defer s.Close()

	coords, pinpoint, err := target(fs, opts)
	if err != nil {
		return err
	}
	if !pinpoint && replay == nil {
		return errors.New("nothing to look up: pass --lat and --lon, --dms or --gps-replay")
	}

	if pinpoint {
		if _, err := s.Pinpoint(ctx, coords); err != nil {
			return err
		}
	}

	if replay != nil {
		if _, err := s.ToggleGPS(ctx); err != nil {
			return err
		}
		follow(ctx, replay, opts.follow)
		s.Close()
	}

	if opts.forecastDays > 0 || opts.params != "" {
		var params []weather.Parameter
		if opts.params != "" {
			if params, err = weather.ParseParameters(opts.params); err != nil {
				return err
			}
		}
		days := opts.forecastDays
		if days == 0 {
			days = cfg.App.ForecastDays
		}
		if err := s.ShowForecast(days, params); err != nil {
			return err
		}
	}

	return nil
}

func target(fs *pflag.FlagSet, opts options) (types.Coords, bool, error) {
	if opts.dms != "" {
		coords, err := types.ParseDMSPair(opts.dms)
		return coords, err == nil, err
	}
	if fs.Changed("lat") != fs.Changed("lon") {
		return types.Coords{}, false, errors.New("--lat and --lon must be given together")
	}
	return types.NewCoords(opts.lat, opts.lon), fs.Changed("lat"), nil
}

// follow waits for the replay to finish, the follow window to end or ctx
func follow(ctx context.Context, replay *gps.ReplayProvider, d time.Duration) {
	done := make(chan struct{})
	go func() {
		replay.Wait()
		close(done)
	}()

	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
	case <-done:
	case <-timeout:
	}
}
