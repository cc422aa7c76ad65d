// Package session holds the per-view controller: the marker layer, the GPS
// tracker, the last result and the lookup sequence counter. Every piece of
// state lives on a Session, so independent sessions never interfere.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/paulmach/orb/geo"

	"medi-map/internal/gps"
	"medi-map/internal/lookup"
	"medi-map/internal/marker"
	"medi-map/internal/panel"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

var (
	// ErrSuperseded is returned for a lookup that finished after a newer one started
	ErrSuperseded = errors.New("lookup superseded by a newer one")
	ErrNoResult   = errors.New("no weather data loaded yet")
	ErrNoGPS      = errors.New("no location provider configured")
)

// InvalidCoordinateMessage is shown when a pinpoint falls outside the valid range
const InvalidCoordinateMessage = "Invalid coordinates. Latitude must be within ±90 and longitude within ±180."

// Renderer performs the output step for views built by package panel
type Renderer interface {
	Render(panel.View) error
	RenderForecast(panel.ForecastView) error
}

type Options struct {
	// MinMoveMeters is how far a tracked position must move before it
	// triggers another lookup
	MinMoveMeters float64
	GPS           gps.Options
}

type Session struct {
	lookup   lookup.Service
	renderer Renderer
	layer    *marker.Layer
	tracker  *gps.Tracker
	minMove  float64
	logger   *slog.Logger

	mu        sync.Mutex
	seq       uint64
	last      *lookup.Result
	center    types.Coords
	hasCenter bool
	gpsCtx    context.Context
	gpsAnchor *types.Coords // where the last GPS triggered lookup ran
}

// New builds a session. provider may be nil when no GPS source exists.
func New(svc lookup.Service, renderer Renderer, provider gps.Provider, opts Options, logger *slog.Logger) *Session {
	s := &Session{
		lookup:   svc,
		renderer: renderer,
		layer:    marker.NewLayer(),
		minMove:  opts.MinMoveMeters,
		logger:   logger.With("component", "session"),
		gpsCtx:   context.Background(),
	}
	if provider != nil {
		s.tracker = gps.NewTracker(provider, opts.GPS, gps.Handlers{
			OnFix:   s.handleFix,
			OnError: s.handlePositionError,
		}, logger)
	}
	return s
}

// Layer exposes the marker layer. Its observers run while the session is
// locked and must not call back into the Session.
func (s *Session) Layer() *marker.Layer {
	return s.layer
}

// Last returns the most recent result that was rendered
func (s *Session) Last() *lookup.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Center is the current view center, set by GPS fixes
func (s *Session) Center() (types.Coords, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.hasCenter
}

func (s *Session) GPSState() gps.State {
	if s.tracker == nil {
		return gps.Inactive
	}
	return s.tracker.State()
}

// Pinpoint places the marker at coords and loads its weather. Invalid
// coordinates render a validation message and issue no request. When a newer
// lookup starts before this one settles, this result is dropped with
// ErrSuperseded.
func (s *Session) Pinpoint(ctx context.Context, coords types.Coords) (*lookup.Result, error) {
	if err := coords.Validate(); err != nil {
		s.mu.Lock()
		s.render(panel.MessageView(InvalidCoordinateMessage))
		s.mu.Unlock()
		return nil, err
	}

	// the marker swap and the fetch are independent; the pulse never gates the request
	s.mu.Lock()
	seq := s.beginLocked(marker.PinpointID, coords)
	s.mu.Unlock()
	return s.finish(ctx, seq, coords)
}

// beginLocked moves the marker, takes the next sequence number and shows the
// loading view in one step, so the marker always belongs to the newest lookup.
// s.mu must be held.
func (s *Session) beginLocked(markerID string, coords types.Coords) uint64 {
	s.layer.Place(markerID, coords)
	s.seq++
	s.render(panel.LoadingView(coords))
	return s.seq
}

func (s *Session) finish(ctx context.Context, seq uint64, coords types.Coords) (*lookup.Result, error) {
	res, err := s.lookup.Lookup(ctx, coords)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.logger.Debug("dropping stale lookup", "sequence", seq, "latest", s.seq)
		return nil, ErrSuperseded
	}

	if err != nil {
		s.render(panel.ErrorView())
		return nil, err
	}

	res.Sequence = seq
	s.last = res
	s.render(panel.Build(res))
	return res, nil
}

// ToggleGPS enables tracking when inactive and disables it otherwise.
// Disabling clears the marker. A failed first fix returns a *gps.PositionError.
func (s *Session) ToggleGPS(ctx context.Context) (gps.State, error) {
	if s.tracker == nil {
		return gps.Inactive, ErrNoGPS
	}

	wasActive := s.tracker.State() != gps.Inactive
	if !wasActive {
		s.mu.Lock()
		s.gpsCtx = context.WithoutCancel(ctx)
		s.gpsAnchor = nil
		s.mu.Unlock()
	}

	state, err := s.tracker.Toggle(ctx)
	if err != nil {
		return state, err
	}

	if wasActive && state == gps.Inactive {
		s.layer.Clear()
		s.mu.Lock()
		s.gpsAnchor = nil
		s.mu.Unlock()
	}

	return state, nil
}

// Close stops tracking
func (s *Session) Close() {
	if s.tracker != nil {
		s.tracker.Stop()
	}
}

// ShowForecast renders the forecast sub-view from the last result without
// fetching again
func (s *Session) ShowForecast(days int, params []weather.Parameter) error {
	last := s.Last()
	if last == nil {
		return ErrNoResult
	}

	view, err := panel.BuildForecast(last.Hourly, days, params)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.RenderForecast(view)
}

// handleFix re-centers on every fix and reuses the GPS marker. A lookup runs
// on the first fix and whenever the position moved at least MinMoveMeters.
func (s *Session) handleFix(fix gps.Fix) {
	s.mu.Lock()
	s.center = fix.Coords
	s.hasCenter = true

	moved := s.gpsAnchor == nil ||
		geo.Distance(s.gpsAnchor.Point(), fix.Coords.Point()) >= s.minMove
	if !moved {
		s.layer.Place(marker.GPSID, fix.Coords)
		s.mu.Unlock()
		return
	}
	anchor := fix.Coords
	s.gpsAnchor = &anchor
	seq := s.beginLocked(marker.GPSID, fix.Coords)
	ctx := s.gpsCtx
	s.mu.Unlock()

	if _, err := s.finish(ctx, seq, fix.Coords); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Warn("gps lookup failed", "error", err)
	}
}

func (s *Session) handlePositionError(pe *gps.PositionError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gpsAnchor = nil
	s.render(panel.MessageView(pe.Error()))
}

// render must be called with s.mu held
func (s *Session) render(v panel.View) {
	if err := s.renderer.Render(v); err != nil {
		s.logger.Error("render failed", "state", v.State, "error", err)
	}
}
