// Package gps tracks device position. A Tracker moves between Inactive,
// Acquiring and Tracking and owns at most one provider watch at a time.
package gps

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"medi-map/internal/types"
)

type State int

const (
	Inactive State = iota
	Acquiring
	Tracking
)

func (s State) String() string {
	switch s {
	case Acquiring:
		return "acquiring"
	case Tracking:
		return "tracking"
	default:
		return "inactive"
	}
}

// Fix is one reported device position
type Fix struct {
	Coords   types.Coords
	Accuracy float64 // meters, 0 when unknown
	Time     time.Time
}

type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
}

type WatchID int

// Provider is a source of fixes. Watch callbacks may run on any goroutine.
type Provider interface {
	GetCurrentFix(ctx context.Context, opts PositionOptions) (Fix, error)
	Watch(opts PositionOptions, onFix func(Fix), onError func(error)) (WatchID, error)
	ClearWatch(id WatchID)
}

// Handlers receive tracker events. Any of them may be nil.
type Handlers struct {
	OnFix   func(Fix)
	OnError func(*PositionError)
	OnState func(State)
}

type Options struct {
	FirstFixTimeout time.Duration
	WatchTimeout    time.Duration
}

type Tracker struct {
	provider Provider
	opts     Options
	handlers Handlers
	logger   *slog.Logger

	mu       sync.Mutex
	state    State
	gen      uint64 // bumped on every transition back to Inactive
	watch    WatchID
	watching bool
	cancel   context.CancelFunc
}

func NewTracker(provider Provider, opts Options, handlers Handlers, logger *slog.Logger) *Tracker {
	if opts.FirstFixTimeout <= 0 {
		opts.FirstFixTimeout = 5 * time.Second
	}
	if opts.WatchTimeout <= 0 {
		opts.WatchTimeout = 30 * time.Second
	}
	return &Tracker{
		provider: provider,
		opts:     opts,
		handlers: handlers,
		logger:   logger.With("component", "gps-tracker"),
	}
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Toggle enables tracking from Inactive and disables it otherwise. Enabling
// blocks until the first fix settles; a failed first fix returns the
// categorized error and leaves the tracker Inactive.
func (t *Tracker) Toggle(ctx context.Context) (State, error) {
	t.mu.Lock()
	if t.state != Inactive {
		t.mu.Unlock()
		t.Stop()
		return Inactive, nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.opts.FirstFixTimeout)
	t.state = Acquiring
	t.cancel = cancel
	gen := t.gen
	t.mu.Unlock()
	defer cancel()

	t.notifyState(Acquiring)
	t.logger.Debug("acquiring first fix", "timeout", t.opts.FirstFixTimeout)

	fix, err := t.provider.GetCurrentFix(ctx, PositionOptions{
		HighAccuracy: false,
		Timeout:      t.opts.FirstFixTimeout,
	})
	if err != nil {
		return t.fail(gen, err)
	}

	t.mu.Lock()
	if t.gen != gen {
		// disabled while acquiring
		t.mu.Unlock()
		return Inactive, nil
	}
	t.state = Tracking
	t.cancel = nil
	t.mu.Unlock()

	// The first fix is applied before the watch exists so that nothing the
	// watch reports can be overwritten by it.
	t.notifyState(Tracking)
	t.deliver(gen, fix)

	id, err := t.provider.Watch(
		PositionOptions{HighAccuracy: true, Timeout: t.opts.WatchTimeout},
		func(f Fix) { t.deliver(gen, f) },
		func(err error) { _, _ = t.fail(gen, err) },
	)
	if err != nil {
		return t.fail(gen, err)
	}

	t.mu.Lock()
	if t.gen != gen {
		// disabled while the watch was being registered
		t.mu.Unlock()
		t.provider.ClearWatch(id)
		return Inactive, nil
	}
	t.watch = id
	t.watching = true
	t.mu.Unlock()

	t.logger.Info("tracking started", "watch_id", id)

	return Tracking, nil
}

// Stop releases the watch, if any, and returns to Inactive
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.state == Inactive {
		t.mu.Unlock()
		return
	}
	id, watching, cancel := t.resetLocked()
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if watching {
		t.provider.ClearWatch(id)
	}
	t.logger.Info("tracking stopped")
	t.notifyState(Inactive)
}

func (t *Tracker) fail(gen uint64, err error) (State, error) {
	t.mu.Lock()
	if t.gen != gen {
		// stale: this run was already stopped
		t.mu.Unlock()
		return Inactive, nil
	}
	id, watching, cancel := t.resetLocked()
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if watching {
		t.provider.ClearWatch(id)
	}

	pe := Categorize(err)
	t.logger.Warn("position error", "category", pe.Category, "error", err)
	t.notifyState(Inactive)
	if t.handlers.OnError != nil {
		t.handlers.OnError(pe)
	}
	return Inactive, pe
}

func (t *Tracker) deliver(gen uint64, f Fix) {
	t.mu.Lock()
	live := t.gen == gen && t.state != Inactive
	t.mu.Unlock()

	if live && t.handlers.OnFix != nil {
		t.handlers.OnFix(f)
	}
}

func (t *Tracker) resetLocked() (WatchID, bool, context.CancelFunc) {
	id, watching, cancel := t.watch, t.watching, t.cancel
	t.state = Inactive
	t.gen++
	t.watch = 0
	t.watching = false
	t.cancel = nil
	return id, watching, cancel
}

func (t *Tracker) notifyState(s State) {
	if t.handlers.OnState != nil {
		t.handlers.OnState(s)
	}
}
