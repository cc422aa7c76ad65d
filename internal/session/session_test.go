package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb/geojson"

	"medi-map/internal/gps"
	"medi-map/internal/lookup"
	"medi-map/internal/marker"
	"medi-map/internal/panel"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingRenderer struct {
	mu        sync.Mutex
	views     []panel.View
	forecasts []panel.ForecastView
}

func (r *recordingRenderer) Render(v panel.View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
	return nil
}

func (r *recordingRenderer) RenderForecast(v panel.ForecastView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forecasts = append(r.forecasts, v)
	return nil
}

func (r *recordingRenderer) states() []panel.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]panel.State, len(r.views))
	for i, v := range r.views {
		out[i] = v.State
	}
	return out
}

func (r *recordingRenderer) lastView() panel.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

// mockLookupService answers from fn, counting calls
type mockLookupService struct {
	fn    func(ctx context.Context, coords types.Coords) (*lookup.Result, error)
	calls atomic.Int32
}

func (m *mockLookupService) Lookup(ctx context.Context, coords types.Coords, _ ...lookup.Option) (*lookup.Result, error) {
	m.calls.Add(1)
	return m.fn(ctx, coords)
}

func succeed(ctx context.Context, coords types.Coords) (*lookup.Result, error) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return &lookup.Result{
		Coordinates: coords,
		Conditions:  weather.CurrentConditions{Weather: types.NewWeather(0)},
		Elevation:   types.NewElevationFromMeters(2400),
		Hourly: weather.HourlySeries{
			Time: []time.Time{base, base.Add(time.Hour), base.Add(24 * time.Hour)},
			Values: map[weather.Parameter][]float64{
				weather.ParamTemperature: {-3, -1, 2},
			},
		},
		Timezone: "UTC",
	}, nil
}

func TestSession_PinpointTwiceLeavesOneMarkerAtLatest(t *testing.T) {
	svc := &mockLookupService{fn: succeed}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, nil, Options{}, discardLogger())

	a := types.NewCoords(39.19, -106.82)
	b := types.NewCoords(35.88, 76.51)

	if _, err := s.Pinpoint(context.Background(), a); err != nil {
		t.Fatalf("Pinpoint(A) error = %v", err)
	}
	res, err := s.Pinpoint(context.Background(), b)
	if err != nil {
		t.Fatalf("Pinpoint(B) error = %v", err)
	}

	if n := len(s.Layer().Features()); n != 1 {
		t.Fatalf("markers = %d, want 1", n)
	}
	if pos, _ := s.Layer().Position(); pos != b {
		t.Errorf("marker at %v, want %v", pos, b)
	}
	if res.Sequence != 2 || s.Last() != res {
		t.Errorf("Sequence = %d, Last() = %p; want 2, %p", res.Sequence, s.Last(), res)
	}

	want := []panel.State{panel.StateLoading, panel.StateResult, panel.StateLoading, panel.StateResult}
	if diff := cmp.Diff(want, renderer.states()); diff != "" {
		t.Errorf("render states mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_InvalidCoordinateIssuesNoLookup(t *testing.T) {
	svc := &mockLookupService{fn: succeed}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, nil, Options{}, discardLogger())

	_, err := s.Pinpoint(context.Background(), types.NewCoords(95, 0))

	if !errors.Is(err, types.ErrInvalidCoordinate) {
		t.Fatalf("Pinpoint() error = %v, want ErrInvalidCoordinate", err)
	}
	if svc.calls.Load() != 0 {
		t.Errorf("lookup calls = %d, want 0", svc.calls.Load())
	}
	if len(s.Layer().Features()) != 0 {
		t.Error("marker placed for invalid coordinate")
	}
	if got := renderer.lastView().Message; got != InvalidCoordinateMessage {
		t.Errorf("message = %q", got)
	}
}

func TestSession_FailureRendersGenericError(t *testing.T) {
	svc := &mockLookupService{fn: func(ctx context.Context, coords types.Coords) (*lookup.Result, error) {
		return nil, lookup.ErrLookupFailed
	}}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, nil, Options{}, discardLogger())

	_, err := s.Pinpoint(context.Background(), types.NewCoords(10, 10))
	if !errors.Is(err, lookup.ErrLookupFailed) {
		t.Fatalf("Pinpoint() error = %v", err)
	}

	v := renderer.lastView()
	if v.State != panel.StateError || v.Message != panel.GenericErrorMessage || len(v.Rows) != 0 {
		t.Errorf("last view = %+v, want generic error without rows", v)
	}
	if s.Last() != nil {
		t.Error("Last() set after a failed lookup")
	}
}

func TestSession_StaleResultIsDropped(t *testing.T) {
	slow := types.NewCoords(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})

	svc := &mockLookupService{fn: func(ctx context.Context, coords types.Coords) (*lookup.Result, error) {
		if coords == slow {
			close(started)
			<-release
		}
		return succeed(ctx, coords)
	}}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, nil, Options{}, discardLogger())

	errc := make(chan error, 1)
	go func() {
		_, err := s.Pinpoint(context.Background(), slow)
		errc <- err
	}()
	<-started

	fast := types.NewCoords(2, 2)
	if _, err := s.Pinpoint(context.Background(), fast); err != nil {
		t.Fatalf("Pinpoint(fast) error = %v", err)
	}
	close(release)

	if err := <-errc; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Pinpoint(slow) error = %v, want ErrSuperseded", err)
	}
	if got := s.Last().Coordinates; got != fast {
		t.Errorf("Last().Coordinates = %v, want %v", got, fast)
	}
	if got := renderer.lastView().Rows[0].Value; got != fast.String() {
		t.Errorf("panel shows %q, want %q", got, fast.String())
	}
}

// logRenderer appends loading views to a log shared with a layer observer
type logRenderer struct {
	recordingRenderer
	log func(string)
}

func (r *logRenderer) Render(v panel.View) error {
	if v.State == panel.StateLoading {
		r.log("loading " + v.Rows[0].Value)
	}
	return r.recordingRenderer.Render(v)
}

func TestSession_ConcurrentPinpointsKeepMarkerWithSequence(t *testing.T) {
	var (
		mu     sync.Mutex
		events []string
	)
	record := func(e string) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	}

	renderer := &logRenderer{log: record}
	s := New(&mockLookupService{fn: succeed}, renderer, nil, Options{}, discardLogger())
	s.Layer().Subscribe(func(features []*geojson.Feature) {
		if len(features) == 1 {
			record("marker " + types.CoordsFromPoint(features[0].Point()).String())
		}
	})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(c types.Coords) {
			defer wg.Done()
			if _, err := s.Pinpoint(context.Background(), c); err != nil && !errors.Is(err, ErrSuperseded) {
				t.Errorf("Pinpoint(%v) error = %v", c, err)
			}
		}(types.NewCoords(float64(i), float64(i)))
	}
	wg.Wait()

	if len(events) != 16 {
		t.Fatalf("events = %d, want 16: %v", len(events), events)
	}
	for i := 0; i < len(events); i += 2 {
		m, l := events[i][len("marker "):], events[i+1][len("loading "):]
		if m != l {
			t.Errorf("marker %q followed by loading %q", m, l)
		}
	}

	pos, _ := s.Layer().Position()
	if last := s.Last(); last == nil || last.Coordinates != pos {
		t.Errorf("Last() = %v, marker at %v", last, pos)
	}
}

func TestSession_ShowForecast(t *testing.T) {
	renderer := &recordingRenderer{}
	s := New(&mockLookupService{fn: succeed}, renderer, nil, Options{}, discardLogger())

	if err := s.ShowForecast(3, nil); !errors.Is(err, ErrNoResult) {
		t.Fatalf("ShowForecast() before lookup error = %v, want ErrNoResult", err)
	}

	if _, err := s.Pinpoint(context.Background(), types.NewCoords(10, 10)); err != nil {
		t.Fatalf("Pinpoint() error = %v", err)
	}

	// more days than fetched are clamped
	if err := s.ShowForecast(10, []weather.Parameter{weather.ParamTemperature}); err != nil {
		t.Fatalf("ShowForecast() error = %v", err)
	}
	if err := s.ShowForecast(1, []weather.Parameter{weather.ParamSnowfall}); !errors.Is(err, weather.ErrUnknownParameter) {
		t.Errorf("ShowForecast(snowfall) error = %v, want ErrUnknownParameter", err)
	}

	if len(renderer.forecasts) != 1 {
		t.Fatalf("forecast renders = %d, want 1", len(renderer.forecasts))
	}
	fv := renderer.forecasts[0]
	if fv.Days != 2 || len(fv.Rows) != 3 {
		t.Errorf("forecast days = %d rows = %d; want 2 and 3", fv.Days, len(fv.Rows))
	}
}

func TestSession_GPSTracking(t *testing.T) {
	start := types.NewCoords(39.1911, -106.8175)
	provider := gps.NewStaticProvider(start)
	svc := &mockLookupService{fn: succeed}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, provider, Options{MinMoveMeters: 250}, discardLogger())

	state, err := s.ToggleGPS(context.Background())
	if err != nil || state != gps.Tracking {
		t.Fatalf("ToggleGPS() = %v, %v; want tracking", state, err)
	}
	if svc.calls.Load() != 1 {
		t.Errorf("lookups after first fix = %d, want 1", svc.calls.Load())
	}

	// roughly 11 m north: re-center and move the marker, no new lookup
	nudge := types.NewCoords(39.1912, -106.8175)
	provider.Push(nudge)
	if svc.calls.Load() != 1 {
		t.Errorf("lookups after small move = %d, want 1", svc.calls.Load())
	}
	if c, _ := s.Center(); c != nudge {
		t.Errorf("Center() = %v, want %v", c, nudge)
	}

	// roughly 1.1 km north
	far := types.NewCoords(39.2011, -106.8175)
	provider.Push(far)
	if svc.calls.Load() != 2 {
		t.Errorf("lookups after large move = %d, want 2", svc.calls.Load())
	}

	features := s.Layer().Features()
	if len(features) != 1 || features[0].ID != marker.GPSID {
		t.Fatalf("features = %v, want the single GPS marker", features)
	}
	if pos, _ := s.Layer().Position(); pos != far {
		t.Errorf("marker at %v, want %v", pos, far)
	}

	state, err = s.ToggleGPS(context.Background())
	if err != nil || state != gps.Inactive {
		t.Fatalf("disable ToggleGPS() = %v, %v", state, err)
	}
	if len(s.Layer().Features()) != 0 {
		t.Error("marker left after disabling GPS")
	}
	if provider.ActiveWatches() != 0 {
		t.Errorf("ActiveWatches() = %d, want 0", provider.ActiveWatches())
	}
}

// eagerProvider reports the next position from inside Watch, before the
// watch id is returned
type eagerProvider struct {
	*gps.StaticProvider
	next types.Coords
}

func (p *eagerProvider) Watch(opts gps.PositionOptions, onFix func(gps.Fix), onError func(error)) (gps.WatchID, error) {
	id, err := p.StaticProvider.Watch(opts, onFix, onError)
	if err == nil {
		onFix(gps.Fix{Coords: p.next, Time: time.Now()})
	}
	return id, err
}

func TestSession_GPSWatchFixAfterFirstFixWins(t *testing.T) {
	first := types.NewCoords(10, 10)
	newer := types.NewCoords(20, 20)
	provider := &eagerProvider{StaticProvider: gps.NewStaticProvider(first), next: newer}
	svc := &mockLookupService{fn: succeed}
	s := New(svc, &recordingRenderer{}, provider, Options{MinMoveMeters: 250}, discardLogger())

	if state, err := s.ToggleGPS(context.Background()); err != nil || state != gps.Tracking {
		t.Fatalf("ToggleGPS() = %v, %v; want tracking", state, err)
	}

	if pos, _ := s.Layer().Position(); pos != newer {
		t.Errorf("marker at %v, want %v", pos, newer)
	}
	if c, _ := s.Center(); c != newer {
		t.Errorf("Center() = %v, want %v", c, newer)
	}
	if last := s.Last(); last == nil || last.Coordinates != newer {
		t.Errorf("Last() = %v, want result for %v", last, newer)
	}
	if svc.calls.Load() != 2 {
		t.Errorf("lookups = %d, want 2", svc.calls.Load())
	}
}

func TestSession_GPSFailure(t *testing.T) {
	provider := gps.NewStaticProvider(types.NewCoords(0, 0))
	provider.SetError(gps.ErrPermissionDenied)
	svc := &mockLookupService{fn: succeed}
	renderer := &recordingRenderer{}
	s := New(svc, renderer, provider, Options{}, discardLogger())

	state, err := s.ToggleGPS(context.Background())

	var pe *gps.PositionError
	if !errors.As(err, &pe) || pe.Category != gps.CategoryPermission {
		t.Fatalf("ToggleGPS() error = %v, want permission PositionError", err)
	}
	if state != gps.Inactive || s.GPSState() != gps.Inactive {
		t.Errorf("state = %v / %v, want inactive", state, s.GPSState())
	}
	if svc.calls.Load() != 0 {
		t.Errorf("lookups = %d, want 0", svc.calls.Load())
	}
	if got := renderer.lastView().Message; got != gps.CategoryPermission.Message() {
		t.Errorf("message = %q", got)
	}
}

func TestSession_WithoutProvider(t *testing.T) {
	s := New(&mockLookupService{fn: succeed}, &recordingRenderer{}, nil, Options{}, discardLogger())
	if _, err := s.ToggleGPS(context.Background()); !errors.Is(err, ErrNoGPS) {
		t.Errorf("ToggleGPS() error = %v, want ErrNoGPS", err)
	}
}

func TestSessions_AreIndependent(t *testing.T) {
	svc := &mockLookupService{fn: succeed}
	one := New(svc, &recordingRenderer{}, nil, Options{}, discardLogger())
	two := New(svc, &recordingRenderer{}, nil, Options{}, discardLogger())

	if _, err := one.Pinpoint(context.Background(), types.NewCoords(5, 5)); err != nil {
		t.Fatalf("Pinpoint() error = %v", err)
	}

	if two.Last() != nil || len(two.Layer().Features()) != 0 {
		t.Error("second session observed state from the first")
	}
}
