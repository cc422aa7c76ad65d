package gps

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"medi-map/internal/types"
)

type watcher struct {
	onFix   func(Fix)
	onError func(error)
}

// StaticProvider answers with a fixed position. Push and Fail drive its
// watches by hand.
type StaticProvider struct {
	mu      sync.Mutex
	fix     Fix
	err     error
	nextID  WatchID
	watches map[WatchID]watcher
}

func NewStaticProvider(coords types.Coords) *StaticProvider {
	return &StaticProvider{
		fix:     Fix{Coords: coords},
		watches: make(map[WatchID]watcher),
	}
}

// SetError makes every later GetCurrentFix and Watch call fail with err
func (p *StaticProvider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *StaticProvider) GetCurrentFix(ctx context.Context, opts PositionOptions) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return Fix{}, p.err
	}
	fix := p.fix
	fix.Time = time.Now()
	return fix, nil
}

func (p *StaticProvider) Watch(opts PositionOptions, onFix func(Fix), onError func(error)) (WatchID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return 0, p.err
	}
	p.nextID++
	p.watches[p.nextID] = watcher{onFix: onFix, onError: onError}
	return p.nextID, nil
}

func (p *StaticProvider) ClearWatch(id WatchID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.watches, id)
}

// ActiveWatches counts watches that have not been cleared
func (p *StaticProvider) ActiveWatches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.watches)
}

// Push moves the provider to coords and reports it to every watch
func (p *StaticProvider) Push(coords types.Coords) {
	fix := Fix{Coords: coords, Time: time.Now()}
	p.mu.Lock()
	p.fix = fix
	watches := p.snapshot()
	p.mu.Unlock()

	for _, w := range watches {
		w.onFix(fix)
	}
}

// Fail reports err to every watch
func (p *StaticProvider) Fail(err error) {
	p.mu.Lock()
	watches := p.snapshot()
	p.mu.Unlock()

	for _, w := range watches {
		w.onError(err)
	}
}

func (p *StaticProvider) snapshot() []watcher {
	out := make([]watcher, 0, len(p.watches))
	for _, w := range p.watches {
		out = append(out, w)
	}
	return out
}

// ReplayProvider plays back recorded fixes. The first fix answers
// GetCurrentFix; a watch emits the rest, one per interval.
type ReplayProvider struct {
	fixes    []Fix
	interval time.Duration

	mu      sync.Mutex
	nextID  WatchID
	watches map[WatchID]chan struct{}
	wg      sync.WaitGroup
}

// NewReplayProvider reads `lat,lon[,accuracy]` records. Blank lines and
// lines starting with # are skipped.
func NewReplayProvider(r io.Reader, interval time.Duration) (*ReplayProvider, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}

	fixes := make([]Fix, 0, len(records))
	for i, rec := range records {
		fix, err := parseFixRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("replay line %d: %w", i+1, err)
		}
		fixes = append(fixes, fix)
	}
	if len(fixes) == 0 {
		return nil, errors.New("replay contains no fixes")
	}
	if interval <= 0 {
		interval = time.Second
	}

	return &ReplayProvider{
		fixes:    fixes,
		interval: interval,
		watches:  make(map[WatchID]chan struct{}),
	}, nil
}

func OpenReplayFile(path string, interval time.Duration) (*ReplayProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	return NewReplayProvider(f, interval)
}

func parseFixRecord(rec []string) (Fix, error) {
	if len(rec) < 2 || len(rec) > 3 {
		return Fix{}, fmt.Errorf("expected lat,lon[,accuracy], got %d fields", len(rec))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return Fix{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return Fix{}, fmt.Errorf("longitude: %w", err)
	}

	coords := types.NewCoords(lat, lon)
	if err := coords.Validate(); err != nil {
		return Fix{}, err
	}

	fix := Fix{Coords: coords}
	if len(rec) == 3 {
		if fix.Accuracy, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
			return Fix{}, fmt.Errorf("accuracy: %w", err)
		}
	}
	return fix, nil
}

func (p *ReplayProvider) Len() int {
	return len(p.fixes)
}

func (p *ReplayProvider) GetCurrentFix(ctx context.Context, opts PositionOptions) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	fix := p.fixes[0]
	fix.Time = time.Now()
	return fix, nil
}

// Watch emits the remaining fixes and then goes quiet; the replay running
// out is not an error.
func (p *ReplayProvider) Watch(opts PositionOptions, onFix func(Fix), onError func(error)) (WatchID, error) {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	stop := make(chan struct{})
	p.watches[id] = stop
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for _, fix := range p.fixes[1:] {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fix.Time = time.Now()
				onFix(fix)
			}
		}
	}()

	return id, nil
}

func (p *ReplayProvider) ClearWatch(id WatchID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if stop, ok := p.watches[id]; ok {
		close(stop)
		delete(p.watches, id)
	}
}

// Wait blocks until every watch has finished or been cleared
func (p *ReplayProvider) Wait() {
	p.wg.Wait()
}
