// Package marker holds the map's location layer. The layer carries at most
// one feature; placing a new marker swaps it in a single step.
package marker

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"medi-map/internal/types"
)

// PulseDuration bounds the emphasis animation hint attached to a new marker
const PulseDuration = 600 * time.Millisecond

const (
	PinpointID = "pinpoint"
	GPSID      = "gps-position"
)

// Observer receives the layer contents after every change. Observers must not
// call Replace or Clear on the layer that notified them.
type Observer func(features []*geojson.Feature)

type Layer struct {
	// notifyMu keeps notifications in mutation order
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	feature   *geojson.Feature
	observers []Observer
}

func NewLayer() *Layer {
	return &Layer{}
}

// NewFeature builds a point marker for coords
func NewFeature(id string, coords types.Coords) *geojson.Feature {
	f := geojson.NewFeature(coords.Point())
	f.ID = id
	f.Properties["latitude"] = coords.Latitude
	f.Properties["longitude"] = coords.Longitude
	f.Properties["pulse_ms"] = PulseDuration.Milliseconds()
	return f
}

func (l *Layer) Subscribe(fn Observer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

// Replace clears the layer and adds f as one change. Observers see a single
// update and never an empty intermediate state.
func (l *Layer) Replace(f *geojson.Feature) {
	l.update(f)
}

// Place is Replace for a fresh point marker
func (l *Layer) Place(id string, coords types.Coords) {
	l.update(NewFeature(id, coords))
}

func (l *Layer) Clear() {
	l.update(nil)
}

func (l *Layer) update(f *geojson.Feature) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	l.feature = f
	snapshot := l.snapshotLocked()
	observers := append([]Observer(nil), l.observers...)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// Features returns a copy of the layer contents
func (l *Layer) Features() []*geojson.Feature {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

func (l *Layer) snapshotLocked() []*geojson.Feature {
	if l.feature == nil {
		return nil
	}
	return []*geojson.Feature{cloneFeature(l.feature)}
}

// Position reports where the marker sits, if any
func (l *Layer) Position() (types.Coords, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.feature == nil {
		return types.Coords{}, false
	}
	p, ok := l.feature.Geometry.(orb.Point)
	if !ok {
		return types.Coords{}, false
	}
	return types.CoordsFromPoint(p), true
}

// FeatureCollection returns the layer as a GeoJSON feature collection
func (l *Layer) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range l.Features() {
		fc.Append(f)
	}
	return fc
}

func (l *Layer) GeoJSON() ([]byte, error) {
	return json.Marshal(l.FeatureCollection())
}

func cloneFeature(f *geojson.Feature) *geojson.Feature {
	c := geojson.NewFeature(orb.Clone(f.Geometry))
	c.ID = f.ID
	for k, v := range f.Properties {
		c.Properties[k] = v
	}
	return c
}
