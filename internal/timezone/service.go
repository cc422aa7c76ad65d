package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// Service resolves IANA zones from coordinates without a network call
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	// Location returns the loaded zone for a coordinate
	Location(latitude, longitude float64) (*time.Location, error)
}

type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service.
// tzf.Finder loads its polygon data into memory once.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns names like "America/Denver" or "Europe/London"
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timezone := s.finder.GetTimezoneName(longitude, latitude)
	if timezone == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}

	return timezone, nil
}

func (s *service) Location(latitude, longitude float64) (*time.Location, error) {
	name, err := s.GetTimezone(latitude, longitude)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}
