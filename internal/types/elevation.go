package types

import (
	"encoding/json"
	"fmt"
)

const FeetToMeters = 0.3048

// NotAvailable is how absent values are displayed
const NotAvailable = "N/A"

// Elevation is optional: providers may have no data for a point, which is
// a displayable state and not an error.
type Elevation struct {
	Meters    float64
	Feet      float64
	Available bool
}

func NewElevationFromMeters(meters float64) Elevation {
	return Elevation{
		Meters:    meters,
		Feet:      meters / FeetToMeters,
		Available: true,
	}
}

func NewElevationFromFeet(feet float64) Elevation {
	return Elevation{
		Meters:    feet * FeetToMeters,
		Feet:      feet,
		Available: true,
	}
}

// NoElevation is the absent value
func NoElevation() Elevation {
	return Elevation{}
}

func (e Elevation) String() string {
	if !e.Available {
		return NotAvailable
	}
	return fmt.Sprintf("%.0f meters", e.Meters)
}

// MarshalJSON writes the meters value, or null when absent
func (e Elevation) MarshalJSON() ([]byte, error) {
	if !e.Available {
		return []byte("null"), nil
	}
	return json.Marshal(e.Meters)
}
