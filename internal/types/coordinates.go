package types

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidDMS        = errors.New("invalid DMS coordinate")
)

type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// IsValidCoordinate reports whether lat is in [-90, 90] and lon in [-180, 180].
// NaN is never valid.
func IsValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (c Coords) IsValid() bool {
	return IsValidCoordinate(c.Latitude, c.Longitude)
}

// Validate returns ErrInvalidCoordinate when c is out of range
func (c Coords) Validate() error {
	if !c.IsValid() {
		return fmt.Errorf("%w: latitude=%v longitude=%v", ErrInvalidCoordinate, c.Latitude, c.Longitude)
	}
	return nil
}

// Point returns c as an orb point (longitude first)
func (c Coords) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

func CoordsFromPoint(p orb.Point) Coords {
	return Coords{Latitude: p.Lat(), Longitude: p.Lon()}
}

func (c Coords) String() string {
	return fmt.Sprintf("%.4f°, %.4f°", c.Latitude, c.Longitude)
}

// 35°52'59.9"N
var dmsPattern = regexp.MustCompile(`^(\d+)°(\d+)'(\d+(?:\.\d*)?)"([NSEW])$`)

// ParseDMS converts a single degrees-minutes-seconds value to decimal degrees
func ParseDMS(value string) (float64, string, error) {
	m := dmsPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidDMS, value)
	}

	degrees, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	if minutes >= 60 || seconds >= 60 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidDMS, value)
	}

	decimal := degrees + minutes/60 + seconds/3600
	hemisphere := m[4]
	if hemisphere == "S" || hemisphere == "W" {
		decimal = -decimal
	}

	return decimal, hemisphere, nil
}

// ParseDMSPair parses `35°52'59.9"N 76°30'48.4"E` into validated coordinates
func ParseDMSPair(value string) (Coords, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return Coords{}, fmt.Errorf("%w: expected latitude and longitude separated by a space", ErrInvalidDMS)
	}

	lat, latHemisphere, err := ParseDMS(parts[0])
	if err != nil {
		return Coords{}, err
	}
	if latHemisphere != "N" && latHemisphere != "S" {
		return Coords{}, fmt.Errorf("%w: latitude must end in N or S", ErrInvalidDMS)
	}

	lon, lonHemisphere, err := ParseDMS(parts[1])
	if err != nil {
		return Coords{}, err
	}
	if lonHemisphere != "E" && lonHemisphere != "W" {
		return Coords{}, fmt.Errorf("%w: longitude must end in E or W", ErrInvalidDMS)
	}

	coords := NewCoords(round(lat, 6), round(lon, 6))
	if err := coords.Validate(); err != nil {
		return Coords{}, err
	}
	return coords, nil
}

func round(value float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}
