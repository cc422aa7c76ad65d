// Package panel turns lookup results into display-ready view models. Build
// and its siblings are pure; the renderers perform the output step.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"medi-map/internal/lookup"
	"medi-map/internal/types"
)

// GenericErrorMessage is shown for every failed lookup
const GenericErrorMessage = "Error fetching weather data. Please try again."

const LoadingMessage = "Loading..."

type State string

const (
	StateLoading State = "loading"
	StateResult  State = "result"
	StateError   State = "error"
)

type Row struct {
	Label string
	Value string
}

// View is the detail panel content
type View struct {
	State   State
	Title   string
	Rows    []Row
	Message string
}

// Build renders a result into rows. The same result always yields the same view.
func Build(r *lookup.Result) View {
	if r == nil {
		return ErrorView()
	}

	c := r.Conditions
	rows := []Row{
		{Label: "Location", Value: r.Coordinates.String()},
	}
	if r.Place != nil && r.Place.Name != "" {
		rows = append(rows, Row{Label: "Place", Value: placeLabel(r.Place)})
	}
	rows = append(rows,
		Row{Label: "Elevation", Value: r.Elevation.String()},
		Row{Label: "Conditions", Value: c.Weather.Description},
		Row{Label: "Temperature", Value: formatNumber(c.Temperature.Celsius) + "°C"},
		Row{Label: "Feels Like", Value: formatNumber(c.ApparentTemperature.Celsius) + "°C"},
		Row{Label: "Humidity", Value: formatNumber(c.RelativeHumidity) + "%"},
		Row{Label: "Cloud Cover", Value: formatNumber(c.CloudCover) + "%"},
		Row{Label: "Wind Speed", Value: formatNumber(c.Wind.Speed.Kph) + " km/h"},
		Row{Label: "Wind Direction", Value: fmt.Sprintf("%s° (%s)", formatNumber(c.Wind.Direction.Degrees), c.Wind.Direction.Cardinal)},
		Row{Label: "Wind Gusts", Value: formatNumber(c.Wind.Gusts.Kph) + " km/h"},
		Row{Label: "Rain", Value: formatNumber(c.Rain.Mm) + " mm"},
		Row{Label: "Last Updated", Value: formatTime(c.Time, r.Timezone)},
	)

	return View{
		State: StateResult,
		Title: "Current Weather",
		Rows:  rows,
	}
}

// LoadingView is shown between pinpointing and the joined result
func LoadingView(coords types.Coords) View {
	return View{
		State:   StateLoading,
		Title:   "Current Weather",
		Rows:    []Row{{Label: "Location", Value: coords.String()}},
		Message: LoadingMessage,
	}
}

// ErrorView never carries partial data
func ErrorView() View {
	return View{
		State:   StateError,
		Title:   "Current Weather",
		Message: GenericErrorMessage,
	}
}

// MessageView shows a status line without rows, e.g. a GPS failure
func MessageView(message string) View {
	return View{
		State:   StateError,
		Title:   "Current Weather",
		Message: message,
	}
}

func placeLabel(p *types.Place) string {
	switch {
	case p.State != "" && p.Country != "":
		return fmt.Sprintf("%s, %s, %s", p.Name, p.State, p.Country)
	case p.Country != "":
		return fmt.Sprintf("%s, %s", p.Name, p.Country)
	default:
		return p.Name
	}
}

// formatNumber rounds to two decimals and drops trailing zeros, so 12.0
// renders as 12 and summed 0.6000000000000001 as 0.6
func formatNumber(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time, timezone string) string {
	if t.IsZero() {
		return types.NotAvailable
	}
	out := t.Format("2006-01-02 15:04")
	if timezone != "" {
		out += " " + timezone
	}
	return out
}
