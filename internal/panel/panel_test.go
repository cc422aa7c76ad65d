package panel

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"medi-map/internal/lookup"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

func sampleResult() *lookup.Result {
	karachi := time.FixedZone("PKT", 5*3600)
	return &lookup.Result{
		Coordinates: types.NewCoords(35.883, 76.513),
		Conditions: weather.CurrentConditions{
			Time:                time.Date(2025, 7, 1, 14, 0, 0, 0, karachi),
			Temperature:         types.NewTemperatureFromCelsius(-4.5),
			ApparentTemperature: types.NewTemperatureFromCelsius(-11),
			RelativeHumidity:    55,
			CloudCover:          20,
			Rain:                types.NewPrecipitationFromMm(0),
			Wind:                types.NewWindFromKph(36, 58, 315),
			Weather:             types.NewWeather(1),
		},
		Elevation: types.NewElevationFromMeters(5150),
		Timezone:  "Asia/Karachi",
	}
}

func TestBuild(t *testing.T) {
	got := Build(sampleResult())

	want := View{
		State: StateResult,
		Title: "Current Weather",
		Rows: []Row{
			{Label: "Location", Value: "35.8830°, 76.5130°"},
			{Label: "Elevation", Value: "5150 meters"},
			{Label: "Conditions", Value: "Mainly clear"},
			{Label: "Temperature", Value: "-4.5°C"},
			{Label: "Feels Like", Value: "-11°C"},
			{Label: "Humidity", Value: "55%"},
			{Label: "Cloud Cover", Value: "20%"},
			{Label: "Wind Speed", Value: "36 km/h"},
			{Label: "Wind Direction", Value: "315° (NW)"},
			{Label: "Wind Gusts", Value: "58 km/h"},
			{Label: "Rain", Value: "0 mm"},
			{Label: "Last Updated", Value: "2025-07-01 14:00 Asia/Karachi"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_IsPure(t *testing.T) {
	r := sampleResult()
	if diff := cmp.Diff(Build(r), Build(r)); diff != "" {
		t.Errorf("Build() not deterministic:\n%s", diff)
	}
}

func TestBuild_AbsentElevationAndPlace(t *testing.T) {
	r := sampleResult()
	r.Elevation = types.NoElevation()
	r.Place = &types.Place{Name: "Concordia", State: "Gilgit-Baltistan", Country: "Pakistan"}

	rows := map[string]string{}
	for _, row := range Build(r).Rows {
		rows[row.Label] = row.Value
	}

	if rows["Elevation"] != "N/A" {
		t.Errorf("Elevation = %q, want N/A", rows["Elevation"])
	}
	if rows["Place"] != "Concordia, Gilgit-Baltistan, Pakistan" {
		t.Errorf("Place = %q", rows["Place"])
	}
}

func TestBuild_UnknownWeatherCode(t *testing.T) {
	r := sampleResult()
	r.Conditions.Weather = types.NewWeather(42)

	for _, row := range Build(r).Rows {
		if row.Label == "Conditions" && row.Value != "Unknown" {
			t.Errorf("Conditions = %q, want Unknown", row.Value)
		}
	}
}

func TestErrorView(t *testing.T) {
	v := ErrorView()
	if v.State != StateError {
		t.Errorf("State = %q, want error", v.State)
	}
	if v.Message != "Error fetching weather data. Please try again." {
		t.Errorf("Message = %q", v.Message)
	}
	if len(v.Rows) != 0 {
		t.Errorf("ErrorView carries %d rows, want none", len(v.Rows))
	}
	if got := Build(nil); got.State != StateError {
		t.Errorf("Build(nil).State = %q, want error", got.State)
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	if err := r.Render(LoadingView(types.NewCoords(1, 2))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := r.Render(Build(sampleResult())); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Loading...", "Temperature     -4.5°C", "Wind Direction  315° (NW)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHTMLRenderer_Escapes(t *testing.T) {
	r := sampleResult()
	r.Place = &types.Place{Name: `<script>alert(1)</script>`}

	var buf bytes.Buffer
	if err := NewHTMLRenderer(&buf).Render(Build(r)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Errorf("place name not escaped:\n%s", out)
	}
	if !strings.Contains(out, "<p><strong>Temperature:</strong> -4.5°C</p>") {
		t.Errorf("temperature row missing:\n%s", out)
	}
	if !strings.Contains(out, `weather-panel--result`) {
		t.Errorf("state class missing:\n%s", out)
	}
}

func TestBuildForecast(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	series := weather.HourlySeries{
		Time: []time.Time{base, base.Add(time.Hour), base.Add(24 * time.Hour), base.Add(25 * time.Hour)},
		Values: map[weather.Parameter][]float64{
			weather.ParamTemperature:   {-6, -4, 1, 2},
			weather.ParamPrecipitation: {0, 1.5, 0, 0},
			weather.ParamWeatherCode:   {0, 61, 3, 3},
		},
	}

	got, err := BuildForecast(series, 1, []weather.Parameter{weather.ParamPrecipitation})
	if err != nil {
		t.Fatalf("BuildForecast() error = %v", err)
	}

	want := ForecastView{
		Days:    1,
		Columns: []string{"precipitation (mm)"},
		Rows: []ForecastRow{
			{Time: "Wed 01-15 00:00", Values: []string{"0"}},
			{Time: "Wed 01-15 01:00", Values: []string{"1.5"}},
		},
		Daily: []DailyRow{
			{Date: "Wed 2025-01-15", Conditions: "Slight rain", High: "-4°C", Low: "-6°C", Precipitation: "1.5 mm"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildForecast() mismatch (-want +got):\n%s", diff)
	}

	if _, err := BuildForecast(series, 1, []weather.Parameter{"dew_point"}); !errors.Is(err, weather.ErrUnknownParameter) {
		t.Errorf("BuildForecast() error = %v, want ErrUnknownParameter", err)
	}

	var buf bytes.Buffer
	if err := NewTextRenderer(&buf).RenderForecast(got); err != nil {
		t.Fatalf("RenderForecast() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Forecast (1 day)") {
		t.Errorf("forecast header missing:\n%s", buf.String())
	}
}

func TestBuildForecast_MissingParameters(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	series := weather.HourlySeries{
		Time: []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)},
		Values: map[weather.Parameter][]float64{
			weather.ParamPrecipitation: {0.1, 0.2, 0.3},
		},
	}

	got, err := BuildForecast(series, 1, nil)
	if err != nil {
		t.Fatalf("BuildForecast() error = %v", err)
	}

	want := []DailyRow{{
		Date:          "Wed 2025-01-15",
		Conditions:    types.NotAvailable,
		High:          types.NotAvailable,
		Low:           types.NotAvailable,
		Precipitation: "0.6 mm",
	}}
	if diff := cmp.Diff(want, got.Daily); diff != "" {
		t.Errorf("Daily mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildForecast_RaggedSeries(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	series := weather.HourlySeries{
		Time: []time.Time{base, base.Add(time.Hour), base.Add(2 * time.Hour)},
		Values: map[weather.Parameter][]float64{
			weather.ParamTemperature: {-5, -4},
		},
	}

	if _, err := BuildForecast(series, 1, []weather.Parameter{weather.ParamTemperature}); !errors.Is(err, weather.ErrMalformedSeries) {
		t.Errorf("BuildForecast() error = %v, want ErrMalformedSeries", err)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 12, want: "12"},
		{in: -4.5, want: "-4.5"},
		{in: 0.1 + 0.2 + 0.3, want: "0.6"},
		{in: 2.345678, want: "2.35"},
		{in: -0.001, want: "0"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
