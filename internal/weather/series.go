package weather

import (
	"fmt"
	"time"

	"medi-map/internal/types"
)

func (h HourlySeries) Len() int {
	return len(h.Time)
}

// Days counts the distinct calendar dates on the time axis
func (h HourlySeries) Days() int {
	return len(dayBoundaries(h.Time))
}

// Slice returns the first days calendar days restricted to params, without
// another fetch. days is clamped to [1, Days()]. An empty params keeps every
// fetched parameter.
func (h HourlySeries) Slice(days int, params []Parameter) (HourlySeries, error) {
	for _, p := range params {
		if !p.Valid() {
			return HourlySeries{}, fmt.Errorf("%w: %q", ErrUnknownParameter, p)
		}
		if _, ok := h.Values[p]; !ok {
			return HourlySeries{}, fmt.Errorf("%w: %q was not fetched", ErrUnknownParameter, p)
		}
	}
	if len(params) == 0 {
		for _, p := range HourlyParameters {
			if _, ok := h.Values[p]; ok {
				params = append(params, p)
			}
		}
	}

	bounds := dayBoundaries(h.Time)
	if len(bounds) == 0 {
		return HourlySeries{Values: map[Parameter][]float64{}}, nil
	}
	days = clampDays(days, len(bounds))

	end := len(h.Time)
	if days < len(bounds) {
		end = bounds[days]
	}

	out := HourlySeries{
		Time:   append([]time.Time(nil), h.Time[:end]...),
		Values: make(map[Parameter][]float64, len(params)),
	}
	for _, p := range params {
		values := h.Values[p]
		if len(values) != len(h.Time) {
			return HourlySeries{}, fmt.Errorf("%w: %s has %d values for %d timestamps", ErrMalformedSeries, p, len(values), len(h.Time))
		}
		out.Values[p] = append([]float64(nil), values[:end]...)
	}

	return out, nil
}

// Daily summarizes each calendar day in the series
func (h HourlySeries) Daily() []DailySummary {
	bounds := dayBoundaries(h.Time)
	summaries := make([]DailySummary, 0, len(bounds))

	for i, start := range bounds {
		end := len(h.Time)
		if i+1 < len(bounds) {
			end = bounds[i+1]
		}

		t := h.Time[start]
		summary := DailySummary{
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
			Hours: end - start,
		}

		temps := h.window(ParamTemperature, start, end)
		if high, ok := maxFloat(temps); ok {
			summary.HighTemperature = ptr(types.NewTemperatureFromCelsius(high))
		}
		if low, ok := minFloat(temps); ok {
			summary.LowTemperature = ptr(types.NewTemperatureFromCelsius(low))
		}
		if total, ok := sum(h.window(ParamPrecipitation, start, end)); ok {
			summary.TotalPrecipitation = ptr(types.NewPrecipitationFromMm(total))
		}
		rain, rainOK := sum(h.window(ParamRain, start, end))
		showers, showersOK := sum(h.window(ParamShowers, start, end))
		if rainOK || showersOK {
			summary.TotalRain = ptr(types.NewPrecipitationFromMm(rain + showers))
		}
		if total, ok := sum(h.window(ParamSnowfall, start, end)); ok {
			summary.TotalSnowfallCm = &total
		}
		if prob, ok := maxFloat(h.window(ParamPrecipitationProbability, start, end)); ok {
			summary.MaxPrecipitationProbability = &prob
		}
		if speed, ok := maxFloat(h.window(ParamWindSpeed, start, end)); ok {
			summary.MaxWindSpeed = ptr(types.NewWindSpeedFromKph(speed))
		}
		if gusts, ok := maxFloat(h.window(ParamWindGusts, start, end)); ok {
			summary.MaxWindGusts = ptr(types.NewWindSpeedFromKph(gusts))
		}

		// WMO codes rise with severity, so the day is described by its worst hour
		if code, ok := maxFloat(h.window(ParamWeatherCode, start, end)); ok {
			summary.Weather = ptr(types.NewWeather(int(code)))
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// DailyWithSun is Daily with sunrise and sunset filled in from sun by date
func (h HourlySeries) DailyWithSun(sun []SunTimes) []DailySummary {
	days := h.Daily()
	for i := range days {
		for _, st := range sun {
			if sameDate(days[i].Date, st.Date) {
				days[i].Sunrise = ptr(st.Sunrise)
				days[i].Sunset = ptr(st.Sunset)
				break
			}
		}
	}
	return days
}

// window returns the values of p in [start, end), tolerating short series
func (h HourlySeries) window(p Parameter, start, end int) []float64 {
	values := h.Values[p]
	if start >= len(values) {
		return nil
	}
	return values[start:min(end, len(values))]
}

// dayBoundaries returns the index of the first hour of each calendar date
func dayBoundaries(times []time.Time) []int {
	var (
		bounds []int
		last   time.Time
	)
	for i, t := range times {
		if i == 0 || !sameDate(t, last) {
			bounds = append(bounds, i)
		}
		last = t
	}
	return bounds
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func ptr[T any](v T) *T {
	return &v
}

func clampDays(days, available int) int {
	if days < 1 {
		return 1
	}
	if days > available {
		return available
	}
	return days
}
