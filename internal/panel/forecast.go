package panel

import (
	"fmt"

	"medi-map/internal/types"
	"medi-map/internal/weather"
)

// ForecastView is a table of hourly samples, one column per parameter
type ForecastView struct {
	Days    int
	Columns []string
	Rows    []ForecastRow
	Daily   []DailyRow
}

type ForecastRow struct {
	Time   string
	Values []string
}

type DailyRow struct {
	Date          string
	Conditions    string
	High          string
	Low           string
	Precipitation string
}

// BuildForecast re-slices already fetched data; it never triggers a fetch.
// days is clamped to the fetched span.
func BuildForecast(series weather.HourlySeries, days int, params []weather.Parameter) (ForecastView, error) {
	sliced, err := series.Slice(days, params)
	if err != nil {
		return ForecastView{}, err
	}

	if len(params) == 0 {
		for _, p := range weather.HourlyParameters {
			if _, ok := sliced.Values[p]; ok {
				params = append(params, p)
			}
		}
	}

	view := ForecastView{
		Days:    sliced.Days(),
		Columns: make([]string, len(params)),
		Rows:    make([]ForecastRow, 0, sliced.Len()),
	}
	for i, p := range params {
		view.Columns[i] = columnLabel(p)
	}

	for i, t := range sliced.Time {
		row := ForecastRow{
			Time:   t.Format("Mon 01-02 15:04"),
			Values: make([]string, len(params)),
		}
		for j, p := range params {
			row.Values[j] = formatNumber(sliced.Values[p][i])
		}
		view.Rows = append(view.Rows, row)
	}

	// summaries use every fetched parameter, not just the selected columns
	all, err := series.Slice(days, nil)
	if err != nil {
		return ForecastView{}, err
	}
	for _, d := range all.Daily() {
		row := DailyRow{
			Date:          d.Date.Format("Mon 2006-01-02"),
			Conditions:    types.NotAvailable,
			High:          types.NotAvailable,
			Low:           types.NotAvailable,
			Precipitation: types.NotAvailable,
		}
		if d.Weather != nil {
			row.Conditions = d.Weather.Description
		}
		if d.HighTemperature != nil {
			row.High = formatNumber(d.HighTemperature.Celsius) + "°C"
		}
		if d.LowTemperature != nil {
			row.Low = formatNumber(d.LowTemperature.Celsius) + "°C"
		}
		if d.TotalPrecipitation != nil {
			row.Precipitation = formatNumber(d.TotalPrecipitation.Mm) + " mm"
		}
		view.Daily = append(view.Daily, row)
	}

	return view, nil
}

func columnLabel(p weather.Parameter) string {
	if unit := p.Unit(); unit != "" {
		return fmt.Sprintf("%s (%s)", p, unit)
	}
	return string(p)
}
