package main

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medi-map/internal/location"
	"medi-map/internal/lookup"
	"medi-map/internal/panel"
	"medi-map/internal/types"
	"medi-map/internal/weather"
)

// CoordinatesInput defines the query parameters shared by the point endpoints
type CoordinatesInput struct {
	Latitude  *float64 `form:"lat" binding:"required"` // Latitude in decimal degrees
	Longitude *float64 `form:"lon" binding:"required"` // Longitude in decimal degrees
	// Elevation in meters for downscaling; "nan" disables it
	Elevation *float64 `form:"elevation"`
}

func (in CoordinatesInput) Coords() types.Coords {
	return types.NewCoords(*in.Latitude, *in.Longitude)
}

func (in CoordinatesInput) LookupOptions() []lookup.Option {
	if in.Elevation == nil {
		return nil
	}
	return []lookup.Option{lookup.WithElevation(*in.Elevation)}
}

type CityInput struct {
	City string `form:"city" binding:"required"`
}

type DMSInput struct {
	Coordinates string `form:"coordinates" binding:"required"` // e.g. 35°52'59.9"N 76°30'48.4"E
}

type SeriesInput struct {
	CoordinatesInput
	Days   int    `form:"days"`
	Params string `form:"params"` // comma separated hourly parameter names
}

// CurrentLocation is the location block of the current conditions response
type CurrentLocation struct {
	Elevation *float64 `json:"elevation" example:"5150"`
	Latitude  float64  `json:"latitude" example:"35.883"`
	Longitude float64  `json:"longitude" example:"76.513"`
	Timezone  string   `json:"timezone" example:"Asia/Karachi"`
}

type CurrentValues struct {
	Temperature   float64   `json:"temperature" example:"-18.5"`
	Humidity      float64   `json:"humidity" example:"40"`
	WindSpeed     float64   `json:"wind_speed" example:"42"`
	WindDirection float64   `json:"wind_direction" example:"300"`
	WindGusts     float64   `json:"wind_gusts" example:"70"`
	Rain          float64   `json:"rain" example:"0"`
	Time          time.Time `json:"time"`
}

// CurrentResponse is the compact current conditions payload
type CurrentResponse struct {
	Location CurrentLocation `json:"location"`
	Current  CurrentValues   `json:"current"`
}

type HourlyResponse struct {
	Timezone string                          `json:"timezone"`
	Days     int                             `json:"days"`
	Units    map[weather.Parameter]string    `json:"units"`
	Time     []time.Time                     `json:"time"`
	Values   map[weather.Parameter][]float64 `json:"values"`
}

type DailyResponse struct {
	Timezone string                 `json:"timezone"`
	Days     []weather.DailySummary `json:"days"`
}

// handleGetCurrent godoc
// @Summary Get current conditions
// @Description Current conditions and elevation for a coordinate
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90) example(35.883)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180) example(76.513)
// @Param elevation query number false "Elevation in meters used for downscaling, nan disables it" example(3100)
// @Success 200 {object} CurrentResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/current [get]
func (app *App) handleGetCurrent(c *gin.Context) {
	var input CoordinatesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), input.Coords(), input.LookupOptions()...)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	c.JSON(http.StatusOK, newCurrentResponse(result))
}

// handleGetCurrentDMS godoc
// @Summary Get current conditions for DMS coordinates
// @Description Same as /current, with the position given as degrees, minutes and seconds
// @Tags weather
// @Produce json
// @Param coordinates query string true "DMS pair" example(35°52'59.9"N 76°30'48.4"E)
// @Success 200 {object} CurrentResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/current/dms [get]
func (app *App) handleGetCurrentDMS(c *gin.Context) {
	var input DMSInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coords, err := types.ParseDMSPair(input.Coordinates)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), coords)
	if err != nil {
		app.respondError(c, err, coords)
		return
	}

	c.JSON(http.StatusOK, newCurrentResponse(result))
}

// handleGetCoordinates godoc
// @Summary Get the combined lookup result
// @Description Current conditions, hourly series, elevation and optional place name for a coordinate
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param elevation query number false "Elevation in meters used for downscaling, nan disables it" example(3100)
// @Success 200 {object} lookup.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/coordinates [get]
func (app *App) handleGetCoordinates(c *gin.Context) {
	var input CoordinatesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), input.Coords(), input.LookupOptions()...)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleGetCity godoc
// @Summary Get the combined lookup result for a city
// @Description Geocodes the city name, then runs the same lookup as /coordinates
// @Tags weather
// @Produce json
// @Param city query string true "City name" example(Skardu)
// @Success 200 {object} lookup.Result
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/city [get]
func (app *App) handleGetCity(c *gin.Context) {
	var input CityInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := app.locationService.Search(c.Request.Context(), input.City)
	if err != nil {
		if errors.Is(err, location.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "city not found"})
			return
		}
		app.logger.Error("failed to search city", "city", input.City, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search city"})
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), match.Coordinates)
	if err != nil {
		app.respondError(c, err, match.Coordinates)
		return
	}

	if result.Place == nil {
		place := match.Place
		result.Place = &place
	}

	c.JSON(http.StatusOK, result)
}

// handleGetHourly godoc
// @Summary Get the hourly series
// @Description Hourly forecast re-sliced to the requested days and parameters
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param days query int false "Days to include, clamped to the fetched span" minimum(1) maximum(16)
// @Param params query string false "Comma separated parameters" example(temperature_2m,precipitation)
// @Param elevation query number false "Elevation in meters used for downscaling, nan disables it" example(3100)
// @Success 200 {object} HourlyResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/hourly [get]
func (app *App) handleGetHourly(c *gin.Context) {
	var input SeriesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var params []weather.Parameter
	if input.Params != "" {
		parsed, err := weather.ParseParameters(input.Params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		params = parsed
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), input.Coords(), input.LookupOptions()...)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	series, err := result.Hourly.Slice(app.days(input.Days), params)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	units := make(map[weather.Parameter]string, len(series.Values))
	for p := range series.Values {
		units[p] = p.Unit()
	}

	c.JSON(http.StatusOK, HourlyResponse{
		Timezone: result.Timezone,
		Days:     series.Days(),
		Units:    units,
		Time:     series.Time,
		Values:   series.Values,
	})
}

// handleGetDaily godoc
// @Summary Get daily summaries
// @Description Per-day sunrise and sunset plus high and low temperature, precipitation and wind derived from the hourly series
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param days query int false "Days to include, clamped to the fetched span" minimum(1) maximum(16)
// @Param elevation query number false "Elevation in meters used for downscaling, nan disables it" example(3100)
// @Success 200 {object} DailyResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/weather/daily [get]
func (app *App) handleGetDaily(c *gin.Context) {
	var input SeriesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), input.Coords(), input.LookupOptions()...)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	series, err := result.Hourly.Slice(app.days(input.Days), nil)
	if err != nil {
		app.respondError(c, err, input.Coords())
		return
	}

	c.JSON(http.StatusOK, DailyResponse{
		Timezone: result.Timezone,
		Days:     series.DailyWithSun(result.Sun),
	})
}

// handleGetPanel godoc
// @Summary Get the rendered weather panel
// @Description HTML detail card for a coordinate. Failed lookups render the generic retry message.
// @Tags weather
// @Produce html
// @Param lat query number true "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number true "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param elevation query number false "Elevation in meters used for downscaling, nan disables it" example(3100)
// @Success 200 {string} string
// @Failure 400 {string} string
// @Failure 500 {string} string
// @Router /api/v1/weather/panel [get]
func (app *App) handleGetPanel(c *gin.Context) {
	var input CoordinatesInput
	if err := c.ShouldBindQuery(&input); err != nil {
		app.renderPanel(c, http.StatusBadRequest, panel.MessageView(err.Error()))
		return
	}

	result, err := app.lookupService.Lookup(c.Request.Context(), input.Coords(), input.LookupOptions()...)
	switch {
	case errors.Is(err, types.ErrInvalidCoordinate), errors.Is(err, weather.ErrInvalidElevation):
		app.renderPanel(c, http.StatusBadRequest, panel.MessageView(err.Error()))
	case err != nil:
		app.logger.Error("panel lookup failed", "coordinates", input.Coords().String(), "error", err)
		app.renderPanel(c, http.StatusInternalServerError, panel.ErrorView())
	default:
		app.renderPanel(c, http.StatusOK, panel.Build(result))
	}
}

func (app *App) renderPanel(c *gin.Context, status int, view panel.View) {
	var buf bytes.Buffer
	if err := panel.NewHTMLRenderer(&buf).Render(view); err != nil {
		app.logger.Error("failed to render panel", "error", err)
		c.String(http.StatusInternalServerError, panel.GenericErrorMessage)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// respondError maps validation failures to 400 and everything else to 500
func (app *App) respondError(c *gin.Context, err error, coords types.Coords) {
	switch {
	case errors.Is(err, types.ErrInvalidCoordinate),
		errors.Is(err, types.ErrInvalidDMS),
		errors.Is(err, weather.ErrUnknownParameter),
		errors.Is(err, weather.ErrInvalidElevation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		app.logger.Error("weather lookup failed",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": panel.GenericErrorMessage})
	}
}

// days falls back to the configured span when the query omits it
func (app *App) days(requested int) int {
	if requested == 0 {
		return app.cfg.App.ForecastDays
	}
	return requested
}

func newCurrentResponse(r *lookup.Result) CurrentResponse {
	resp := CurrentResponse{
		Location: CurrentLocation{
			Latitude:  r.Coordinates.Latitude,
			Longitude: r.Coordinates.Longitude,
			Timezone:  r.Timezone,
		},
		Current: CurrentValues{
			Temperature:   r.Conditions.Temperature.Celsius,
			Humidity:      r.Conditions.RelativeHumidity,
			WindSpeed:     r.Conditions.Wind.Speed.Kph,
			WindDirection: r.Conditions.Wind.Direction.Degrees,
			WindGusts:     r.Conditions.Wind.Gusts.Kph,
			Rain:          r.Conditions.Rain.Mm,
			Time:          r.Conditions.Time,
		},
	}
	if r.Elevation.Available {
		meters := r.Elevation.Meters
		resp.Location.Elevation = &meters
	}
	return resp
}
