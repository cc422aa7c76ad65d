package weather

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownParameter = errors.New("unknown hourly parameter")
	ErrMalformedSeries  = errors.New("hourly series is malformed")
)

// Parameter names an hourly variable using the Open-Meteo identifier
type Parameter string

const (
	ParamTemperature              Parameter = "temperature_2m"
	ParamApparentTemperature      Parameter = "apparent_temperature"
	ParamRelativeHumidity         Parameter = "relative_humidity_2m"
	ParamPrecipitation            Parameter = "precipitation"
	ParamPrecipitationProbability Parameter = "precipitation_probability"
	ParamRain                     Parameter = "rain"
	ParamShowers                  Parameter = "showers"
	ParamSnowfall                 Parameter = "snowfall"
	ParamWeatherCode              Parameter = "weather_code"
	ParamCloudCover               Parameter = "cloud_cover"
	ParamWindSpeed                Parameter = "wind_speed_10m"
	ParamWindDirection            Parameter = "wind_direction_10m"
	ParamWindGusts                Parameter = "wind_gusts_10m"
	ParamUVIndex                  Parameter = "uv_index"
	ParamIsDay                    Parameter = "is_day"
)

// HourlyParameters is everything fetched per lookup, in display order
var HourlyParameters = []Parameter{
	ParamTemperature,
	ParamApparentTemperature,
	ParamRelativeHumidity,
	ParamPrecipitation,
	ParamPrecipitationProbability,
	ParamRain,
	ParamShowers,
	ParamSnowfall,
	ParamWeatherCode,
	ParamCloudCover,
	ParamWindSpeed,
	ParamWindDirection,
	ParamWindGusts,
	ParamUVIndex,
	ParamIsDay,
}

var parameterUnits = map[Parameter]string{
	ParamTemperature:              "°C",
	ParamApparentTemperature:      "°C",
	ParamRelativeHumidity:         "%",
	ParamPrecipitation:            "mm",
	ParamPrecipitationProbability: "%",
	ParamRain:                     "mm",
	ParamShowers:                  "mm",
	ParamSnowfall:                 "cm",
	ParamWeatherCode:              "wmo code",
	ParamCloudCover:               "%",
	ParamWindSpeed:                "km/h",
	ParamWindDirection:            "°",
	ParamWindGusts:                "km/h",
	ParamUVIndex:                  "",
	ParamIsDay:                    "",
}

// Unit returns the display unit for p
func (p Parameter) Unit() string {
	return parameterUnits[p]
}

func (p Parameter) Valid() bool {
	_, ok := parameterUnits[p]
	return ok
}

func (p Parameter) String() string {
	return string(p)
}

// ParseParameters accepts names or a single comma separated list. Blank
// entries are skipped; an empty input selects every parameter.
func ParseParameters(names ...string) ([]Parameter, error) {
	var params []Parameter
	seen := make(map[Parameter]bool)
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			p := Parameter(strings.ToLower(part))
			if !p.Valid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, part)
			}
			if !seen[p] {
				seen[p] = true
				params = append(params, p)
			}
		}
	}
	if len(params) == 0 {
		return append([]Parameter(nil), HourlyParameters...), nil
	}
	return params, nil
}

func parameterNames(params []Parameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = string(p)
	}
	return names
}
