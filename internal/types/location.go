package types

// Place contains human-readable location metadata
type Place struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	County      string `json:"county,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// ForecastPoint is a coordinate with the metadata resolved for it
type ForecastPoint struct {
	Coordinates Coords    `json:"coordinates"`
	Elevation   Elevation `json:"elevation"`
	Place       *Place    `json:"place,omitempty"`
}
