package usgs

// noDataThreshold marks the sentinel EPQS returns for points outside its coverage
const noDataThreshold = -1_000_000

type ElevationPointAPIResponse struct {
	Location struct {
		X                float64 `json:"x"`
		Y                float64 `json:"y"`
		SpatialReference struct {
			Wkid       int `json:"wkid"`
			LatestWkid int `json:"latestWkid"`
		} `json:"spatialReference"`
	} `json:"location"`
	LocationId int     `json:"locationId"`
	Value      float64 `json:"value"`
	RasterId   int     `json:"rasterId"`
	Resolution float64 `json:"resolution"`
}

// HasValue reports whether the response carries a real elevation
func (r *ElevationPointAPIResponse) HasValue() bool {
	return r != nil && r.Value > noDataThreshold
}
