package types

const KphToMph = 0.621371

var cardinalDirections = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

type WindSpeed struct {
	Kph float64 `json:"kph"`
	Mph float64 `json:"mph"`
}

func NewWindSpeedFromKph(kph float64) WindSpeed {
	return WindSpeed{
		Kph: kph,
		Mph: kph * KphToMph,
	}
}

type WindDirection struct {
	Degrees  float64 `json:"degrees"`
	Cardinal string  `json:"cardinal"`
}

func NewWindDirection(degrees float64) WindDirection {
	index := int(degrees/22.5+.5) % 16 // .5 for rounding
	if index < 0 {
		index += 16
	}
	return WindDirection{
		Degrees:  degrees,
		Cardinal: cardinalDirections[index],
	}
}

type Wind struct {
	Speed     WindSpeed     `json:"speed"`
	Gusts     WindSpeed     `json:"gusts"`
	Direction WindDirection `json:"direction"`
}

func NewWindFromKph(speedInKph, gustsInKph, directionDegrees float64) Wind {
	return Wind{
		Speed:     NewWindSpeedFromKph(speedInKph),
		Gusts:     NewWindSpeedFromKph(gustsInKph),
		Direction: NewWindDirection(directionDegrees),
	}
}
