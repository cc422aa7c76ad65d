package types

const InchesToMm = 25.4

type Precipitation struct {
	Mm     float64 `json:"mm"`
	Inches float64 `json:"inches"`
}

func NewPrecipitationFromMm(mm float64) Precipitation {
	return Precipitation{
		Mm:     mm,
		Inches: mm / InchesToMm,
	}
}
