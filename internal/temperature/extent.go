package temperature

import (
	"gonum.org/v1/gonum/floats"
)

// Extent summarizes the observed range of a dataset.
type Extent struct {
	MinTemperature float64 `json:"minTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`
	FirstYear      int     `json:"firstYear"`
	LastYear       int     `json:"lastYear"`
	Points         int     `json:"points"`
}

// Temperatures returns the derived temperature of every observation, in
// dataset order.
func (d Dataset) Temperatures() []float64 {
	temps := make([]float64, len(d.MonthlyVariance))
	for i, v := range d.MonthlyVariance {
		temps[i] = d.Temperature(v)
	}
	return temps
}

// ComputeExtent scans the dataset once for its temperature and year range.
// The boolean is false for an empty dataset, whose extent is undefined.
func ComputeExtent(d Dataset) (Extent, bool) {
	if len(d.MonthlyVariance) == 0 {
		return Extent{}, false
	}

	temps := d.Temperatures()
	ext := Extent{
		MinTemperature: floats.Min(temps),
		MaxTemperature: floats.Max(temps),
		FirstYear:      d.MonthlyVariance[0].Year,
		LastYear:       d.MonthlyVariance[0].Year,
		Points:         len(d.MonthlyVariance),
	}
	for _, v := range d.MonthlyVariance[1:] {
		if v.Year < ext.FirstYear {
			ext.FirstYear = v.Year
		}
		if v.Year > ext.LastYear {
			ext.LastYear = v.Year
		}
	}
	return ext, true
}
