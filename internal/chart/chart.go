// Package chart lays out and draws the year × month temperature heatmap.
//
// Drawing is split in two: Build turns a dataset into plain geometry (cell
// rectangles, tick positions, legend stops), and the writers serialize that
// geometry as SVG or as a standalone HTML page with a hover tooltip. Build is
// a pure function of the dataset and the layout, so the same input always
// produces the same document.
package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/i474232898/temperature-heatmap/internal/common"
	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

// Cell is one rectangle of the heatmap.
type Cell struct {
	Year        int
	Month       int
	Variance    float64
	Temperature float64

	X, Y          float64
	Width, Height float64
	Fill          string
}

// Temp is the temperature as printed in data attributes and tooltips.
func (c Cell) Temp() string {
	return common.FormatFixed1(c.Temperature)
}

// Tick is a labelled position along an axis.
type Tick struct {
	Position float64
	Label    string
}

// Axis is a rendered axis: its extent and its ticks.
type Axis struct {
	ID     string
	Start  float64
	End    float64
	Ticks  []Tick
	Domain []int
}

// GradientStop is one color stop of the legend gradient, offset in percent.
type GradientStop struct {
	Offset uint8
	Color  string
}

// Legend is the gradient bar and its numeric axis.
type Legend struct {
	X, Y          float64
	Width, Height float64
	Stops         []GradientStop
	Scale         LinearScale
	Ticks         []Tick
}

// Caption is the static label under the legend.
type Caption struct {
	X, Y float64
	Text string
}

// Chart is the complete geometry of one heatmap.
type Chart struct {
	Layout          Layout
	BaseTemperature float64

	XAxis Axis
	YAxis Axis
	Cells []Cell

	// Legend is nil when the dataset is empty and no temperature range exists.
	Legend  *Legend
	Caption Caption

	Colors *SequentialScale
}

// legendSamples are the ramp positions of the legend's stops, left to right.
var legendSamples = []struct {
	offset uint8
	t      float64
}{
	{0, 1},
	{33, 0.64},
	{66, 0.32},
	{100, 0},
}

// Build computes the heatmap geometry for ds.
func Build(ds temperature.Dataset, layout Layout) *Chart {
	width := layout.PlotWidth()
	height := layout.PlotHeight()

	years := distinct(ds.MonthlyVariance, func(v temperature.MonthlyVariance) int { return v.Year })
	months := distinct(ds.MonthlyVariance, func(v temperature.MonthlyVariance) int { return v.Month })

	x := NewBandScale(years, 0, width, layout.BandPadding)
	y := NewBandScale(months, height, 0, layout.BandPadding)

	c := &Chart{
		Layout:          layout,
		BaseTemperature: ds.BaseTemperature,
		XAxis:           buildXAxis(x, width, layout.YearLabelEvery),
		YAxis:           buildYAxis(y, height),
		Caption: Caption{
			X:    layout.CaptionX,
			Y:    height + layout.Margin.Bottom - layout.CaptionOffset,
			Text: layout.CaptionText,
		},
	}

	ext, ok := temperature.ComputeExtent(ds)
	if !ok {
		return c
	}

	colors := NewTemperatureScale(ext.MinTemperature, ext.MaxTemperature)
	c.Colors = &colors
	c.Legend = buildLegend(layout, height, ext.MinTemperature, ext.MaxTemperature)

	c.Cells = make([]Cell, 0, len(ds.MonthlyVariance))
	for _, v := range ds.MonthlyVariance {
		px, _ := x.Position(v.Year)
		py, _ := y.Position(v.Month)
		temp := ds.Temperature(v)
		c.Cells = append(c.Cells, Cell{
			Year:        v.Year,
			Month:       v.Month,
			Variance:    v.Variance,
			Temperature: temp,
			X:           px,
			Y:           py,
			Width:       x.Bandwidth(),
			Height:      y.Bandwidth(),
			Fill:        colors.Fill(temp),
		})
	}
	return c
}

func buildXAxis(x BandScale, width float64, every int) Axis {
	if every <= 0 {
		every = 1
	}
	axis := Axis{ID: "x-axis", Start: 0, End: width, Domain: x.Domain()}
	for i, year := range axis.Domain {
		if i%every != 0 {
			continue
		}
		pos, _ := x.Center(year)
		axis.Ticks = append(axis.Ticks, Tick{Position: pos, Label: strconv.Itoa(year)})
	}
	return axis
}

func buildYAxis(y BandScale, height float64) Axis {
	axis := Axis{ID: "y-axis", Start: height, End: 0, Domain: y.Domain()}
	for _, month := range axis.Domain {
		pos, _ := y.Center(month)
		axis.Ticks = append(axis.Ticks, Tick{Position: pos, Label: MonthName(month)})
	}
	return axis
}

func buildLegend(layout Layout, height, min, max float64) *Legend {
	scale := NewLinearScale(min, max, 0, layout.LegendWidth)
	legend := &Legend{
		X:      layout.Margin.Left,
		Y:      height + layout.Margin.Top + layout.LegendOffset,
		Width:  layout.LegendWidth,
		Height: layout.LegendHeight,
		Scale:  scale,
	}
	for _, s := range legendSamples {
		legend.Stops = append(legend.Stops, GradientStop{Offset: s.offset, Color: CSS(RdYlBu(s.t))})
	}
	for _, v := range scale.Ticks(layout.LegendTicks) {
		legend.Ticks = append(legend.Ticks, Tick{Position: scale.Map(v), Label: strconv.FormatFloat(v, 'f', 1, 64)})
	}
	return legend
}

// MonthName returns the full English name of a 1-based month index.
func MonthName(month int) string {
	return time.Month(month).String()
}

// TooltipText is the HTML shown when hovering a cell. The month is the raw
// 1-12 number.
func TooltipText(c Cell) string {
	return fmt.Sprintf("Year: %d<br>Month: %d<br>Temperature: %s", c.Year, c.Month, common.FormatCelsius(c.Temperature))
}

// FindCell returns the cell drawn for year and month.
func (c *Chart) FindCell(year, month int) (Cell, bool) {
	for _, cell := range c.Cells {
		if cell.Year == year && cell.Month == month {
			return cell, true
		}
	}
	return Cell{}, false
}

func distinct(values []temperature.MonthlyVariance, key func(temperature.MonthlyVariance) int) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0)
	for _, v := range values {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
