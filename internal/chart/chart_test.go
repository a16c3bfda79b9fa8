package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

// syntheticDataset covers 30 full years starting at 1753.
func syntheticDataset() temperature.Dataset {
	ds := temperature.Dataset{BaseTemperature: 8.66}
	for year := 1753; year < 1783; year++ {
		for month := 1; month <= 12; month++ {
			v := float64((year*7+month*13)%50)/10 - 2.5
			ds.MonthlyVariance = append(ds.MonthlyVariance, temperature.MonthlyVariance{
				Year: year, Month: month, Variance: v,
			})
		}
	}
	return ds
}

func TestBuild_CellFillMatchesColorScale(t *testing.T) {
	ds := syntheticDataset()
	c := Build(ds, DefaultLayout)

	require.Len(t, c.Cells, len(ds.MonthlyVariance))
	require.NotNil(t, c.Colors)
	for i, cell := range c.Cells {
		v := ds.MonthlyVariance[i]
		assert.Equal(t, c.Colors.Fill(ds.BaseTemperature+v.Variance), cell.Fill)
		assert.Equal(t, ds.BaseTemperature+v.Variance, cell.Temperature)
	}
}

func TestBuild_DistinctYearsAndMonths(t *testing.T) {
	ds := syntheticDataset()
	c := Build(ds, DefaultLayout)

	years := map[int]bool{}
	months := map[int]bool{}
	for _, cell := range c.Cells {
		years[cell.Year] = true
		months[cell.Month] = true
	}
	assert.Len(t, years, 30)
	assert.Len(t, months, 12)
	assert.Equal(t, 30, len(c.XAxis.Domain))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, c.YAxis.Domain)
}

func TestBuild_OneRectanglePerCell(t *testing.T) {
	c := Build(syntheticDataset(), DefaultLayout)

	seen := map[[2]int]bool{}
	for _, cell := range c.Cells {
		key := [2]int{cell.Year, cell.Month}
		assert.False(t, seen[key], "duplicate cell %v", key)
		seen[key] = true
	}
}

func TestBuild_EveryTenthYearLabelled(t *testing.T) {
	c := Build(syntheticDataset(), DefaultLayout)

	labels := make([]string, 0, len(c.XAxis.Ticks))
	for _, tick := range c.XAxis.Ticks {
		labels = append(labels, tick.Label)
	}
	assert.Equal(t, []string{"1753", "1763", "1773"}, labels)
}

func TestBuild_MonthLabels(t *testing.T) {
	c := Build(syntheticDataset(), DefaultLayout)

	require.Len(t, c.YAxis.Ticks, 12)
	assert.Equal(t, "January", c.YAxis.Ticks[0].Label)
	assert.Equal(t, "December", c.YAxis.Ticks[11].Label)

	// The first month sits at the bottom of the plot.
	assert.Greater(t, c.YAxis.Ticks[0].Position, c.YAxis.Ticks[11].Position)
}

func TestBuild_CellGeometry(t *testing.T) {
	layout := DefaultLayout
	c := Build(syntheticDataset(), layout)

	for _, cell := range c.Cells {
		assert.GreaterOrEqual(t, cell.X, 0.0)
		assert.LessOrEqual(t, cell.X+cell.Width, layout.PlotWidth()+1e-9)
		assert.GreaterOrEqual(t, cell.Y, 0.0)
		assert.LessOrEqual(t, cell.Y+cell.Height, layout.PlotHeight()+1e-9)
	}

	step := layout.PlotWidth() / (30 + 0.05)
	assert.InDelta(t, step*0.95, c.Cells[0].Width, 1e-9)
}

func TestBuild_TooltipScenario(t *testing.T) {
	ds := temperature.Dataset{
		BaseTemperature: 8.0,
		MonthlyVariance: []temperature.MonthlyVariance{
			{Year: 1900, Month: 1, Variance: -0.5},
			{Year: 1900, Month: 2, Variance: 1.0},
		},
	}
	c := Build(ds, DefaultLayout)

	cell, ok := c.FindCell(1900, 1)
	require.True(t, ok)
	assert.Equal(t, "7.5", cell.Temp())
	assert.Equal(t, "Year: 1900<br>Month: 1<br>Temperature: 7.5°C", TooltipText(cell))

	_, ok = c.FindCell(1901, 1)
	assert.False(t, ok)
}

func TestBuild_LegendScale(t *testing.T) {
	ds := syntheticDataset()
	c := Build(ds, DefaultLayout)
	require.NotNil(t, c.Legend)

	ext, ok := temperature.ComputeExtent(ds)
	require.True(t, ok)

	d0, d1 := c.Legend.Scale.Domain()
	assert.Equal(t, ext.MinTemperature, d0)
	assert.Equal(t, ext.MaxTemperature, d1)
	assert.Equal(t, 0.0, c.Legend.Scale.Map(ext.MinTemperature))
	assert.InDelta(t, 400.0, c.Legend.Scale.Map(ext.MaxTemperature), 1e-9)

	assert.Equal(t, 400.0, c.Legend.Width)
	assert.Equal(t, 20.0, c.Legend.Height)
	assert.Equal(t, 60.0, c.Legend.X)
	assert.Equal(t, 430.0+20+30, c.Legend.Y)

	for _, tick := range c.Legend.Ticks {
		assert.GreaterOrEqual(t, tick.Position, 0.0)
		assert.LessOrEqual(t, tick.Position, 400.0)
		assert.Regexp(t, `^-?\d+\.\d$`, tick.Label)
	}
}

func TestBuild_LegendStops(t *testing.T) {
	c := Build(syntheticDataset(), DefaultLayout)
	require.NotNil(t, c.Legend)

	want := []GradientStop{
		{Offset: 0, Color: CSS(RdYlBu(1))},
		{Offset: 33, Color: CSS(RdYlBu(0.64))},
		{Offset: 66, Color: CSS(RdYlBu(0.32))},
		{Offset: 100, Color: CSS(RdYlBu(0))},
	}
	assert.Equal(t, want, c.Legend.Stops)

	// Cold on the left of the legend, like the coldest cell.
	assert.Equal(t, c.Colors.Fill(c.Colors.min), c.Legend.Stops[0].Color)
	assert.Equal(t, c.Colors.Fill(c.Colors.max), c.Legend.Stops[3].Color)
}

func TestBuild_Idempotent(t *testing.T) {
	ds := syntheticDataset()
	a, b := Build(ds, DefaultLayout), Build(ds, DefaultLayout)

	assert.Equal(t, a.Cells, b.Cells)
	assert.Equal(t, a.XAxis, b.XAxis)
	assert.Equal(t, a.YAxis, b.YAxis)
	assert.Equal(t, a.Legend, b.Legend)

	var first, second bytes.Buffer
	require.NoError(t, WriteSVG(&first, a))
	require.NoError(t, WriteSVG(&second, b))
	assert.Equal(t, first.String(), second.String())
}

func TestBuild_EmptyDataset(t *testing.T) {
	c := Build(temperature.Dataset{BaseTemperature: 8.66}, DefaultLayout)

	assert.Empty(t, c.Cells)
	assert.Empty(t, c.XAxis.Ticks)
	assert.Empty(t, c.YAxis.Ticks)
	assert.Nil(t, c.Legend)
	assert.Nil(t, c.Colors)
	assert.Equal(t, DefaultLayout.CaptionText, c.Caption.Text)
}

func TestBuild_CaptionPosition(t *testing.T) {
	c := Build(syntheticDataset(), DefaultLayout)
	assert.Equal(t, 120.0, c.Caption.X)
	assert.Equal(t, 430.0+150-30, c.Caption.Y)
}

func TestLayout_Defaults(t *testing.T) {
	assert.Equal(t, 710.0, DefaultLayout.PlotWidth())
	assert.Equal(t, 430.0, DefaultLayout.PlotHeight())
	assert.Equal(t, 664.0, DefaultLayout.ViewBoxHeight())
}
