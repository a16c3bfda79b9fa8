package chart

// Margin is the space around the plot area inside the canvas.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout holds the fixed geometry of the chart. All values are in SVG user
// units of the internal coordinate system; the rendered document scales to
// its container's width.
type Layout struct {
	Width  float64 // canvas width
	Height float64 // canvas height
	Margin Margin

	// ExtraHeight is added to the viewBox below the canvas so the legend and
	// caption are not clipped.
	ExtraHeight float64

	BandPadding    float64
	YearLabelEvery int

	LegendWidth  float64
	LegendHeight float64
	LegendOffset float64 // gap between plot bottom and legend top
	LegendTicks  int

	CaptionX      float64
	CaptionOffset float64 // distance of the caption baseline above the bottom margin edge
	CaptionText   string
}

// DefaultLayout is the geometry the heatmap is designed for.
var DefaultLayout = Layout{
	Width:  800,
	Height: 600,
	Margin: Margin{Top: 20, Right: 30, Bottom: 150, Left: 60},

	ExtraHeight: 64,

	BandPadding:    0.05,
	YearLabelEvery: 10,

	LegendWidth:  400,
	LegendHeight: 20,
	LegendOffset: 30,
	LegendTicks:  5,

	CaptionX:      120,
	CaptionOffset: 30,
	CaptionText:   "Temperature Variance from Base Temperature (°C)",
}

// PlotWidth is the width of the cell area.
func (l Layout) PlotWidth() float64 {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// PlotHeight is the height of the cell area.
func (l Layout) PlotHeight() float64 {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}

// ViewBoxHeight is the height of the internal coordinate system.
func (l Layout) ViewBoxHeight() float64 {
	return l.PlotHeight() + l.ExtraHeight + l.Margin.Top + l.Margin.Bottom
}
