package chart

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo/float"
)

const tickSize = 6

// renderContext is everything a drawing step needs. It is created by WriteSVG
// and handed to each step in turn.
type renderContext struct {
	canvas *svg.SVG
	chart  *Chart
	layout Layout
}

// WriteSVG serializes the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c *Chart) error {
	ew := &errWriter{w: w}
	rc := &renderContext{
		canvas: svg.New(ew),
		chart:  c,
		layout: c.Layout,
	}

	drawRoot(rc)
	drawXAxis(rc)
	drawYAxis(rc)
	drawCells(rc)
	drawLegend(rc)
	drawCaption(rc)
	rc.canvas.Gend()
	rc.canvas.End()

	return ew.err
}

func drawRoot(rc *renderContext) {
	l := rc.layout
	rc.canvas.Startraw(
		attr("width", "100%"),
		attr("height", num(l.Height)),
		attr("viewBox", fmt.Sprintf("0 0 %s %s", num(l.Width), num(l.ViewBoxHeight()))),
	)
	rc.canvas.Group(attr("transform", translate(l.Margin.Left, l.Margin.Top)))
}

func drawXAxis(rc *renderContext) {
	a := rc.chart.XAxis
	height := rc.layout.PlotHeight()

	rc.canvas.Group(
		attr("id", a.ID),
		attr("transform", translate(0, height)),
		attr("fill", "none"),
		attr("font-size", "10"),
		attr("font-family", "sans-serif"),
		attr("text-anchor", "middle"),
	)
	rc.canvas.Path(
		fmt.Sprintf("M%s,%dV0H%sV%d", num(a.Start), tickSize, num(a.End), tickSize),
		attr("class", "domain"), attr("stroke", "currentColor"),
	)
	for _, t := range a.Ticks {
		rc.canvas.Group(attr("class", "tick"), attr("transform", translate(t.Position, 0)))
		rc.canvas.Line(0, 0, 0, tickSize, attr("stroke", "currentColor"))
		rc.canvas.Text(0, tickSize+3, t.Label, attr("fill", "currentColor"), attr("dy", "0.71em"))
		rc.canvas.Gend()
	}
	rc.canvas.Gend()
}

func drawYAxis(rc *renderContext) {
	a := rc.chart.YAxis

	rc.canvas.Group(
		attr("id", a.ID),
		attr("fill", "none"),
		attr("font-size", "10"),
		attr("font-family", "sans-serif"),
		attr("text-anchor", "end"),
	)
	rc.canvas.Path(
		fmt.Sprintf("M-%d,%sH0V%sH-%d", tickSize, num(a.Start), num(a.End), tickSize),
		attr("class", "domain"), attr("stroke", "currentColor"),
	)
	for _, t := range a.Ticks {
		rc.canvas.Group(attr("class", "tick"), attr("transform", translate(0, t.Position)))
		rc.canvas.Line(0, 0, -tickSize, 0, attr("stroke", "currentColor"))
		rc.canvas.Text(-(tickSize + 3), 0, t.Label, attr("fill", "currentColor"), attr("dy", "0.32em"))
		rc.canvas.Gend()
	}
	rc.canvas.Gend()
}

func drawCells(rc *renderContext) {
	for _, c := range rc.chart.Cells {
		rc.canvas.Rect(c.X, c.Y, c.Width, c.Height,
			attr("class", "cell"),
			attr("fill", c.Fill),
			attr("data-month", strconv.Itoa(c.Month)),
			attr("data-year", strconv.Itoa(c.Year)),
			attr("data-temp", c.Temp()),
		)
	}
}

func drawLegend(rc *renderContext) {
	lg := rc.chart.Legend
	if lg == nil {
		return
	}

	stops := make([]svg.Offcolor, 0, len(lg.Stops))
	for _, s := range lg.Stops {
		stops = append(stops, svg.Offcolor{Offset: s.Offset, Color: s.Color, Opacity: 1})
	}
	rc.canvas.Def()
	rc.canvas.LinearGradient("gradient", 0, 0, 100, 0, stops)
	rc.canvas.DefEnd()

	rc.canvas.Group(attr("id", "legend"), attr("transform", translate(lg.X, lg.Y)))
	rc.canvas.Rect(0, 0, lg.Width, lg.Height, attr("fill", "url(#gradient)"))

	r0, r1 := lg.Scale.Range()
	rc.canvas.Group(
		attr("transform", translate(0, lg.Height)),
		attr("fill", "none"),
		attr("font-size", "10"),
		attr("font-family", "sans-serif"),
		attr("text-anchor", "middle"),
	)
	rc.canvas.Path(
		fmt.Sprintf("M%s,%dV0H%sV%d", num(r0), tickSize, num(r1), tickSize),
		attr("class", "domain"), attr("stroke", "currentColor"),
	)
	for _, t := range lg.Ticks {
		rc.canvas.Group(attr("class", "tick"), attr("transform", translate(t.Position, 0)))
		rc.canvas.Line(0, 0, 0, tickSize, attr("stroke", "currentColor"))
		rc.canvas.Text(0, tickSize+3, t.Label, attr("fill", "currentColor"), attr("dy", "0.71em"))
		rc.canvas.Gend()
	}
	rc.canvas.Gend()
	rc.canvas.Gend()
}

func drawCaption(rc *renderContext) {
	c := rc.chart.Caption
	rc.canvas.Text(c.X, c.Y, c.Text,
		attr("id", "description"),
		attr("text-anchor", "start"),
		attr("font-size", "14px"),
		attr("fill", "white"),
	)
}

func attr(name, value string) string {
	return name + `="` + value + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", num(x), num(y))
}

// errWriter remembers the first write error so the svg writer, which does not
// report errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
