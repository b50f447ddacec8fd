package charts

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// BarSeries is one bar per category, drawn in a single color
type BarSeries struct {
	Name   string
	Color  string
	Values []float64
}

// GroupedBarChart clusters one bar of every series at each category
type GroupedBarChart struct {
	Title      string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []BarSeries
}

const (
	maxBarWidth vg.Length = 20
	// yHeadroom keeps the tallest bar clear of the legend box
	yHeadroom = 1.05
)

// GroupedBar renders a grouped bar chart with a legend and rotated category labels
func (r *Renderer) GroupedBar(c GroupedBarChart) ([]byte, error) {
	width, height := inches(wideSize)
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(r.opts.DPI)))
	canvas := draw.New(img)

	p, _, err := groupedBarPlot(c, canvas)
	if err != nil {
		return nil, err
	}
	p.Draw(canvas)

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// groupedBarPlot lays out the chart for canvas. Each category owns one unit
// of the X axis, centered on its index, so offset bars stay inside the data area.
func groupedBarPlot(c GroupedBarChart, canvas draw.Canvas) (*plot.Plot, []*plotter.BarChart, error) {
	for _, s := range c.Series {
		if len(s.Values) != len(c.Categories) {
			return nil, nil, fmt.Errorf("series %q has %d values for %d categories", s.Name, len(s.Values), len(c.Categories))
		}
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if len(c.Categories) == 0 {
		return p, nil, nil
	}

	p.NominalX(c.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min = -0.5
	p.X.Max = float64(len(c.Categories)) - 0.5

	maxValue := seriesMax(c.Series)
	p.Y.Max = maxValue

	barWidth := groupBarWidth(p.DataCanvas(canvas).Size().X, len(c.Categories), len(c.Series))
	bars := make([]*plotter.BarChart, 0, len(c.Series))
	for i, s := range c.Series {
		b, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return nil, nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		b.Color = hexColor(s.Color)
		b.LineStyle.Width = 0
		b.Offset = vg.Length(float64(i)-float64(len(c.Series)-1)/2) * barWidth
		p.Add(b)
		p.Legend.Add(s.Name, b)
		bars = append(bars, b)
	}

	// Add widens the range to the data; restore the category slots.
	p.X.Min = -0.5
	p.X.Max = float64(len(c.Categories)) - 0.5
	fitLegend(p, canvas, maxValue)

	return p, bars, nil
}

// fitLegend raises the Y maximum so the tallest bar ends below the legend
func fitLegend(p *plot.Plot, canvas draw.Canvas, maxValue float64) {
	dc := p.DataCanvas(canvas)
	free := 1 - float64(p.Legend.Rectangle(dc).Size().Y/dc.Size().Y)
	if free < 0.5 {
		free = 0.5
	}
	p.Y.Max = maxValue * yHeadroom / free
}

// seriesMax is the tallest bar, or 1 when nothing is above zero
func seriesMax(series []BarSeries) float64 {
	maxValue := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if !math.IsNaN(v) && v > maxValue {
				maxValue = v
			}
		}
	}
	if maxValue == 0 {
		return 1
	}
	return maxValue
}

// groupBarWidth splits each category slot so a cluster leaves one bar of gap
func groupBarWidth(dataWidth vg.Length, categories, series int) vg.Length {
	if series == 0 {
		return maxBarWidth
	}
	w := dataWidth / vg.Length(categories*(series+1))
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}
