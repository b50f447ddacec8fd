package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ScatterChart plots paired values as unconnected points
type ScatterChart struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Color  string
	// Alpha is the point opacity in [0, 1]
	Alpha float64
}

var gridStyle = chart.Style{
	StrokeColor: drawing.ColorFromHex("e6e6e6"),
	StrokeWidth: 1,
}

// pointStyle renders points only, with no connecting line
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Scatter renders a point cloud with a light grid
func (r *Renderer) Scatter(c ScatterChart) ([]byte, error) {
	if len(c.X) != len(c.Y) {
		return nil, fmt.Errorf("scatter has %d x values and %d y values", len(c.X), len(c.Y))
	}

	alpha := uint8(math.Round(255 * math.Max(0, math.Min(1, c.Alpha))))
	series := chart.ContinuousSeries{
		Name:    c.Title,
		XValues: c.X,
		YValues: c.Y,
		Style:   pointStyle(hexColor(c.Color).WithAlpha(alpha)),
	}
	if len(c.X) == 0 {
		// the library rejects empty series, draw the axes only
		series.XValues = []float64{0}
		series.YValues = []float64{0}
		series.Style.Hidden = true
	}

	xr := paddedRange(c.X)
	yr := paddedRange(c.Y)
	w, h := r.pixels(wideSize)

	ch := chart.Chart{
		Title:  c.Title,
		Width:  w,
		Height: h,
		DPI:    r.opts.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 30, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           c.XLabel,
			Range:          &xr,
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           c.YLabel,
			Range:          &yr,
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// paddedRange spans xs with a 5% margin and never collapses to zero width
func paddedRange(xs []float64) chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return chart.ContinuousRange{Min: 0, Max: 1}
	}
	if lo == hi {
		return chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
