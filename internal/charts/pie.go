package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "github.com/gcbaptista/diet-insights/internal/errors"
)

// PieSlice is one labelled share of a pie
type PieSlice struct {
	Label string
	// Share is the slice's percentage of the whole
	Share float64
}

// PieChart lays slices out in order, coloring them from Palette
type PieChart struct {
	Title  string
	Slices []PieSlice
}

// PieLabel formats a slice label with its percentage to one decimal
func PieLabel(s PieSlice) string {
	return fmt.Sprintf("%s %.1f%%", s.Label, s.Share)
}

// Pie renders a pie chart with percentage labels
func (r *Renderer) Pie(c PieChart) ([]byte, error) {
	values := make([]chart.Value, 0, len(c.Slices))
	for i, s := range c.Slices {
		if s.Share <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: s.Share,
			Label: PieLabel(s),
			Style: chart.Style{
				FillColor:   PaletteColor(i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontSize:    10,
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("pie chart has no slices: %w", apperrors.ErrEmptySelection)
	}

	w, h := r.pixels(squareSize)
	pie := chart.PieChart{
		Title:  c.Title,
		Width:  w,
		Height: h,
		DPI:    r.opts.DPI,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
