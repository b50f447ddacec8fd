package charts

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// HeatmapChart is a square labelled matrix on a fixed [-1, 1] diverging scale
type HeatmapChart struct {
	Title         string
	Labels        []string
	Matrix        [][]float64
	ColorBarLabel string
}

// matrixGrid adapts a square matrix to plotter.GridXYZ with row 0 drawn at the top
type matrixGrid [][]float64

func (g matrixGrid) Dims() (c, r int)   { return len(g), len(g) }
func (g matrixGrid) Z(c, r int) float64 { return g[len(g)-1-r][c] }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

const colorBarShare = 0.14

// Heatmap renders an annotated correlation heatmap with a vertical color bar.
// Undefined cells are left blank and annotated "nan".
func (r *Renderer) Heatmap(c HeatmapChart) ([]byte, error) {
	n := len(c.Labels)
	if len(c.Matrix) != n {
		return nil, fmt.Errorf("matrix has %d rows for %d labels", len(c.Matrix), n)
	}
	for i, row := range c.Matrix {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("heatmap needs at least one column")
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	grid := matrixGrid(c.Matrix)
	hm := plotter.NewHeatMap(grid, colors.Palette(255))
	hm.Min = -1
	hm.Max = 1

	labels, err := annotations(grid)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Add(hm, labels)
	p.NominalX(c.Labels...)
	p.NominalY(reversed(c.Labels)...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	bar := plot.New()
	bar.Title.Text = " "
	bar.HideX()
	bar.Y.Label.Text = c.ColorBarLabel
	bar.Add(&plotter.ColorBar{ColorMap: colors, Vertical: true})

	width, height := inches(squareSize)
	barWidth := width * colorBarShare

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(r.opts.DPI)))
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-barWidth, 0, 0, 0))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func annotations(g matrixGrid) (*plotter.Labels, error) {
	cols, rows := g.Dims()
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, cols*rows),
		Labels: make([]string, 0, cols*rows),
	}
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: g.X(c), Y: g.Y(r)})
			xyl.Labels = append(xyl.Labels, FormatCorrelation(g.Z(c, r)))
		}
	}

	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("annotate heatmap: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}
	return labels, nil
}

// FormatCorrelation formats a heatmap annotation
func FormatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

func reversed(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[len(ss)-1-i] = s
	}
	return out
}
