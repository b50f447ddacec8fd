// Package charts renders the insight charts as PNG images.
//
// Every render call builds its own chart value and its own image canvas, so a
// Renderer can be shared freely between goroutines.
package charts

import (
	"encoding/base64"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
)

// DataURIPrefix prefixes every encoded chart
const DataURIPrefix = "data:image/png;base64,"

// DefaultDPI matches the resolution the front end is designed for
const DefaultDPI = 100

// Palette is the categorical palette shared by the bar and pie charts
var Palette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F"}

// Size is a canvas size in inches
type Size struct {
	Width  float64
	Height float64
}

var (
	wideSize   = Size{Width: 10, Height: 6}
	squareSize = Size{Width: 10, Height: 8}
)

// Options control how charts are rasterized
type Options struct {
	DPI float64
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{DPI: DefaultDPI}
}

// Renderer produces PNG charts. The zero value is not usable, use NewRenderer.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer, falling back to the default DPI when unset
func NewRenderer(opts Options) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = DefaultDPI
	}
	return &Renderer{opts: opts}
}

// DPI returns the rasterization resolution
func (r *Renderer) DPI() float64 {
	return r.opts.DPI
}

// pixels converts a size in inches to a pixel size at the renderer's DPI
func (r *Renderer) pixels(s Size) (int, int) {
	return int(s.Width * r.opts.DPI), int(s.Height * r.opts.DPI)
}

func inches(s Size) (vg.Length, vg.Length) {
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

// EncodeDataURI wraps PNG bytes as an inline base64 data URI
func EncodeDataURI(png []byte) string {
	var b strings.Builder
	b.Grow(len(DataURIPrefix) + base64.StdEncoding.EncodedLen(len(png)))
	b.WriteString(DataURIPrefix)
	b.WriteString(base64.StdEncoding.EncodeToString(png))
	return b.String()
}

// PaletteColor returns the i-th palette color, cycling when i exceeds its length
func PaletteColor(i int) drawing.Color {
	return hexColor(Palette[i%len(Palette)])
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
