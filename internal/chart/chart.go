// Package chart computes per-bar model transforms and draw commands for the
// 3D stock bar chart. Nothing in this package touches OpenGL.
package chart

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/stockbars/pkg/wavefront"
)

// DataPoint is one bar: a company's price for one month.
type DataPoint struct {
	Category int    // company index, laid out along X
	Time     int    // month index, laid out along Z
	Label    string // month label from the CSV
	Symbol   string // company ticker
	Value    float32
}

// MaxValue returns the largest finite non-negative value in points, or 0 when
// there is none. NaN and infinite values are ignored so one bad point cannot
// flatten every other bar.
func MaxValue(points []DataPoint) float32 {
	var max float32
	for _, p := range points {
		if math32.IsNaN(p.Value) || math32.IsInf(p.Value, 0) {
			continue
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// Color is an RGB triple in [0, 1].
type Color [3]float32

// Palette assigns colors to companies by index.
type Palette []Color

// DefaultPalette cycles red, green, blue and yellow.
var DefaultPalette = Palette{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
}

// For returns the color of a company index, wrapping around the palette.
func (p Palette) For(category int) Color {
	if len(p) == 0 {
		return Color{1, 1, 1}
	}
	i := category % len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Tint multiplies c by the material's diffuse color. A nil material leaves c
// unchanged.
func (c Color) Tint(m *wavefront.Material) Color {
	if m == nil {
		return c
	}
	return Color{c[0] * m.Color[0], c[1] * m.Color[1], c[2] * m.Color[2]}
}
