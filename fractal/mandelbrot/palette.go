package mandelbrot

import (
	"image/color"
	"math"
)

// Stop is one colour of a gradient at a position in [0,1].
type Stop struct {
	Pos   float64
	Color color.RGBA
}

// UltraStops is the classic blue/white/orange escape-time gradient.
var UltraStops = []Stop{
	{0, color.RGBA{R: 0, G: 7, B: 100, A: 0xFF}},
	{0.16, color.RGBA{R: 32, G: 107, B: 203, A: 0xFF}},
	{0.42, color.RGBA{R: 237, G: 255, B: 255, A: 0xFF}},
	{0.6425, color.RGBA{R: 255, G: 170, B: 0, A: 0xFF}},
	{0.8575, color.RGBA{R: 0, G: 2, B: 0, A: 0xFF}},
	{1, color.RGBA{R: 0, G: 7, B: 100, A: 0xFF}},
}

// Palette is a precomputed cyclic gradient.
type Palette struct {
	colors []color.RGBA
	// period is how many smoothed iterations one trip round the gradient takes.
	period float64
}

const defaultPaletteSize = 2048

var defaultPalette = NewPalette(UltraStops, defaultPaletteSize, 64)

// DefaultPalette returns the shared ultra palette. It is read-only.
func DefaultPalette() *Palette { return defaultPalette }

// NewPalette samples stops into size entries. Stops must be sorted by Pos and
// span [0,1].
func NewPalette(stops []Stop, size int, period float64) *Palette {
	if size <= 0 {
		size = 1
	}
	if period <= 0 {
		period = 1
	}
	p := &Palette{colors: make([]color.RGBA, size), period: period}
	for i := range p.colors {
		p.colors[i] = gradient(stops, float64(i)/float64(size))
	}
	return p
}

// Len is the number of precomputed entries.
func (p *Palette) Len() int { return len(p.colors) }

// At maps a smoothed iteration count onto the gradient.
func (p *Palette) At(mu float64) color.RGBA {
	t := math.Mod(mu/p.period, 1)
	i := int(t * float64(len(p.colors)))
	if i < 0 {
		i = 0
	}
	if i >= len(p.colors) {
		i = len(p.colors) - 1
	}
	return p.colors[i]
}

func gradient(stops []Stop, t float64) color.RGBA {
	switch {
	case len(stops) == 0:
		return color.RGBA{A: 0xFF}
	case t <= stops[0].Pos:
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Pos {
			continue
		}
		f := (t - a.Pos) / (b.Pos - a.Pos)
		return color.RGBA{
			R: lerp(a.Color.R, b.Color.R, f),
			G: lerp(a.Color.G, b.Color.G, f),
			B: lerp(a.Color.B, b.Color.B, f),
			A: 0xFF,
		}
	}
	return stops[len(stops)-1].Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
