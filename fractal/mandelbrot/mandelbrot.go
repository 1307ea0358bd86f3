// Package mandelbrot provides the escape-time image function rendered by the
// viewer. The iteration runs in the float width of the view it is given, so a
// single-precision view visibly pixelates once the zoom passes ~1e-6.
package mandelbrot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"mandel/fractal/tile"
	"mandel/fractal/view"
)

// bailout is the squared escape radius. A large radius keeps the smooth
// colouring free of banding.
const bailout = 256

var inside = color.RGBA{A: 0xFF}

// New returns a render function iterating at most limit times per pixel.
func New[T view.Float](limit int, p *Palette) (tile.RenderFn[T], error) {
	if limit <= 0 {
		return nil, fmt.Errorf("mandelbrot: iteration limit %d: %w", limit, view.ErrInvalidArgument)
	}
	if p == nil {
		p = DefaultPalette()
	}
	return func(v view.View[T], width, height int) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		if width <= 0 || height <= 0 {
			return img
		}
		dx := v.Width() / T(width)
		dy := v.Height() / T(height)
		for py := 0; py < height; py++ {
			cy := v.Ymin + (T(py)+0.5)*dy
			row := img.Pix[py*img.Stride:]
			for px := 0; px < width; px++ {
				cx := v.Xmin + (T(px)+0.5)*dx
				c := inside
				if n, zx, zy, ok := Escape(cx, cy, limit); ok {
					c = p.At(smooth(n, float64(zx), float64(zy)))
				}
				o := px * 4
				row[o+0] = c.R
				row[o+1] = c.G
				row[o+2] = c.B
				row[o+3] = c.A
			}
		}
		return img
	}, nil
}

// Escape iterates z = z^2 + c from z = 0. It returns the iteration count and
// the final z when |z|^2 exceeds the bailout within limit steps.
func Escape[T view.Float](cx, cy T, limit int) (n int, zx, zy T, escaped bool) {
	for n = 0; n < limit; n++ {
		xx := zx * zx
		yy := zy * zy
		if xx+yy > bailout {
			return n, zx, zy, true
		}
		zy = 2*zx*zy + cy
		zx = xx - yy + cx
	}
	return limit, zx, zy, false
}

// smooth is the normalized iteration count n + 1 - log2(log|z|).
func smooth(n int, zx, zy float64) float64 {
	logZ := math.Log(zx*zx+zy*zy) / 2
	mu := float64(n) + 1 - math.Log2(logZ)
	if mu < 0 || math.IsNaN(mu) {
		return 0
	}
	return mu
}
