// Package tile renders a view as a stack of horizontal strips and fuses the
// strips back into one image.
package tile

import (
	"context"
	"fmt"
	"image"

	"mandel/fractal/view"
)

// RenderFn maps a view to a width x height image. Implementations must not
// share mutable state between calls: strips may be rendered concurrently.
type RenderFn[T view.Float] func(v view.View[T], width, height int) *image.RGBA

// Split cuts v into n strips of equal height, ordered from Ymin upward.
// Adjacent strips share their boundary value, the first starts at v.Ymin and
// the last ends at v.Ymax.
func Split[T view.Float](v view.View[T], n int) ([]view.View[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("tile: split into %d strips: %w", n, view.ErrInvalidArgument)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("tile: split %s: %w", v, view.ErrInvalidArgument)
	}

	strips := make([]view.View[T], n)
	// Dividing first keeps h*(i+1) from overflowing on views near the float limit.
	step := v.Height() / T(n)
	lo := v.Ymin
	for i := range strips {
		hi := v.Ymax
		if i+1 < n {
			hi = v.Ymin + step*T(i+1)
		}
		if !(lo < hi) {
			return nil, fmt.Errorf("tile: %s too thin for %d strips: %w", v, n, view.ErrInvalidArgument)
		}
		strips[i] = view.View[T]{Xmin: v.Xmin, Ymin: lo, Xmax: v.Xmax, Ymax: hi}
		lo = hi
	}
	return strips, nil
}

// Fuse stacks images top to bottom in slice order. A single image is
// returned as is.
func Fuse(images []*image.RGBA) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("tile: fuse no images: %w", view.ErrInvalidArgument)
	}
	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("tile: fuse strip %d is nil: %w", i, view.ErrInvalidArgument)
		}
	}
	if len(images) == 1 {
		return images[0], nil
	}

	width := images[0].Bounds().Dx()
	height := 0
	for i, img := range images {
		if w := img.Bounds().Dx(); w != width {
			return nil, fmt.Errorf("tile: fuse strip %d width %d, want %d: %w", i, w, width, view.ErrInvalidArgument)
		}
		height += img.Bounds().Dy()
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	rowBytes := width * 4
	y := 0
	for _, img := range images {
		b := img.Bounds()
		for sy := b.Min.Y; sy < b.Max.Y; sy++ {
			src := img.PixOffset(b.Min.X, sy)
			dst := out.PixOffset(0, y)
			copy(out.Pix[dst:dst+rowBytes], img.Pix[src:src+rowBytes])
			y++
		}
	}
	return out, nil
}

// Renderer holds the strip layout and the backend used to evaluate strips.
type Renderer struct {
	Strips  int
	Backend Backend
	Workers int
}

// Frame splits v, renders every strip with fn and fuses the result into a
// width x height image. height must be a multiple of r.Strips.
func Frame[T view.Float](ctx context.Context, r Renderer, v view.View[T], fn RenderFn[T], width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tile: frame %dx%d: %w", width, height, view.ErrInvalidArgument)
	}
	strips, err := Split(v, r.Strips)
	if err != nil {
		return nil, err
	}
	if height%len(strips) != 0 {
		return nil, fmt.Errorf("tile: height %d not divisible into %d strips: %w", height, len(strips), view.ErrInvalidArgument)
	}
	images, err := Render(ctx, r.Backend, r.Workers, strips, fn, width, height/len(strips))
	if err != nil {
		return nil, err
	}
	return Fuse(images)
}
