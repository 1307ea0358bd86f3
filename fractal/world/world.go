// Package world holds the interactive viewer state: the current view, the
// precision it is computed in and the keys currently held down.
package world

import (
	"context"
	"fmt"
	"image"

	"mandel/fractal/mandelbrot"
	"mandel/fractal/tile"
	"mandel/fractal/view"
)

// Input is the set of motions requested by held keys.
type Input struct {
	Zoom       view.Zooming
	Horizontal view.Moving
	Vertical   view.Moving
}

// Options configure a World. They are fixed for its lifetime.
type Options struct {
	Width  int
	Height int
	Limit  int
	Steps  view.Steps

	// Palette defaults to mandelbrot.DefaultPalette.
	Palette *mandelbrot.Palette
}

// World is the viewer state. It is not safe for concurrent use; every
// mutation happens on the event loop.
type World struct {
	opts  Options
	input Input
	vp    viewport
	dirty bool
	hud   bool
}

// viewport is implemented by state[float32] and state[float64] only.
type viewport interface {
	precision() view.Precision
	bounds() view.View[float64]
	moved(in Input, s view.Steps) (viewport, bool)
	jump(v view.View[float64]) viewport
	frame(ctx context.Context, r tile.Renderer, width, height int) (*image.RGBA, error)
}

type state[T view.Float] struct {
	prec   view.Precision
	view   view.View[T]
	render tile.RenderFn[T]
}

// New returns a World looking at v in precision p.
func New(opts Options, p view.Precision, v view.View[float64]) (*World, error) {
	if err := opts.Steps.Validate(); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("world: size %dx%d: %w", opts.Width, opts.Height, view.ErrInvalidArgument)
	}
	if !v.Valid() {
		return nil, fmt.Errorf("world: view %s: %w", v, view.ErrInvalidArgument)
	}
	vp, err := newViewport(opts, p, v)
	if err != nil {
		return nil, err
	}
	return &World{opts: opts, vp: vp, dirty: true, hud: true}, nil
}

func newViewport(opts Options, p view.Precision, v view.View[float64]) (viewport, error) {
	switch p {
	case view.Single:
		s, err := newState[float32](opts, p, v)
		if err != nil {
			return nil, err
		}
		return s, nil
	case view.Double:
		s, err := newState[float64](opts, p, v)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("world: %s: %w", p, view.ErrInvalidArgument)
	}
}

func newState[T view.Float](opts Options, p view.Precision, v view.View[float64]) (*state[T], error) {
	fn, err := mandelbrot.New[T](opts.Limit, opts.Palette)
	if err != nil {
		return nil, err
	}
	return &state[T]{prec: p, view: view.Convert[T](v), render: fn}, nil
}

func (s *state[T]) precision() view.Precision  { return s.prec }
func (s *state[T]) bounds() view.View[float64] { return view.Convert[float64](s.view) }

func (s *state[T]) moved(in Input, st view.Steps) (viewport, bool) {
	next := view.Zoom(view.Pan(s.view, in.Horizontal, in.Vertical, st), in.Zoom, st)
	if next == s.view || !next.Valid() {
		return s, false
	}
	return &state[T]{prec: s.prec, view: next, render: s.render}, true
}

func (s *state[T]) jump(v view.View[float64]) viewport {
	return &state[T]{prec: s.prec, view: view.Convert[T](v), render: s.render}
}

func (s *state[T]) frame(ctx context.Context, r tile.Renderer, width, height int) (*image.RGBA, error) {
	return tile.Frame(ctx, r, s.view, s.render, width, height)
}

// Precision is the float width the view is currently computed in.
func (w *World) Precision() view.Precision { return w.vp.precision() }

// View returns the current bounds widened to float64.
func (w *World) View() view.View[float64] { return w.vp.bounds() }

func (w *World) Input() Input     { return w.input }
func (w *World) Options() Options { return w.opts }

// Dirty reports whether the view changed since the last Render.
func (w *World) Dirty() bool { return w.dirty }

// HUD reports whether the status line should be drawn.
func (w *World) HUD() bool { return w.hud }

// ZoomLevel is the magnification relative to view.Home.
func (w *World) ZoomLevel() float64 {
	return view.Home.Width() / w.View().Width()
}

// SetPrecision converts the view to p and rebuilds the render function.
// Switching to the current precision does nothing.
func (w *World) SetPrecision(p view.Precision) error {
	if p == w.vp.precision() {
		return nil
	}
	vp, err := newViewport(w.opts, p, w.vp.bounds())
	if err != nil {
		return err
	}
	w.vp = vp
	w.dirty = true
	return nil
}

// Jump moves to v keeping the current precision.
func (w *World) Jump(v view.View[float64]) error {
	if !v.Valid() {
		return fmt.Errorf("world: jump to %s: %w", v, view.ErrInvalidArgument)
	}
	w.vp = w.vp.jump(v)
	w.dirty = true
	return nil
}

// Advance applies one frame of motion: pan, then zoom. A step that would
// collapse the view, or overflow its extent, in the current precision is
// dropped.
func (w *World) Advance() bool {
	vp, changed := w.vp.moved(w.input, w.opts.Steps)
	if !changed {
		return false
	}
	w.vp = vp
	w.dirty = true
	return true
}

// Render draws the current view through r at the configured size.
func (w *World) Render(ctx context.Context, r tile.Renderer) (*image.RGBA, error) {
	img, err := w.vp.frame(ctx, r, w.opts.Width, w.opts.Height)
	if err != nil {
		return nil, fmt.Errorf("world: render %s %s: %w", w.vp.precision(), w.vp.bounds(), err)
	}
	w.dirty = false
	return img, nil
}
