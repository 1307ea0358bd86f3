package view

import "fmt"

// DefaultStep is the fraction of the view moved or scaled per frame.
const DefaultStep = 0.025

// Zooming is the direction of an optional zoom.
type Zooming uint8

const (
	ZoomNone Zooming = iota
	ZoomIn
	ZoomOut
)

// Moving is the direction of an optional pan along one axis.
type Moving uint8

const (
	MoveNone Moving = iota
	Forward
	Reverse
)

// Steps are the per-frame zoom and pan fractions.
type Steps struct {
	Zoom float64
	Pan  float64
}

// DefaultSteps returns 2.5% for both zoom and pan.
func DefaultSteps() Steps {
	return Steps{Zoom: DefaultStep, Pan: DefaultStep}
}

// Validate rejects steps that would freeze the view or divide by zero.
func (s Steps) Validate() error {
	if !(s.Zoom > 0) {
		return fmt.Errorf("view: zoom step %g: %w", s.Zoom, ErrInvalidArgument)
	}
	if !(s.Pan > 0) || s.Pan >= 1 {
		return fmt.Errorf("view: pan step %g: %w", s.Pan, ErrInvalidArgument)
	}
	return nil
}

// Zoom scales v about its centre. ZoomIn divides the extent by (1+step) and
// ZoomOut multiplies it by (1+step), so one undoes the other.
func Zoom[T Float](v View[T], dir Zooming, s Steps) View[T] {
	var k T
	switch dir {
	case ZoomIn:
		k = T(1 / (1 + s.Zoom))
	case ZoomOut:
		k = T(1 + s.Zoom)
	default:
		return v
	}
	cx, cy := v.Center()
	hw := v.Width() / 2 * k
	hh := v.Height() / 2 * k
	return View[T]{
		Xmin: cx - hw,
		Ymin: cy - hh,
		Xmax: cx + hw,
		Ymax: cy + hh,
	}
}

// Pan translates v by a fraction of its own width and height. Each axis is
// independent and left untouched when its direction is MoveNone.
func Pan[T Float](v View[T], horizontal, vertical Moving, s Steps) View[T] {
	if dx := offset(v.Width(), horizontal, s.Pan); dx != 0 {
		v.Xmin += dx
		v.Xmax += dx
	}
	if dy := offset(v.Height(), vertical, s.Pan); dy != 0 {
		v.Ymin += dy
		v.Ymax += dy
	}
	return v
}

func offset[T Float](extent T, dir Moving, step float64) T {
	switch dir {
	case Forward:
		return extent * T(step)
	case Reverse:
		return -extent * T(step)
	default:
		return 0
	}
}
