// Package view models a rectangular window onto the complex plane and the
// pan/zoom steps that move it.
//
// Coordinates are generic over the float width so the same view can drive a
// float32 or a float64 computation. Image row 0 corresponds to Ymin.
package view

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument reports input that no operation can make sense of, such
// as splitting a view into zero strips.
var ErrInvalidArgument = errors.New("invalid argument")

// Float is the set of numeric widths a View can be stored in.
type Float interface {
	~float32 | ~float64
}

// View is a rectangle [Xmin,Xmax]x[Ymin,Ymax]. Xmin < Xmax and Ymin < Ymax.
type View[T Float] struct {
	Xmin, Ymin T
	Xmax, Ymax T
}

// New returns a View from its bounds, rejecting empty or inverted rectangles.
func New[T Float](xmin, ymin, xmax, ymax T) (View[T], error) {
	v := View[T]{Xmin: xmin, Ymin: ymin, Xmax: xmax, Ymax: ymax}
	if !v.Valid() {
		return View[T]{}, fmt.Errorf("view: bounds %s: %w", v, ErrInvalidArgument)
	}
	return v, nil
}

func (v View[T]) Width() T  { return v.Xmax - v.Xmin }
func (v View[T]) Height() T { return v.Ymax - v.Ymin }

func (v View[T]) Center() (x, y T) {
	return (v.Xmin + v.Xmax) / 2, (v.Ymin + v.Ymax) / 2
}

// Valid reports whether the bounds form a non-empty rectangle with a finite
// width and height. NaN and infinite bounds are never valid.
func (v View[T]) Valid() bool {
	return v.Xmin < v.Xmax && v.Ymin < v.Ymax &&
		finite(v.Width()) && finite(v.Height())
}

func finite[T Float](x T) bool {
	f := float64(x)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (v View[T]) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", float64(v.Xmin), float64(v.Ymin), float64(v.Xmax), float64(v.Ymax))
}

// Convert changes the numeric width of a view. Bounds are kept up to the
// rounding of the target type.
func Convert[U, T Float](v View[T]) View[U] {
	return View[U]{
		Xmin: U(v.Xmin),
		Ymin: U(v.Ymin),
		Xmax: U(v.Xmax),
		Ymax: U(v.Ymax),
	}
}

// Precision selects the float width a view and its image function use.
type Precision uint8

const (
	Single Precision = iota + 1
	Double
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("precision(%d)", uint8(p))
	}
}

// ParsePrecision accepts "single"/"float"/"f32" and "double"/"f64".
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "single", "float", "float32", "f32":
		return Single, nil
	case "double", "float64", "f64":
		return Double, nil
	default:
		return 0, fmt.Errorf("view: unknown precision %q: %w", s, ErrInvalidArgument)
	}
}
