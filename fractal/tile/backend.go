package tile

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mandel/fractal/view"
)

// Backend selects how strips are evaluated.
type Backend uint8

const (
	// Serial renders strips one after another on the calling goroutine.
	Serial Backend = iota + 1
	// Parallel renders strips on a bounded pool of goroutines.
	Parallel
)

func (b Backend) String() string {
	switch b {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("backend(%d)", uint8(b))
	}
}

// ParseBackend accepts "serial" and "parallel".
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "serial", "cpu":
		return Serial, nil
	case "parallel", "multicore":
		return Parallel, nil
	default:
		return 0, fmt.Errorf("tile: unknown backend %q: %w", s, view.ErrInvalidArgument)
	}
}

// Render evaluates fn on every strip. The result is in strip order whatever
// the backend. workers <= 0 means one worker per CPU.
func Render[T view.Float](ctx context.Context, b Backend, workers int, strips []view.View[T], fn RenderFn[T], width, rows int) ([]*image.RGBA, error) {
	if fn == nil {
		return nil, fmt.Errorf("tile: nil render function: %w", view.ErrInvalidArgument)
	}
	out := make([]*image.RGBA, len(strips))

	switch b {
	case Serial:
		for i, s := range strips {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = fn(s, width, rows)
		}

	case Parallel:
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(workers)
		for i, s := range strips {
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = fn(s, width, rows)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("tile: render with %s: %w", b, view.ErrInvalidArgument)
	}
	return out, nil
}
