package hal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	// Hz is the tick rate. Zero or less runs ticks back to back.
	Hz int
	// Ticks stops the run after N ticks (0 = run until the script ends or
	// the context is cancelled; with no script, forever).
	Ticks  uint64
	Script Script
}

// RunHeadless runs the app without opening a window. Scripted key events
// are delivered before the step of the tick they are due on. It returns the
// framebuffer so callers can inspect the last frame.
func RunHeadless(ctx context.Context, logger *slog.Logger, cfg HeadlessConfig, newApp NewAppFunc) (Framebuffer, error) {
	h := newHost(logger, cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return nil, err
	}

	var tickC <-chan time.Time
	if cfg.Hz > 0 {
		d := time.Second / time.Duration(cfg.Hz)
		if d <= 0 {
			return nil, fmt.Errorf("invalid headless hz: %d", cfg.Hz)
		}
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	limit := cfg.Ticks
	if limit == 0 && len(cfg.Script) > 0 {
		limit = cfg.Script.Len()
	}

	next := 0
	for tick := uint64(0); limit == 0 || tick < limit; tick++ {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return h.fb, ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return h.fb, err
		}

		for next < len(cfg.Script) && cfg.Script[next].Tick <= tick {
			if !h.kbd.send(cfg.Script[next].Event) {
				h.logger.Warn("headless: keyboard queue full, dropping event", "tick", tick)
			}
			next++
		}
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return h.fb, nil
				}
				return h.fb, err
			}
		}
	}
	return h.fb, nil
}
