// Package app wires the viewer together: configuration, the World, the tile
// renderer and the host loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"mandel/fractal/hud"
	"mandel/fractal/tile"
	"mandel/fractal/view"
	"mandel/fractal/world"
	"mandel/hal"
)

// App owns the viewer state. All methods run on the host loop goroutine.
type App struct {
	cfg      Config
	log      *slog.Logger
	world    *world.World
	renderer tile.Renderer

	frame     *image.RGBA
	frameTime time.Duration
	frames    uint64
	shots     int
}

// New validates cfg and builds the initial World.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	backend, _ := tile.ParseBackend(cfg.Backend)
	prec, _ := view.ParsePrecision(cfg.Precision)

	w, err := world.New(world.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Limit:  cfg.Limit,
		Steps:  cfg.steps(),
	}, prec, view.Presets[cfg.Preset].View)
	if err != nil {
		return nil, err
	}

	logger.Debug("app: world ready",
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"precision", prec,
		"backend", backend,
		"strips", cfg.Strips,
		"limit", cfg.Limit)

	return &App{
		cfg:   cfg,
		log:   logger,
		world: w,
		renderer: tile.Renderer{
			Strips:  cfg.Strips,
			Backend: backend,
			Workers: cfg.Workers,
		},
	}, nil
}

// World exposes the viewer state, mostly for tests.
func (a *App) World() *world.World { return a.world }

// Frame is the last rendered image, or nil before the first Step.
func (a *App) Frame() *image.RGBA { return a.frame }

// Frames counts the frames rendered so far.
func (a *App) Frames() uint64 { return a.frames }

// Handle applies one key event. Escape ends the run with hal.ErrQuit and
// p saves a snapshot.
func (a *App) Handle(ev hal.KeyEvent) error {
	switch {
	case ev.Code == hal.KeyEscape:
		if ev.Press {
			return hal.ErrQuit
		}
		return nil
	case ev.Rune == 'p' || ev.Rune == 'P':
		if !ev.Press {
			return nil
		}
		path := a.cfg.Out
		if path == "" {
			a.shots++
			path = fmt.Sprintf("mandel-%03d.png", a.shots)
		}
		return a.Snapshot(path)
	}

	before := a.world.Precision()
	if err := a.world.React(toWorldEvent(ev)); err != nil {
		return err
	}
	if p := a.world.Precision(); p != before {
		a.log.Info("app: precision switched", "from", before, "to", p, "view", a.world.View().String())
	}
	return nil
}

func toWorldEvent(ev hal.KeyEvent) world.Event {
	out := world.Event{Rune: ev.Rune, Down: ev.Press}
	switch ev.Code {
	case hal.KeyUp:
		out.Special = world.SpecialUp
	case hal.KeyDown:
		out.Special = world.SpecialDown
	case hal.KeyLeft:
		out.Special = world.SpecialLeft
	case hal.KeyRight:
		out.Special = world.SpecialRight
	}
	return out
}

// Step advances the view by one frame and re-renders it when it changed.
// It reports whether a new frame was produced.
func (a *App) Step(ctx context.Context) (bool, error) {
	a.world.Advance()
	if !a.world.Dirty() && a.frame != nil {
		return false, nil
	}

	start := time.Now()
	img, err := a.world.Render(ctx, a.renderer)
	if err != nil {
		return false, err
	}
	a.frameTime = time.Since(start)
	a.frames++

	if a.world.HUD() {
		cx, cy := a.world.View().Center()
		hud.Draw(img, hud.Status{
			Precision: a.world.Precision(),
			Zoom:      a.world.ZoomLevel(),
			CenterX:   cx,
			CenterY:   cy,
			Frame:     a.frameTime,
		})
	}
	a.frame = img

	a.log.Debug("app: frame",
		"n", a.frames,
		"took", a.frameTime,
		"precision", a.world.Precision(),
		"view", a.world.View().String())
	return true, nil
}

// Attach returns the host step: drain the keyboard, advance, present.
func (a *App) Attach(ctx context.Context, h hal.HAL) hal.StepFunc {
	var events <-chan hal.KeyEvent
	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			events = kbd.Events()
		}
	}
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}

	return func() error {
	drain:
		for {
			select {
			case ev := <-events:
				if err := a.Handle(ev); err != nil {
					return err
				}
			default:
				break drain
			}
		}

		fresh, err := a.Step(ctx)
		if err != nil {
			return err
		}
		if fresh && fb != nil {
			return fb.Present(a.frame)
		}
		return nil
	}
}

// Snapshot writes the last frame to path as PNG.
func (a *App) Snapshot(path string) (err error) {
	if a.frame == nil {
		return errors.New("snapshot: no frame rendered yet")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("snapshot: close %q: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, a.frame); err != nil {
		return fmt.Errorf("snapshot: encode %q: %w", path, err)
	}
	a.log.Info("app: snapshot saved", "path", path, "view", a.world.View().String())
	return nil
}

// Run opens the window, or runs headless when cfg.Headless is set. A
// headless run with Out set saves the final frame there.
func Run(ctx context.Context, cfg Config, logger *slog.Logger, title string) error {
	if logger == nil {
		logger = slog.Default()
	}
	a, err := New(cfg, logger)
	if err != nil {
		return err
	}
	newApp := func(h hal.HAL) (hal.StepFunc, error) {
		return a.Attach(ctx, h), nil
	}

	if !cfg.Headless {
		return hal.RunWindow(logger, hal.WindowConfig{
			Title:  title,
			Width:  cfg.Width,
			Height: cfg.Height,
			Scale:  cfg.Scale,
			TPS:    cfg.Hz,
		}, newApp)
	}

	script, err := hal.ParseScript(cfg.Keys)
	if err != nil {
		return err
	}
	ticks := cfg.Ticks
	if ticks == 0 && len(script) == 0 {
		ticks = 1
	}
	start := time.Now()
	if _, err := hal.RunHeadless(ctx, logger, hal.HeadlessConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Hz:     cfg.Hz,
		Ticks:  ticks,
		Script: script,
	}, newApp); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("app: headless run interrupted", "frames", a.Frames())
			return nil
		}
		return err
	}
	logger.Info("app: headless run finished",
		"frames", a.Frames(),
		"took", time.Since(start),
		"view", a.world.View().String(),
		"precision", a.world.Precision())

	if cfg.Out != "" {
		return a.Snapshot(cfg.Out)
	}
	return nil
}
