package hal

import (
	"errors"
	"log/slog"
)

// ErrQuit is returned by a step to end the run loop without error.
var ErrQuit = errors.New("quit")

type hostHAL struct {
	logger *slog.Logger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
}

func newHost(logger *slog.Logger, width, height int) *hostHAL {
	if logger == nil {
		logger = slog.Default()
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(width, height),
		kbd:    newHostKeyboard(),
	}
}

func (h *hostHAL) Logger() *slog.Logger { return h.logger }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input         { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

// StepFunc advances the app by one tick.
type StepFunc func() error

// NewAppFunc builds an app against h and returns its per-tick step.
type NewAppFunc func(h HAL) (StepFunc, error)
