// Package hal is the viewer's contact point with the host: a window or a
// headless loop, the keyboard, and the surface frames are presented on.
package hal

import (
	"image"
	"log/slog"
)

// KeyCode names a special (non-character) key.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// KeyEvent is a key transition. Character keys carry Rune and KeyUnknown;
// special keys carry Code and a zero Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Framebuffer receives finished frames.
type Framebuffer interface {
	Width() int
	Height() int
	// Present publishes img. The framebuffer keeps a reference; callers must
	// not modify img afterwards.
	Present(img *image.RGBA) error
	// Last returns the most recently presented frame, or nil.
	Last() *image.RGBA
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
}

// HAL bundles what an app may touch.
type HAL interface {
	Logger() *slog.Logger
	Display() Display
	Input() Input
}
