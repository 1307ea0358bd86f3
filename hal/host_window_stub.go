//go:build !cgo

package hal

import (
	"errors"
	"log/slog"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
	TPS    int
}

// RunWindow always fails: the ebiten window needs cgo.
func RunWindow(_ *slog.Logger, _ WindowConfig, _ NewAppFunc) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
