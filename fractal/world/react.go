package world

import (
	"unicode"

	"mandel/fractal/view"
)

// Special names the non-character keys the viewer reacts to.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialUp
	SpecialDown
	SpecialLeft
	SpecialRight
)

// Event is a key transition. Either Rune or Special is set.
type Event struct {
	Rune    rune
	Special Special
	Down    bool
}

// React updates w for one key event. Motion keys set their flag on key-down
// and clear it on the matching key-up; other keys act on key-down only.
// Unbound keys are ignored.
func (w *World) React(ev Event) error {
	if ev.Special != SpecialNone {
		w.special(ev.Special, ev.Down)
		return nil
	}

	switch unicode.ToLower(ev.Rune) {
	case 'w':
		w.input.Zoom = toggle(w.input.Zoom, view.ZoomIn, ev.Down)
	case 's':
		w.input.Zoom = toggle(w.input.Zoom, view.ZoomOut, ev.Down)
	}
	if !ev.Down {
		return nil
	}

	switch r := unicode.ToLower(ev.Rune); {
	case r == 'f':
		return w.SetPrecision(view.Single)
	case r == 'd':
		return w.SetPrecision(view.Double)
	case r == 'r':
		return w.Jump(view.Home)
	case r == 'h':
		w.hud = !w.hud
		w.dirty = true
	case r >= '0' && r <= '9':
		if p, ok := view.PresetFor(r); ok {
			return w.Jump(p.View)
		}
	}
	return nil
}

func (w *World) special(k Special, down bool) {
	switch k {
	case SpecialUp:
		w.input.Vertical = toggle(w.input.Vertical, view.Reverse, down)
	case SpecialDown:
		w.input.Vertical = toggle(w.input.Vertical, view.Forward, down)
	case SpecialLeft:
		w.input.Horizontal = toggle(w.input.Horizontal, view.Reverse, down)
	case SpecialRight:
		w.input.Horizontal = toggle(w.input.Horizontal, view.Forward, down)
	}
}

// toggle sets dir on key-down and clears cur on key-up when it still holds
// dir, so releasing one key does not cancel the opposite one.
func toggle[D comparable](cur, dir D, down bool) D {
	if down {
		return dir
	}
	if cur == dir {
		var none D
		return none
	}
	return cur
}
