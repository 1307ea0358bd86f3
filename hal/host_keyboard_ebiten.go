//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var charKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyW, 'w'},
	{ebiten.KeyS, 's'},
	{ebiten.KeyF, 'f'},
	{ebiten.KeyD, 'd'},
	{ebiten.KeyR, 'r'},
	{ebiten.KeyH, 'h'},
	{ebiten.KeyP, 'p'},
	{ebiten.KeyDigit0, '0'},
	{ebiten.KeyDigit1, '1'},
	{ebiten.KeyDigit2, '2'},
	{ebiten.KeyDigit3, '3'},
	{ebiten.KeyDigit4, '4'},
	{ebiten.KeyDigit5, '5'},
	{ebiten.KeyDigit6, '6'},
	{ebiten.KeyDigit7, '7'},
	{ebiten.KeyDigit8, '8'},
	{ebiten.KeyDigit9, '9'},
}

var specialKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEscape, KeyEscape},
}

// poll turns this tick's key transitions into events. Letter keys report
// both press and release so held keys can drive continuous motion.
func (k *hostKeyboard) poll() {
	for _, c := range charKeys {
		if inpututil.IsKeyJustPressed(c.key) {
			k.send(KeyEvent{Press: true, Rune: c.r})
		}
		if inpututil.IsKeyJustReleased(c.key) {
			k.send(KeyEvent{Press: false, Rune: c.r})
		}
	}
	for _, s := range specialKeys {
		if inpututil.IsKeyJustPressed(s.key) {
			k.send(KeyEvent{Code: s.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(s.key) {
			k.send(KeyEvent{Code: s.code, Press: false})
		}
	}
}
