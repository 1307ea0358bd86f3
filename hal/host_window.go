//go:build cgo

package hal

import (
	"errors"
	"image"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Scale multiplies the window size; the frame itself stays Width x Height.
	Scale int
	TPS   int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes or the step returns an error.
func RunWindow(logger *slog.Logger, cfg WindowConfig, newApp NewAppFunc) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	h := newHost(logger, cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	step  StepFunc
	fbImg *ebiten.Image
	seq   uint64
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	img, seq := g.h.fb.snapshot()
	if img == nil {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != img.Bounds().Dx() || g.fbImg.Bounds().Dy() != img.Bounds().Dy() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(img.Bounds().Dx(), img.Bounds().Dy())
		g.seq = 0
	}
	if seq != g.seq {
		g.fbImg.WritePixels(packed(img))
		g.seq = seq
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

// packed returns img's pixels without row padding.
func packed(img *image.RGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	if img.Stride == row && b.Min == (image.Point{}) {
		return img.Pix[:row*b.Dy()]
	}
	out := make([]byte, 0, row*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		o := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[o:o+row]...)
	}
	return out
}
