// Package hud draws the viewer status line over a rendered frame.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"mandel/fractal/view"
)

var (
	colorFG    = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorBarBG = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

// Status is what the line reports.
type Status struct {
	Precision view.Precision
	Zoom      float64
	CenterX   float64
	CenterY   float64
	Frame     time.Duration
}

func (s Status) String() string {
	return fmt.Sprintf("%s x%.3g (%.10g, %.10g) %dms",
		s.Precision, s.Zoom, s.CenterX, s.CenterY, s.Frame.Milliseconds())
}

// Font is the face the status line is written in.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	padding = 2
	// barAlpha is how much of the frame shows through the bar, out of 255.
	barAlpha = 96
)

// Draw writes s over the top rows of img. Pixels outside img are clipped.
func Draw(img *image.RGBA, s Status) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	d := newImageDisplay(img)

	text := s.String()
	lineH := int16(Font.GetYAdvance())
	_, w := tinyfont.LineWidth(Font, text)
	d.shade(0, 0, int16(w)+2*padding, lineH+2*padding, colorBarBG)
	tinyfont.WriteLine(d, Font, padding, lineH, text, colorFG)
}

// imageDisplay lets tinyfont draw into an *image.RGBA.
type imageDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*imageDisplay)(nil)

func newImageDisplay(img *image.RGBA) *imageDisplay {
	return &imageDisplay{img: img}
}

// Size truncates to int16; frames are far below 32767 pixels on a side.
func (d *imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	b := d.img.Bounds()
	p := image.Pt(b.Min.X+int(x), b.Min.Y+int(y))
	if !p.In(b) {
		return
	}
	d.img.SetRGBA(p.X, p.Y, c)
}

func (d *imageDisplay) Display() error { return nil }

// shade blends c over a rectangle, leaving barAlpha/255 of the frame visible.
func (d *imageDisplay) shade(x, y, width, height int16, c color.RGBA) {
	b := d.img.Bounds()
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Add(b.Min).Intersect(b)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			o := d.img.PixOffset(px, py)
			pix := d.img.Pix[o : o+3 : o+3]
			pix[0] = blend(pix[0], c.R)
			pix[1] = blend(pix[1], c.G)
			pix[2] = blend(pix[2], c.B)
		}
	}
}

func blend(under, over uint8) uint8 {
	return uint8((uint16(under)*barAlpha + uint16(over)*(255-barAlpha)) / 255)
}
