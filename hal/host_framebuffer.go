package hal

import (
	"fmt"
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	last   *image.RGBA
	seq    uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{width: width, height: height}
}

func (f *hostFramebuffer) Width() int  { return f.width }
func (f *hostFramebuffer) Height() int { return f.height }

func (f *hostFramebuffer) Present(img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("framebuffer: present nil image")
	}
	if b := img.Bounds(); b.Dx() != f.width || b.Dy() != f.height {
		return fmt.Errorf("framebuffer: present %dx%d on %dx%d", b.Dx(), b.Dy(), f.width, f.height)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = img
	f.seq++
	return nil
}

func (f *hostFramebuffer) Last() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// snapshot returns the latest frame and a counter that changes whenever a new
// frame is presented.
func (f *hostFramebuffer) snapshot() (*image.RGBA, uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.seq
}
