package tile

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandel/fractal/view"
)

func TestSplitFourStrips(t *testing.T) {
	v := view.View[float64]{Xmin: -2, Ymin: -1, Xmax: 1, Ymax: 1}
	strips, err := Split(v, 4)
	require.NoError(t, err)
	require.Len(t, strips, 4)

	bounds := []float64{-1, -0.5, 0, 0.5, 1}
	for i, s := range strips {
		assert.Equal(t, bounds[i], s.Ymin, "strip %d ymin", i)
		assert.Equal(t, bounds[i+1], s.Ymax, "strip %d ymax", i)
		assert.Equal(t, 0.5, s.Height())
		assert.Equal(t, v.Xmin, s.Xmin)
		assert.Equal(t, v.Xmax, s.Xmax)
	}
}

func TestSplitCoversView(t *testing.T) {
	views := []view.View[float64]{
		view.Home,
		{Xmin: -0.7435, Ymin: 0.131, Xmax: -0.742, Ymax: 0.1325},
		{Xmin: 0, Ymin: 0.1, Xmax: 1, Ymax: 0.7},
	}
	for _, v := range views {
		for _, n := range []int{1, 2, 3, 7, 16, 100} {
			strips, err := Split(v, n)
			require.NoError(t, err)
			require.Len(t, strips, n)
			assert.Equal(t, v.Ymin, strips[0].Ymin)
			assert.Equal(t, v.Ymax, strips[n-1].Ymax)
			for i := 1; i < n; i++ {
				assert.Equal(t, strips[i-1].Ymax, strips[i].Ymin, "n=%d boundary %d", n, i)
				assert.True(t, strips[i].Valid())
			}
		}
	}
}

func TestSplitNearFloatLimit(t *testing.T) {
	v := view.View[float32]{Xmin: -5.8e37, Ymin: -5.8e37, Xmax: 5.8e37, Ymax: 5.8e37}
	require.True(t, v.Valid())
	strips, err := Split(v, 4)
	require.NoError(t, err)
	require.Len(t, strips, 4)
	assert.Equal(t, v.Ymin, strips[0].Ymin)
	assert.Equal(t, v.Ymax, strips[3].Ymax)
	for i := 1; i < 4; i++ {
		assert.Equal(t, strips[i-1].Ymax, strips[i].Ymin)
		assert.True(t, strips[i].Valid(), "strip %d %s", i, strips[i])
	}

	wide := view.View[float64]{Xmin: -1, Ymin: -3e307, Xmax: 1, Ymax: 3e307}
	strips64, err := Split(wide, 16)
	require.NoError(t, err)
	assert.Len(t, strips64, 16)
}

func TestSplitSingleIsIdentity(t *testing.T) {
	v := view.View[float32]{Xmin: -2, Ymin: -1, Xmax: 1, Ymax: 1}
	strips, err := Split(v, 1)
	require.NoError(t, err)
	assert.Equal(t, []view.View[float32]{v}, strips)
}

func TestSplitInvalid(t *testing.T) {
	v := view.View[float64]{Xmin: -2, Ymin: -1, Xmax: 1, Ymax: 1}
	for _, n := range []int{0, -3} {
		_, err := Split(v, n)
		assert.ErrorIs(t, err, view.ErrInvalidArgument)
	}

	thin := view.View[float32]{Xmin: 0, Ymin: 1, Xmax: 1, Ymax: 1.0000001}
	_, err := Split(thin, 1000)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFuse(t *testing.T) {
	_, err := Fuse(nil)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
	_, err = Fuse([]*image.RGBA{})
	assert.ErrorIs(t, err, view.ErrInvalidArgument)

	one := solid(3, 2, color.RGBA{R: 1, A: 255})
	got, err := Fuse([]*image.RGBA{one})
	require.NoError(t, err)
	assert.Same(t, one, got)

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	got, err = Fuse([]*image.RGBA{solid(4, 2, red), solid(4, 3, blue)})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 5), got.Bounds())
	assert.Equal(t, red, got.RGBAAt(3, 1))
	assert.Equal(t, blue, got.RGBAAt(0, 2))
	assert.Equal(t, blue, got.RGBAAt(3, 4))

	_, err = Fuse([]*image.RGBA{solid(4, 2, red), solid(5, 2, blue)})
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
}

func TestFuseOffsetBounds(t *testing.T) {
	base := solid(4, 4, color.RGBA{G: 9, A: 255})
	base.SetRGBA(1, 2, color.RGBA{R: 7, A: 255})
	sub := base.SubImage(image.Rect(1, 2, 3, 4)).(*image.RGBA)

	got, err := Fuse([]*image.RGBA{sub, solid(2, 1, color.RGBA{B: 3, A: 255})})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 7, A: 255}, got.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{G: 9, A: 255}, got.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{B: 3, A: 255}, got.RGBAAt(0, 2))
}

// stripIndex paints each strip with a grey level derived from its Ymin so the
// fused image shows whether strips came back in order.
func stripIndex(v view.View[float64], width, height int) *image.RGBA {
	level := uint8(v.Ymin*10 + 100)
	return solid(width, height, color.RGBA{R: level, G: level, B: level, A: 255})
}

func TestRenderBackendsKeepOrder(t *testing.T) {
	v := view.View[float64]{Xmin: 0, Ymin: 0, Xmax: 1, Ymax: 8}
	strips, err := Split(v, 8)
	require.NoError(t, err)

	for _, b := range []Backend{Serial, Parallel} {
		images, err := Render(context.Background(), b, 3, strips, stripIndex, 2, 1)
		require.NoError(t, err, b.String())
		require.Len(t, images, 8)
		for i, img := range images {
			assert.Equal(t, uint8(i*10+100), img.RGBAAt(0, 0).R, "%s strip %d", b, i)
		}
	}
}

func TestRenderParallelRunsEveryStrip(t *testing.T) {
	var calls atomic.Int32
	fn := func(v view.View[float32], width, height int) *image.RGBA {
		calls.Add(1)
		return image.NewRGBA(image.Rect(0, 0, width, height))
	}
	strips, err := Split(view.View[float32]{Xmin: 0, Ymin: 0, Xmax: 1, Ymax: 1}, 32)
	require.NoError(t, err)

	_, err = Render(context.Background(), Parallel, 0, strips, fn, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, int32(32), calls.Load())
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strips, err := Split(view.View[float64]{Xmin: 0, Ymin: 0, Xmax: 1, Ymax: 1}, 4)
	require.NoError(t, err)
	for _, b := range []Backend{Serial, Parallel} {
		_, err := Render(ctx, b, 2, strips, stripIndex, 2, 2)
		assert.ErrorIs(t, err, context.Canceled, b.String())
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	strips := []view.View[float64]{{Xmin: 0, Ymin: 0, Xmax: 1, Ymax: 1}}
	_, err := Render(context.Background(), Backend(9), 1, strips, stripIndex, 1, 1)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
	_, err = Render[float64](context.Background(), Serial, 1, strips, nil, 1, 1)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
}

func TestFrame(t *testing.T) {
	v := view.View[float64]{Xmin: 0, Ymin: 0, Xmax: 1, Ymax: 4}
	r := Renderer{Strips: 4, Backend: Parallel, Workers: 2}

	img, err := Frame(context.Background(), r, v, stripIndex, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 8), img.Bounds())
	for row := 0; row < 8; row++ {
		assert.Equal(t, uint8(row/2*10+100), img.RGBAAt(1, row).R, "row %d", row)
	}

	_, err = Frame(context.Background(), r, v, stripIndex, 3, 10)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
	_, err = Frame(context.Background(), Renderer{Strips: 0, Backend: Serial}, v, stripIndex, 3, 8)
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("parallel")
	require.NoError(t, err)
	assert.Equal(t, Parallel, b)
	b, err = ParseBackend("serial")
	require.NoError(t, err)
	assert.Equal(t, Serial, b)
	_, err = ParseBackend("cuda")
	assert.ErrorIs(t, err, view.ErrInvalidArgument)
}
