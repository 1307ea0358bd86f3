package hal

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	s, err := ParseScript("w:3, right ,10,F")
	require.NoError(t, err)

	want := Script{
		{Tick: 0, Event: KeyEvent{Rune: 'w', Press: true}},
		{Tick: 3, Event: KeyEvent{Rune: 'w'}},
		{Tick: 3, Event: KeyEvent{Code: KeyRight, Press: true}},
		{Tick: 4, Event: KeyEvent{Code: KeyRight}},
		{Tick: 14, Event: KeyEvent{Rune: 'F', Press: true}},
		{Tick: 15, Event: KeyEvent{Rune: 'F'}},
	}
	assert.Equal(t, want, s)
	assert.Equal(t, uint64(16), s.Len())

	s, err = ParseScript("")
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Zero(t, s.Len())

	for _, bad := range []string{"w:0", "w:x", "pgup", "ab:2"} {
		_, err := ParseScript(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseScriptDigitKey(t *testing.T) {
	s, err := ParseScript("3")
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, '3', s[0].Event.Rune)
}

func TestFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	assert.Nil(t, fb.Last())

	require.Error(t, fb.Present(nil))
	require.Error(t, fb.Present(image.NewRGBA(image.Rect(0, 0, 2, 4))))

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	require.NoError(t, fb.Present(img))
	assert.Same(t, img, fb.Last())
	_, seq := fb.snapshot()
	assert.Equal(t, uint64(1), seq)
}

type recorder struct {
	h      HAL
	steps  int
	events []KeyEvent
}

func (r *recorder) step() error {
	r.steps++
	kbd := r.h.Input().Keyboard()
	for {
		select {
		case ev := <-kbd.Events():
			r.events = append(r.events, ev)
			if ev.Code == KeyEscape {
				return ErrQuit
			}
		default:
			img := image.NewRGBA(image.Rect(0, 0, 2, 2))
			return r.h.Display().Framebuffer().Present(img)
		}
	}
}

func TestRunHeadlessScript(t *testing.T) {
	script, err := ParseScript("w:2,d")
	require.NoError(t, err)

	rec := &recorder{}
	fb, err := RunHeadless(context.Background(), nil, HeadlessConfig{Width: 2, Height: 2, Script: script},
		func(h HAL) (StepFunc, error) {
			rec.h = h
			return rec.step, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 4, rec.steps)
	assert.Len(t, rec.events, 4)
	assert.NotNil(t, fb.Last())
}

func TestRunHeadlessTicksAndQuit(t *testing.T) {
	rec := &recorder{}
	_, err := RunHeadless(context.Background(), nil, HeadlessConfig{Width: 2, Height: 2, Ticks: 5},
		func(h HAL) (StepFunc, error) {
			rec.h = h
			return rec.step, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.steps)

	script, err := ParseScript("esc,20")
	require.NoError(t, err)
	rec = &recorder{}
	_, err = RunHeadless(context.Background(), nil, HeadlessConfig{Width: 2, Height: 2, Script: script},
		func(h HAL) (StepFunc, error) {
			rec.h = h
			return rec.step, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.steps)
}

func TestRunHeadlessErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := RunHeadless(context.Background(), nil, HeadlessConfig{Width: 1, Height: 1, Ticks: 3},
		func(h HAL) (StepFunc, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	_, err = RunHeadless(context.Background(), nil, HeadlessConfig{Width: 1, Height: 1, Ticks: 3},
		func(h HAL) (StepFunc, error) {
			return func() error { return boom }, nil
		})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunHeadless(ctx, nil, HeadlessConfig{Width: 1, Height: 1, Hz: 1000},
		func(h HAL) (StepFunc, error) { return nil, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
