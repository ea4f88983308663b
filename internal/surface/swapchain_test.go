package surface

import (
	"context"
	"errors"
	"testing"
	"time"

	"lifeview/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquirePresentScanout(t *testing.T) {
	s := New(8, 4, render.RGBA8Srgb, 3)
	assert.Nil(t, s.Scanout())

	target, err := s.Acquire(context.Background())
	require.NoError(t, err)
	w, h := target.Size()
	assert.Equal(t, [2]int{8, 4}, [2]int{w, h})
	assert.Equal(t, render.RGBA8Srgb, target.Format)

	target.Image.Pix[0] = 9
	require.NoError(t, s.Present(target, true))
	assert.Equal(t, 1, s.Pending())

	shown := s.Scanout()
	require.NotNil(t, shown)
	assert.Equal(t, byte(9), shown.Pix[0])
	assert.Same(t, shown, s.Scanout(), "keeps showing the last frame")
}

func TestTargetsAreNeverReused(t *testing.T) {
	s := New(2, 2, render.RGBA8Unorm, 2)
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		target, err := s.Acquire(context.Background())
		require.NoError(t, err)
		require.False(t, seen[target.ID.String()])
		seen[target.ID.String()] = true
		require.NoError(t, s.Present(target, false))
		assert.ErrorIs(t, s.Present(target, false), ErrStaleTarget)
		assert.ErrorIs(t, s.Discard(target), ErrStaleTarget)
		s.Scanout()
	}
}

func TestResizeFailsOnceThenRecreates(t *testing.T) {
	s := New(4, 4, render.RGBA8Unorm, 2)
	old, err := s.Acquire(context.Background())
	require.NoError(t, err)

	s.Resize(6, 3)
	_, err = s.Acquire(context.Background())
	var acqErr *AcquireError
	require.ErrorAs(t, err, &acqErr)
	assert.Equal(t, OutOfDate, acqErr.Reason)
	assert.ErrorIs(t, err, &AcquireError{Reason: OutOfDate})

	assert.ErrorIs(t, s.Present(old, true), ErrStaleTarget)

	fresh, err := s.Acquire(context.Background())
	require.NoError(t, err)
	w, h := fresh.Size()
	assert.Equal(t, [2]int{6, 3}, [2]int{w, h})
}

func TestLostSurface(t *testing.T) {
	s := New(2, 2, render.RGBA8Unorm, 2)
	s.Lose()
	_, err := s.Acquire(context.Background())
	assert.ErrorIs(t, err, &AcquireError{Reason: Lost})
	s.Recover()
	_, err = s.Acquire(context.Background())
	assert.NoError(t, err)
}

func TestAcquireTimesOutWhenAllInFlight(t *testing.T) {
	s := New(2, 2, render.RGBA8Unorm, 2)
	s.timeout = 10 * time.Millisecond
	for i := 0; i < 2; i++ {
		_, err := s.Acquire(context.Background())
		require.NoError(t, err)
	}
	_, err := s.Acquire(context.Background())
	assert.ErrorIs(t, err, &AcquireError{Reason: Timeout})
}

func TestAcquireWaitsForScanout(t *testing.T) {
	s := New(2, 2, render.RGBA8Unorm, 2)
	s.timeout = time.Second
	a, err := s.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Present(a, true))
	b, err := s.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Present(b, true))

	go func() {
		time.Sleep(5 * time.Millisecond)
		s.Scanout() // a displayed
		s.Scanout() // b displayed, a freed
	}()
	c, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, a.Image, c.Image)
}

func TestAcquireHonoursContext(t *testing.T) {
	s := New(2, 2, render.RGBA8Unorm, 2)
	s.timeout = time.Second
	for i := 0; i < 2; i++ {
		_, err := s.Acquire(context.Background())
		require.NoError(t, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Acquire(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestImmediatePresentDropsUnshownFrames(t *testing.T) {
	s := New(1, 1, render.RGBA8Unorm, 3)
	for i := byte(1); i <= 2; i++ {
		target, err := s.Acquire(context.Background())
		require.NoError(t, err)
		target.Image.Pix[0] = i
		require.NoError(t, s.Present(target, false))
	}
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, byte(2), s.Scanout().Pix[0])
}

func TestVsyncPresentKeepsOrder(t *testing.T) {
	s := New(1, 1, render.RGBA8Unorm, 3)
	for i := byte(1); i <= 2; i++ {
		target, err := s.Acquire(context.Background())
		require.NoError(t, err)
		target.Image.Pix[0] = i
		require.NoError(t, s.Present(target, true))
	}
	assert.Equal(t, byte(1), s.Scanout().Pix[0])
	assert.Equal(t, byte(2), s.Scanout().Pix[0])
}

func TestDiscardFreesImage(t *testing.T) {
	s := New(1, 1, render.RGBA8Unorm, 2)
	s.timeout = 10 * time.Millisecond
	a, err := s.Acquire(context.Background())
	require.NoError(t, err)
	_, err = s.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Discard(a))
	c, err := s.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, a.Image, c.Image)
}
