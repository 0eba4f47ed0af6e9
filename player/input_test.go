package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundRouter(t *testing.T, eng *fakeEngine, opts ...RouterOption) (*Router, *Adapter) {
	t.Helper()
	a := NewAdapter()
	t.Cleanup(a.Close)
	require.NoError(t, a.Bind(eng))
	r := NewRouter(NewController(a), a, opts...)
	t.Cleanup(r.Stop)
	return r, a
}

func TestKeyTable(t *testing.T) {
	newEngine := func() *fakeEngine {
		eng := newFakeEngine()
		eng.currentTime = 50
		eng.duration = 100
		eng.volume = 0.5
		return eng
	}

	t.Run("space toggles playback", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeySpace, false))
		assert.False(t, eng.Paused())
	})

	t.Run("k toggles playback", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyK, false))
		assert.False(t, eng.Paused())
	})

	t.Run("arrow left seeks back 10s", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowLeft, false))
		assert.Equal(t, 40.0, eng.CurrentTime())
	})

	t.Run("arrow right seeks forward 10s", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowRight, false))
		assert.Equal(t, 60.0, eng.CurrentTime())
	})

	t.Run("seek stays clamped near the edges", func(t *testing.T) {
		eng := newEngine()
		eng.currentTime = 3
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowLeft, false))
		assert.Equal(t, 0.0, eng.CurrentTime())
	})

	t.Run("arrow up raises volume by 0.1", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowUp, false))
		assert.InDelta(t, 0.6, eng.Volume(), 1e-9)
	})

	t.Run("arrow down lowers volume by 0.1", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowDown, false))
		assert.InDelta(t, 0.4, eng.Volume(), 1e-9)
	})

	t.Run("volume stays clamped at the top", func(t *testing.T) {
		eng := newEngine()
		eng.volume = 0.95
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyArrowUp, false))
		assert.Equal(t, 1.0, eng.Volume())
	})

	t.Run("m toggles mute", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyM, false))
		assert.True(t, eng.Muted())
	})

	t.Run("f toggles fullscreen", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyF, false))
		assert.True(t, eng.IsFullscreen())
	})

	t.Run("p toggles picture-in-picture", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.True(t, r.HandleKey(KeyP, false))
		assert.True(t, eng.InPictureInPicture())
	})

	t.Run("unknown key is not handled", func(t *testing.T) {
		eng := newEngine()
		r, _ := boundRouter(t, eng)
		assert.False(t, r.HandleKey("x", false))
	})
}

func TestKeysSuppressedForEditableTargets(t *testing.T) {
	eng := newFakeEngine()
	r, _ := boundRouter(t, eng)

	assert.False(t, r.HandleKey(KeySpace, true))
	assert.True(t, eng.Paused(), "typing a space must not start playback")

	assert.False(t, r.HandleKey(KeyM, true))
	assert.False(t, eng.Muted())
}

func TestControlsHideAfterInactivityWhilePlaying(t *testing.T) {
	eng := newFakeEngine()
	eng.paused = false
	r, _ := boundRouter(t, eng, WithHideDelay(15*time.Millisecond))

	r.PointerMoved()
	assert.True(t, r.ControlsVisible())

	require.Eventually(t, func() bool { return !r.ControlsVisible() }, waitFor, tick)
}

func TestControlsStayVisibleWhilePaused(t *testing.T) {
	eng := newFakeEngine()
	r, _ := boundRouter(t, eng, WithHideDelay(15*time.Millisecond))

	r.PointerMoved()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, r.ControlsVisible())
}

func TestPointerMovementRevealsControls(t *testing.T) {
	eng := newFakeEngine()
	eng.paused = false
	r, _ := boundRouter(t, eng, WithHideDelay(15*time.Millisecond))

	r.PointerMoved()
	require.Eventually(t, func() bool { return !r.ControlsVisible() }, waitFor, tick)

	r.PointerMoved()
	assert.True(t, r.ControlsVisible())
}

func TestPointerLeave(t *testing.T) {
	eng := newFakeEngine()
	eng.paused = false
	r, _ := boundRouter(t, eng)

	r.PointerMoved()
	r.PointerLeft()
	assert.False(t, r.ControlsVisible(), "leaving while playing hides controls")

	eng.Pause()
	eng.emit(EventPause)
	require.Eventually(t, func() bool {
		r.PointerLeft()
		return r.ControlsVisible()
	}, waitFor, tick)
}
