package player

import (
	"math"
	"sync"
)

// QualityAuto is the default quality preference. Quality selection is
// advisory only: adaptive bitrate switching is owned by the stream
// delivery, so the preference has no guaranteed effect on playback.
const QualityAuto = "auto"

// Controller exposes intent-level transport operations. Each operation is
// a thin validated command against the bound engine; the Adapter's next
// event cycle is the source of confirmed state, except seek and volume,
// which also record an optimistic local value for UI responsiveness.
// Every operation is a no-op while no engine is bound.
type Controller struct {
	adapter *Adapter

	mu      sync.RWMutex
	quality string
}

func NewController(adapter *Adapter) *Controller {
	return &Controller{adapter: adapter, quality: QualityAuto}
}

func (c *Controller) engine() Engine {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Engine()
}

// PlayPause toggles playback based on the engine's current paused state.
func (c *Controller) PlayPause() {
	eng := c.engine()
	if eng == nil {
		return
	}
	if eng.Paused() {
		_ = eng.Play()
	} else {
		eng.Pause()
	}
}

// Seek clamps the target to [0, duration] and commands the engine. With
// an unknown or non-finite duration only the lower bound is enforced.
func (c *Controller) Seek(seconds float64) {
	eng := c.engine()
	if eng == nil {
		return
	}

	target := math.Max(0, seconds)
	duration := eng.Duration()
	if duration > 0 && !math.IsNaN(duration) && !math.IsInf(duration, 0) {
		target = math.Min(target, duration)
	}

	eng.SetCurrentTime(target)
	c.adapter.noteSeek(target)
}

// SetVolume clamps to [0,1]. Raising the volume above zero on a muted
// engine also unmutes it; that is the intended UX rule, not a side
// effect.
func (c *Controller) SetVolume(v float64) {
	eng := c.engine()
	if eng == nil {
		return
	}

	clamped := math.Max(0, math.Min(1, v))
	eng.SetVolume(clamped)
	c.adapter.noteVolume(clamped)
	if clamped > 0 && eng.Muted() {
		eng.SetMuted(false)
	}
}

// ToggleMute flips the engine mute flag.
func (c *Controller) ToggleMute() {
	eng := c.engine()
	if eng == nil {
		return
	}
	eng.SetMuted(!eng.Muted())
}

// SetPlaybackRate forwards the rate verbatim; any positive rate the
// engine supports is accepted.
func (c *Controller) SetPlaybackRate(rate float64) {
	eng := c.engine()
	if eng == nil {
		return
	}
	eng.SetPlaybackRate(rate)
}

// SetQuality records a local preference only; see QualityAuto.
func (c *Controller) SetQuality(quality string) {
	c.mu.Lock()
	c.quality = quality
	c.mu.Unlock()
}

func (c *Controller) Quality() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quality
}

// ToggleFullscreen requests or exits fullscreen. A runtime denial
// propagates to the caller.
func (c *Controller) ToggleFullscreen() error {
	eng := c.engine()
	if eng == nil {
		return ErrNotBound
	}
	if eng.IsFullscreen() {
		return eng.ExitFullscreen()
	}
	return eng.RequestFullscreen()
}

// TogglePictureInPicture requests or exits picture-in-picture. A runtime
// denial propagates to the caller.
func (c *Controller) TogglePictureInPicture() error {
	eng := c.engine()
	if eng == nil {
		return ErrNotBound
	}
	if eng.InPictureInPicture() {
		return eng.ExitPictureInPicture()
	}
	return eng.RequestPictureInPicture()
}
