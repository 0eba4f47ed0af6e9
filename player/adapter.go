package player

import (
	"errors"
	"math"
	"sync"
)

// PlaybackState is the reconciled snapshot of the bound engine. Confirmed
// fields are written only from engine events (plus the one-time sample at
// bind); the Requested* pairs hold commanded seek/volume values that the
// engine has not confirmed yet.
type PlaybackState struct {
	Playing    bool
	Loading    bool
	Muted      bool
	Fullscreen bool

	CurrentTime float64
	Duration    float64
	Volume      float64
	Rate        float64

	Buffered []TimeRange

	RequestedTime   float64
	SeekPending     bool
	RequestedVolume float64
	VolumePending   bool
}

// EffectiveTime is what the UI renders: the commanded seek target until a
// timeupdate confirms it, the confirmed position otherwise.
func (s PlaybackState) EffectiveTime() float64 {
	if s.SeekPending {
		return s.RequestedTime
	}
	return s.CurrentTime
}

// EffectiveVolume mirrors EffectiveTime for the volume slider.
func (s PlaybackState) EffectiveVolume() float64 {
	if s.VolumePending {
		return s.RequestedVolume
	}
	return s.Volume
}

var (
	ErrAlreadyBound = errors.New("adapter already bound; use a fresh adapter to rebind")
	ErrNotBound     = errors.New("no engine bound")
)

// Adapter owns the playback state for exactly one engine instance per
// adapter lifetime. Bind samples the engine once, then a single goroutine
// consumes the engine's event channel until Close or channel close, so
// state updates keep the engine's emission order.
type Adapter struct {
	mu    sync.RWMutex
	eng   Engine
	state PlaybackState

	onEnded      func()
	onTimeUpdate func(seconds float64)

	bound      bool
	closed     bool
	endedFired bool
	closeOnce  sync.Once
	done       chan struct{}
}

type AdapterOption func(*Adapter)

// WithOnEnded registers a callback fired exactly once per playback
// completion. A subsequent play re-arms it.
func WithOnEnded(fn func()) AdapterOption {
	return func(a *Adapter) { a.onEnded = fn }
}

// WithOnTimeUpdate registers a callback invoked on every confirmed
// position change.
func WithOnTimeUpdate(fn func(seconds float64)) AdapterOption {
	return func(a *Adapter) { a.onTimeUpdate = fn }
}

func NewAdapter(opts ...AdapterOption) *Adapter {
	a := &Adapter{done: make(chan struct{})}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Bind attaches the adapter to an engine, samples every property so a
// mid-playback bind is observed immediately, and starts the event loop.
// An adapter binds at most once; rebinding requires a fresh adapter.
func (a *Adapter) Bind(eng Engine) error {
	a.mu.Lock()
	if a.bound {
		a.mu.Unlock()
		return ErrAlreadyBound
	}
	a.bound = true
	a.eng = eng
	a.state = PlaybackState{
		Playing:     !eng.Paused(),
		CurrentTime: eng.CurrentTime(),
		Duration:    eng.Duration(),
		Volume:      eng.Volume(),
		Muted:       eng.Muted(),
		Rate:        eng.PlaybackRate(),
		Fullscreen:  eng.IsFullscreen(),
		Buffered:    normalizeRanges(eng.Buffered()),
	}
	a.mu.Unlock()

	go a.loop(eng.Events())
	return nil
}

// Close detaches from the event stream. It is safe on every teardown
// path and idempotent; the adapter cannot be rebound afterwards.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.bound = true // a closed adapter never rebinds
		a.closed = true
		a.mu.Unlock()
		close(a.done)
	})
}

// Engine returns the bound engine, or nil before Bind.
func (a *Adapter) Engine() Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.eng
}

// State returns a copy of the current snapshot.
func (a *Adapter) State() PlaybackState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	st := a.state
	st.Buffered = append([]TimeRange(nil), a.state.Buffered...)
	return st
}

// noteSeek records a commanded seek awaiting engine confirmation.
func (a *Adapter) noteSeek(seconds float64) {
	a.mu.Lock()
	a.state.RequestedTime = seconds
	a.state.SeekPending = true
	a.mu.Unlock()
}

// noteVolume records a commanded volume awaiting engine confirmation.
func (a *Adapter) noteVolume(v float64) {
	a.mu.Lock()
	a.state.RequestedVolume = v
	a.state.VolumePending = true
	a.mu.Unlock()
}

func (a *Adapter) loop(events <-chan EventKind) {
	for {
		select {
		case <-a.done:
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			a.apply(evt)
		}
	}
}

// apply translates one event into a state update by re-reading the
// engine's properties. Callbacks run after the lock is released so they
// may call State.
func (a *Adapter) apply(evt EventKind) {
	var fireEnded bool
	var fireTime bool
	var confirmedTime float64

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	eng := a.eng
	switch evt {
	case EventPlay:
		a.state.Playing = true
		a.state.Loading = false
		a.endedFired = false
	case EventPause:
		a.state.Playing = false
	case EventTimeUpdate:
		confirmedTime = clampTime(eng.CurrentTime(), a.state.Duration)
		a.state.CurrentTime = confirmedTime
		a.state.SeekPending = false
		fireTime = a.onTimeUpdate != nil
	case EventDurationChange:
		a.state.Duration = eng.Duration()
		a.state.CurrentTime = clampTime(a.state.CurrentTime, a.state.Duration)
	case EventVolumeChange:
		a.state.Volume = eng.Volume()
		a.state.Muted = eng.Muted()
		a.state.VolumePending = false
	case EventRateChange:
		a.state.Rate = eng.PlaybackRate()
	case EventWaiting:
		a.state.Loading = true
	case EventCanPlay:
		a.state.Loading = false
	case EventProgress:
		a.state.Buffered = normalizeRanges(eng.Buffered())
	case EventEnded:
		a.state.Playing = false
		if !a.endedFired {
			a.endedFired = true
			fireEnded = a.onEnded != nil
		}
	case EventFullscreenChange:
		a.state.Fullscreen = eng.IsFullscreen()
	}
	a.mu.Unlock()

	if fireTime {
		a.onTimeUpdate(confirmedTime)
	}
	if fireEnded {
		a.onEnded()
	}
}

// clampTime enforces currentTime <= duration when the duration is known.
func clampTime(t, duration float64) float64 {
	if t < 0 {
		return 0
	}
	if duration > 0 && !math.IsNaN(duration) && !math.IsInf(duration, 0) && t > duration {
		return duration
	}
	return t
}

// normalizeRanges tolerates a nil or empty range set from the engine.
func normalizeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return []TimeRange{}
	}
	return ranges
}
