package player

import (
	"math"
	"sync"
)

// fakeEngine is a scriptable engine for tests: property values are set
// directly and events are emitted by hand, mirroring how a media element
// confirms commands asynchronously.
type fakeEngine struct {
	mu sync.Mutex

	paused      bool
	currentTime float64
	duration    float64
	volume      float64
	muted       bool
	rate        float64
	fullscreen  bool
	pip         bool
	buffered    []TimeRange

	fullscreenErr error
	pipErr        error

	events chan EventKind
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		paused:   true,
		duration: math.NaN(),
		volume:   1,
		rate:     1,
		events:   make(chan EventKind, 64),
	}
}

func (f *fakeEngine) emit(kind EventKind) {
	f.events <- kind
}

func (f *fakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = false
	return nil
}

func (f *fakeEngine) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = true
}

func (f *fakeEngine) Paused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func (f *fakeEngine) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentTime
}

func (f *fakeEngine) SetCurrentTime(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentTime = seconds
}

func (f *fakeEngine) Duration() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeEngine) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakeEngine) SetVolume(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
}

func (f *fakeEngine) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted
}

func (f *fakeEngine) SetMuted(muted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted = muted
}

func (f *fakeEngine) PlaybackRate() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rate
}

func (f *fakeEngine) SetPlaybackRate(rate float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
}

func (f *fakeEngine) Buffered() []TimeRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buffered
}

func (f *fakeEngine) IsFullscreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen
}

func (f *fakeEngine) RequestFullscreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fullscreenErr != nil {
		return f.fullscreenErr
	}
	f.fullscreen = true
	return nil
}

func (f *fakeEngine) ExitFullscreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fullscreen = false
	return nil
}

func (f *fakeEngine) InPictureInPicture() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pip
}

func (f *fakeEngine) RequestPictureInPicture() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pipErr != nil {
		return f.pipErr
	}
	f.pip = true
	return nil
}

func (f *fakeEngine) ExitPictureInPicture() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pip = false
	return nil
}

func (f *fakeEngine) Events() <-chan EventKind {
	return f.events
}
