// Package player contains the playback core: an Engine contract over the
// underlying media element, an Adapter that reconciles the engine's event
// stream into one state snapshot, a Controller exposing intent-level
// transport operations, and a Router mapping keyboard/pointer input onto
// the Controller.
package player

// EventKind tags an engine-emitted event. The engine delivers events in
// emission order on a single channel; the Adapter re-reads engine
// properties when applying each kind, so events carry no payload.
type EventKind string

const (
	EventPlay             EventKind = "play"
	EventPause            EventKind = "pause"
	EventTimeUpdate       EventKind = "timeupdate"
	EventDurationChange   EventKind = "durationchange"
	EventVolumeChange     EventKind = "volumechange"
	EventRateChange       EventKind = "ratechange"
	EventWaiting          EventKind = "waiting"
	EventCanPlay          EventKind = "canplay"
	EventProgress         EventKind = "progress"
	EventEnded            EventKind = "ended"
	EventFullscreenChange EventKind = "fullscreenchange"
)

// TimeRange is one buffered interval, start <= end, in seconds.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Engine is the playback engine contract. Commands return immediately;
// confirmation arrives as a later event on Events(). Mode requests
// (fullscreen, picture-in-picture) may be denied by the runtime, which
// surfaces as an error from the request call.
type Engine interface {
	Play() error
	Pause()
	Paused() bool

	CurrentTime() float64
	SetCurrentTime(seconds float64)
	Duration() float64

	Volume() float64
	SetVolume(v float64)
	Muted() bool
	SetMuted(muted bool)

	PlaybackRate() float64
	SetPlaybackRate(rate float64)

	Buffered() []TimeRange

	IsFullscreen() bool
	RequestFullscreen() error
	ExitFullscreen() error

	InPictureInPicture() bool
	RequestPictureInPicture() error
	ExitPictureInPicture() error

	// Events delivers engine events in emission order. The channel is
	// closed when the engine instance is disposed.
	Events() <-chan EventKind
}
