package player

import (
	"sync"
	"time"
)

// Key names delivered by the UI layer, matching DOM KeyboardEvent.key.
const (
	KeySpace      = " "
	KeyK          = "k"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyM          = "m"
	KeyF          = "f"
	KeyP          = "p"
)

const (
	seekStep    = 10.0
	volumeStep  = 0.1
	defaultHide = 3 * time.Second
)

// Router maps device input onto Controller operations and owns the
// transport-controls visibility state. Keys are ignored entirely while
// focus sits in a text-entry element so playback shortcuts never hijack
// typing.
type Router struct {
	ctrl    *Controller
	adapter *Adapter

	mu        sync.Mutex
	visible   bool
	hideDelay time.Duration
	hideTimer *time.Timer
}

type RouterOption func(*Router)

// WithHideDelay overrides the 3 second inactivity delay.
func WithHideDelay(d time.Duration) RouterOption {
	return func(r *Router) { r.hideDelay = d }
}

func NewRouter(ctrl *Controller, adapter *Adapter, opts ...RouterOption) *Router {
	r := &Router{
		ctrl:      ctrl,
		adapter:   adapter,
		visible:   true,
		hideDelay: defaultHide,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleKey routes one key press. editableTarget reports whether focus is
// inside a text input; such presses are never handled. The return value
// tells the caller whether to suppress the event's default action.
func (r *Router) HandleKey(key string, editableTarget bool) bool {
	if editableTarget {
		return false
	}

	st := r.adapter.State()
	switch key {
	case KeySpace, KeyK:
		r.ctrl.PlayPause()
	case KeyArrowLeft:
		r.ctrl.Seek(st.EffectiveTime() - seekStep)
	case KeyArrowRight:
		r.ctrl.Seek(st.EffectiveTime() + seekStep)
	case KeyArrowUp:
		r.ctrl.SetVolume(st.EffectiveVolume() + volumeStep)
	case KeyArrowDown:
		r.ctrl.SetVolume(st.EffectiveVolume() - volumeStep)
	case KeyM:
		r.ctrl.ToggleMute()
	case KeyF:
		_ = r.ctrl.ToggleFullscreen()
	case KeyP:
		_ = r.ctrl.TogglePictureInPicture()
	default:
		return false
	}
	return true
}

// PointerMoved shows the controls and restarts the inactivity timer. The
// timer hides them only if playback is still running when it fires.
func (r *Router) PointerMoved() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visible = true
	if r.hideTimer != nil {
		r.hideTimer.Stop()
	}
	r.hideTimer = time.AfterFunc(r.hideDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.adapter.State().Playing {
			r.visible = false
		}
	})
}

// PointerLeft hides the controls immediately while playing; while paused
// they stay visible.
func (r *Router) PointerLeft() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.adapter.State().Playing {
		r.visible = false
	} else {
		r.visible = true
	}
}

func (r *Router) ControlsVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Stop cancels any pending hide timer; call on teardown.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideTimer != nil {
		r.hideTimer.Stop()
		r.hideTimer = nil
	}
}
