// Package upload is the client half of the upload pipeline: file
// validation, the session state machine driving the UI, and the HTTP
// client that streams the file to the backend with progress reporting.
package upload

import (
	"fmt"
	"strings"
	"sync"
)

// MaxFileSize is the upload ceiling: exactly 2 GiB is accepted, one byte
// over is rejected.
const MaxFileSize = 2 * 1024 * 1024 * 1024

// AcceptedTypes is the allowed MIME set for uploads.
var AcceptedTypes = []string{
	"video/mp4",
	"video/webm",
	"video/ogg",
	"video/quicktime",
	"video/x-msvideo",
}

type Status string

const (
	StatusIdle      Status = "idle"
	StatusValidated Status = "validated"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ValidationError is a user-facing rejection; the upload never starts.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FileInfo describes the selected file.
type FileInfo struct {
	Name     string
	Size     int64
	MIMEType string
}

// ValidateFile rejects disallowed MIME types, files above the size
// ceiling and empty files, each with its own message.
func ValidateFile(fi FileInfo) error {
	if !TypeAllowed(fi.MIMEType) {
		return &ValidationError{
			Message: "Invalid file type. Accepted formats: mp4, webm, ogg, mov, avi",
		}
	}
	if fi.Size > MaxFileSize {
		return &ValidationError{
			Message: fmt.Sprintf("File size exceeds maximum limit of %dGB", MaxFileSize/(1024*1024*1024)),
		}
	}
	if fi.Size == 0 {
		return &ValidationError{Message: "File is empty"}
	}
	return nil
}

func TypeAllowed(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, t := range AcceptedTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}

// Session is the upload state machine:
// idle -> validated -> uploading -> succeeded | failed, with Reset from
// any state. Progress only moves forward while uploading.
type Session struct {
	mu       sync.Mutex
	file     FileInfo
	status   Status
	progress float64
	errMsg   string
}

func NewSession() *Session {
	return &Session{status: StatusIdle}
}

// Select validates a file. On success the session is validated; on
// failure it is failed with the validation message and the file is
// dropped.
func (s *Session) Select(fi FileInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateFile(fi); err != nil {
		s.file = FileInfo{}
		s.status = StatusFailed
		s.errMsg = err.Error()
		s.progress = 0
		return err
	}

	s.file = fi
	s.status = StatusValidated
	s.errMsg = ""
	s.progress = 0
	return nil
}

// Start moves a validated session into uploading.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusValidated {
		return fmt.Errorf("cannot start upload from status %q", s.status)
	}
	s.status = StatusUploading
	s.progress = 0
	return nil
}

// SetProgress records transmission progress. Values are clamped to
// [0,100] and never move backwards; a stale report is dropped.
func (s *Session) SetProgress(percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusUploading {
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent > s.progress {
		s.progress = percent
	}
}

// Succeed completes the session; progress is forced to 100.
func (s *Session) Succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusSucceeded
	s.progress = 100
	s.errMsg = ""
}

// Fail records a transmission or server error.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = StatusFailed
	if err != nil {
		s.errMsg = err.Error()
	}
}

// Reset returns the session to idle from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = FileInfo{}
	s.status = StatusIdle
	s.progress = 0
	s.errMsg = ""
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) File() FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file
}
