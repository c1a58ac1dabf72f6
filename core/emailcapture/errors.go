package emailcapture

import "errors"

var (
	// ErrCaptureFailed wraps a failed capture request.
	ErrCaptureFailed = errors.New("emailcapture: capture failed")
	// ErrInProgress is returned while a submission is pending.
	ErrInProgress = errors.New("emailcapture: submission in progress")
	// ErrClosed is returned by Submit once the prompt has closed.
	ErrClosed = errors.New("emailcapture: prompt closed")
)
