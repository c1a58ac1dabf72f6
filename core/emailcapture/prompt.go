package emailcapture

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/core/validator"
)

// Defaults.
const (
	DefaultSource     = "hero_cta"
	DefaultCloseDelay = 2 * time.Second
	RetryMessage      = "Something went wrong. Please try again."
	SuccessMessage    = "Thanks for subscribing!"
)

// State is the prompt lifecycle state.
type State int

const (
	Open State = iota
	Submitting
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Backend records captured addresses.
type Backend interface {
	CaptureEmail(ctx context.Context, req apiclient.EmailCaptureRequest) (apiclient.EmailCaptureResponse, error)
}

// Result is a successful submission.
type Result struct {
	Message string
}

// Prompt is a single email capture interaction.
type Prompt struct {
	backend    Backend
	source     string
	closeDelay time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	state  State
	timer  *time.Timer
	closed chan struct{}
}

// Option configures a Prompt.
type Option func(*Prompt)

// WithSource sets the source tag sent with each capture.
func WithSource(source string) Option {
	return func(p *Prompt) {
		if source != "" {
			p.source = source
		}
	}
}

// WithCloseDelay sets how long the prompt stays open after a success.
// Zero closes immediately.
func WithCloseDelay(d time.Duration) Option {
	return func(p *Prompt) {
		if d >= 0 {
			p.closeDelay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prompt) {
		if l != nil {
			p.logger = l
		}
	}
}

// New opens a prompt.
func New(b Backend, opts ...Option) *Prompt {
	p := &Prompt{
		backend:    b,
		source:     DefaultSource,
		closeDelay: DefaultCloseDelay,
		logger:     logger.Discard(),
		closed:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logger.Component("emailcapture"))
	return p
}

// State returns the current state.
func (p *Prompt) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Closed is closed when the prompt reaches the Closed state.
func (p *Prompt) Closed() <-chan struct{} {
	return p.closed
}

// Submit sends the address. An empty address fails validation without a
// request. Concurrent calls while Submitting get ErrInProgress.
func (p *Prompt) Submit(ctx context.Context, email string) (Result, error) {
	req := apiclient.EmailCaptureRequest{
		Email:             strings.TrimSpace(email),
		Source:            p.source,
		NewsletterConsent: true,
	}
	if err := validator.ValidateStruct(&req); err != nil {
		return Result{}, err
	}

	p.mu.Lock()
	switch p.state {
	case Submitting:
		p.mu.Unlock()
		return Result{}, ErrInProgress
	case Closed:
		p.mu.Unlock()
		return Result{}, ErrClosed
	}
	p.state = Submitting
	p.mu.Unlock()

	resp, err := p.backend.CaptureEmail(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Closed {
		// Dismissed while the request was in flight.
		return Result{}, ErrClosed
	}
	if err != nil {
		p.state = Open
		p.logger.WarnContext(ctx, "email capture failed", logger.Error(err))
		return Result{}, errors.Join(ErrCaptureFailed, err)
	}

	msg := resp.Message
	if msg == "" {
		msg = SuccessMessage
	}
	p.logger.InfoContext(ctx, "email captured", slog.String("source", p.source))
	p.scheduleCloseLocked()
	return Result{Message: msg}, nil
}

// Dismiss closes the prompt immediately. Safe to call more than once.
func (p *Prompt) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.closeLocked()
}

// scheduleCloseLocked keeps the prompt Submitting until the timer fires so
// the success message stays up and resubmission is refused.
func (p *Prompt) scheduleCloseLocked() {
	if p.closeDelay == 0 {
		p.closeLocked()
		return
	}
	p.timer = time.AfterFunc(p.closeDelay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.closeLocked()
	})
}

func (p *Prompt) closeLocked() {
	if p.state == Closed {
		return
	}
	p.state = Closed
	close(p.closed)
}
