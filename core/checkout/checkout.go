package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/core/session"
	"github.com/neurogrid/storefront/core/validator"
)

// SessionReader exposes the current session state.
type SessionReader interface {
	Snapshot() session.Snapshot
}

// Backend creates checkout sessions on the server.
type Backend interface {
	CreateCheckoutSession(ctx context.Context, req apiclient.CheckoutRequest) (apiclient.CheckoutSession, error)
}

// Redirect is where the visitor should be sent to pay.
type Redirect struct {
	URL       string
	SessionID string
	Item      Package
}

// Initiator starts checkouts.
type Initiator struct {
	session  SessionReader
	backend  Backend
	logger   *slog.Logger
	inflight atomic.Bool
}

// Option configures an Initiator.
type Option func(*Initiator)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Initiator) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Initiator.
func New(s SessionReader, b Backend, opts ...Option) *Initiator {
	i := &Initiator{
		session: s,
		backend: b,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With(logger.Component("checkout"))
	return i
}

// StartCheckout requests a checkout session for a lab package.
func (i *Initiator) StartCheckout(ctx context.Context, packageID string) (Redirect, error) {
	if !i.session.Snapshot().IsAuthenticated() {
		return Redirect{}, ErrNotAuthenticated
	}
	pkg, ok := Lookup(packageID)
	if !ok {
		return Redirect{}, ErrUnknownPackage
	}
	return i.start(ctx, pkg, apiclient.CheckoutRequest{
		PackageID:   pkg.ID,
		PaymentType: apiclient.PaymentTypeCourse,
		ItemID:      pkg.ID,
	})
}

// StartConsultation requests a checkout session for a consultation.
func (i *Initiator) StartConsultation(ctx context.Context) (Redirect, error) {
	if !i.session.Snapshot().IsAuthenticated() {
		return Redirect{}, ErrNotAuthenticated
	}
	return i.start(ctx, consultation, apiclient.CheckoutRequest{
		PaymentType: apiclient.PaymentTypeConsultation,
		ItemID:      consultation.ID,
	})
}

// InProgress reports whether a checkout request is pending.
func (i *Initiator) InProgress() bool {
	return i.inflight.Load()
}

func (i *Initiator) start(ctx context.Context, item Package, req apiclient.CheckoutRequest) (Redirect, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return Redirect{}, err
	}
	if !i.inflight.CompareAndSwap(false, true) {
		return Redirect{}, ErrInProgress
	}
	defer i.inflight.Store(false)

	log := i.logger.With(logger.PackageID(item.ID))
	cs, err := i.backend.CreateCheckoutSession(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "checkout session failed", logger.Error(err))
		return Redirect{}, errors.Join(ErrCheckoutInitFailed, err)
	}

	log.InfoContext(ctx, "checkout session created")
	return Redirect{URL: cs.URL, SessionID: cs.SessionID, Item: item}, nil
}
