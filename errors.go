package storefront

import (
	"errors"
	"strings"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/checkout"
	"github.com/neurogrid/storefront/core/emailcapture"
	"github.com/neurogrid/storefront/core/session"
	"github.com/neurogrid/storefront/core/validator"
)

// Error is a user-facing failure with a machine-readable code.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// Predefined user-facing errors.
var (
	ErrValidation      = Error{Code: "VALIDATION", Message: "Please fill in all required fields."}
	ErrUnauthorized    = Error{Code: "UNAUTHORIZED", Message: "Invalid email or password."}
	ErrLoginRequired   = Error{Code: "LOGIN_REQUIRED", Message: "Please log in to purchase a package."}
	ErrUnknownPackage  = Error{Code: "UNKNOWN_PACKAGE", Message: "That package does not exist."}
	ErrCheckout        = Error{Code: "CHECKOUT_FAILED", Message: "Could not start checkout. Please try again."}
	ErrBusy            = Error{Code: "IN_PROGRESS", Message: "Please wait, your request is being processed."}
	ErrCapture         = Error{Code: "CAPTURE_FAILED", Message: emailcapture.RetryMessage}
	ErrUnavailable     = Error{Code: "UNAVAILABLE", Message: "The service is unreachable. Please try again later."}
	ErrSessionExpired  = Error{Code: "SESSION_EXPIRED", Message: "Your session could not be restored. Please log in again."}
	ErrInternal        = Error{Code: "INTERNAL", Message: "Something went wrong. Please try again."}
	ErrInvalidConfig   = errors.New("storefront: invalid configuration")
	ErrTokenStoreSetup = errors.New("storefront: failed to set up token store")
)

// Message maps any error returned by this module to text fit for display.
// Server-provided detail is preferred where the backend sent one.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Classify(err).Message
}

// Classify maps err to a user-facing Error.
func Classify(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, validator.ErrValidation):
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return ErrValidation.WithMessage("Please fill in: " + strings.Join(verrs.Fields(), ", ") + ".")
		}
		return ErrValidation
	case errors.Is(err, checkout.ErrNotAuthenticated):
		return ErrLoginRequired
	case errors.Is(err, checkout.ErrUnknownPackage):
		return ErrUnknownPackage
	case errors.Is(err, checkout.ErrInProgress), errors.Is(err, emailcapture.ErrInProgress):
		return ErrBusy
	case errors.Is(err, emailcapture.ErrCaptureFailed):
		return ErrCapture
	case errors.Is(err, session.ErrResolveFailed), errors.Is(err, session.ErrSuperseded):
		return ErrSessionExpired
	}

	base := ErrInternal
	if errors.Is(err, checkout.ErrCheckoutInitFailed) {
		base = ErrCheckout
	}
	if errors.Is(err, apiclient.ErrUnauthorized) && errors.Is(err, session.ErrLoginFailed) {
		base = ErrUnauthorized
	}
	if msg := apiclient.MessageOf(err); msg != "" {
		return base.WithMessage(msg)
	}
	if errors.Is(err, apiclient.ErrTransport) {
		return ErrUnavailable
	}
	return base
}
