package checkout

import "errors"

var (
	// ErrNotAuthenticated is returned when checkout is attempted without a signed-in user.
	ErrNotAuthenticated = errors.New("checkout: login required")
	// ErrUnknownPackage is returned for a package id outside the catalog.
	ErrUnknownPackage = errors.New("checkout: unknown package")
	// ErrCheckoutInitFailed wraps a failed checkout session request. Safe to retry.
	ErrCheckoutInitFailed = errors.New("checkout: failed to start checkout")
	// ErrInProgress is returned while another checkout request is pending.
	ErrInProgress = errors.New("checkout: checkout already in progress")
)
