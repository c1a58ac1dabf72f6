package session

import "errors"

var (
	// ErrNoStore is returned by New without a token store.
	ErrNoStore = errors.New("session: token store is required")
	// ErrNoBackend is returned by New without a backend.
	ErrNoBackend = errors.New("session: backend is required")
	// ErrLoginFailed wraps a rejected or failed login call.
	ErrLoginFailed = errors.New("session: login failed")
	// ErrRegisterFailed wraps a rejected or failed registration call.
	ErrRegisterFailed = errors.New("session: registration failed")
	// ErrResolveFailed is returned by Login when the new token could not be resolved to a user.
	ErrResolveFailed = errors.New("session: could not resolve current user")
	// ErrSuperseded is returned by Login when a logout or newer login won the race.
	ErrSuperseded = errors.New("session: superseded by a newer session change")
	// ErrPersistToken is returned when the token store rejects a write.
	ErrPersistToken = errors.New("session: failed to persist token")
)
