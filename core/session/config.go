package session

import "log/slog"

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLoginAfterRegister makes Register log the new account in on success.
// Disabled by default: registration leaves the session untouched.
func WithLoginAfterRegister(enabled bool) Option {
	return func(m *Manager) {
		m.loginAfterRegister = enabled
	}
}
