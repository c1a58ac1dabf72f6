package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Action creates an attribute for action names.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result creates an attribute for operation results (success/failure/stale).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Status creates an attribute for session status.
func Status(status string) slog.Attr {
	return slog.String("status", status)
}

// Epoch creates an attribute for the resolution epoch a result belongs to.
func Epoch(n uint64) slog.Attr {
	return slog.Uint64("epoch", n)
}

// UserID creates an attribute for user identifiers. Empty ids are dropped.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// PackageID creates an attribute for catalog package identifiers.
func PackageID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("package_id", id)
}

// Method creates an attribute for HTTP methods.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// RequestID creates an attribute for request correlation ids.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// StatusCode creates an attribute for HTTP status codes.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Elapsed calculates the duration since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
