package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/neurogrid/storefront/core/logger"
)

// ErrNotReady is matched by Report.Err when any check failed.
var ErrNotReady = errors.New("health: not ready")

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Named builds a Check.
func Named(name string, fn func(context.Context) error) Check {
	return Check{Name: name, Fn: fn}
}

// Result is the outcome of one check.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Report holds results in check order.
type Report []Result

// Ready reports whether every check passed.
func (r Report) Ready() bool {
	for _, res := range r {
		if res.Err != nil {
			return false
		}
	}
	return true
}

// Err joins the failures under ErrNotReady, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrNotReady}, errs...)...)
}

// Readiness runs every check in sequence. Unlike a fail-fast probe it
// always runs all checks so the report is complete.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) Report {
	report := make(Report, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		err := c.Fn(ctx)
		if err != nil {
			log.WarnContext(ctx, "readiness check failed",
				logger.Component("health"),
				slog.String("check", c.Name),
				logger.Error(err),
			)
		}
		report = append(report, Result{Name: c.Name, Err: err, Elapsed: time.Since(start)})
	}
	return report
}
