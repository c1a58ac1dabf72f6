// Package logger provides structured logging helpers built on log/slog.
//
// New builds a *slog.Logger from functional options; the attribute helpers
// return an empty slog.Attr for zero inputs, so calls like
// log.Warn("resolution failed", logger.Error(err)) need no nil checks.
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug), logger.WithJSONFormatter())
//	log.Info("session resolved", logger.Component("session"), logger.Epoch(3))
package logger
