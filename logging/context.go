package logging

import "log/slog"

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("bplus")
//	log.Info("store opened", "path", path)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithError creates a logger carrying err as a structured field.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
