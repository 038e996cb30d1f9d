// Package applog builds the application logger and adapts it to the host
// framework's logging interface.
package applog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console zap logger at the given level ("debug", "info",
// "warn", "error"). An empty level defaults to info.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, nil
}

// WailsAdapter routes the Wails framework's log output through zap so the
// host and the application share one sink.
type WailsAdapter struct {
	log *zap.SugaredLogger
}

// NewWailsAdapter wraps logger for use as a Wails logger.
func NewWailsAdapter(logger *zap.Logger) *WailsAdapter {
	return &WailsAdapter{log: logger.Named("wails").Sugar()}
}

func (a *WailsAdapter) Print(message string)   { a.log.Info(message) }
func (a *WailsAdapter) Trace(message string)   { a.log.Debug(message) }
func (a *WailsAdapter) Debug(message string)   { a.log.Debug(message) }
func (a *WailsAdapter) Info(message string)    { a.log.Info(message) }
func (a *WailsAdapter) Warning(message string) { a.log.Warn(message) }
func (a *WailsAdapter) Error(message string)   { a.log.Error(message) }
func (a *WailsAdapter) Fatal(message string)   { a.log.Fatal(message) }

// Forward logs a line captured from the webview console at the requested
// level. Unknown levels fall back to info.
func Forward(logger *zap.Logger, level, message string) {
	l := logger.Named("webview")
	switch level {
	case "error":
		l.Error(message)
	case "warn":
		l.Warn(message)
	case "debug", "trace":
		l.Debug(message)
	default:
		l.Info(message)
	}
}
