package logger

import (
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger implements gocron.Logger on top of slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger that writes through log.
//
//nolint:ireturn // gocron.WithLogger takes the interface
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gocronLogger{log: log.With("source", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l *gocronLogger) Error(msg string, args ...any) {
	l.log.Error(msg, args...)
}

func (l *gocronLogger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l *gocronLogger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}
