package logging

import (
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger *slog.Logger
	closer func() error
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger instance. An empty logDir keeps
// logging on the console only.
func InitLogger(level string, logDir string) {
	logger, closer := SetupLogger(parseLogLevel(level), logDir)
	DefaultLoggingService = &LoggingService{
		Logger: logger,
		closer: closer,
	}
	slog.SetDefault(logger)
}

// Close flushes and closes the log file, if one was opened
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.closer == nil {
		return nil
	}
	return DefaultLoggingService.closer()
}

// Logger returns the global logger, or a console fallback when InitLogger was not called
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallbackLogger(slog.LevelInfo)
	}
	return DefaultLoggingService.Logger
}

func fallbackLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelInfo).Info(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelError).Error(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Error(msg, args...)
}

func Warn(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelWarn).Warn(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelDebug).Debug(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Debug(msg, args...)
}
