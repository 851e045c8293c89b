package log

import "go.uber.org/zap"

var _ Logger = &NoOpLogger{}

// NoOpLogger is a logger that does nothing. Useful in tests.
type NoOpLogger struct{}

// Debug implements Logger.
func (*NoOpLogger) Debug(msg string, fields ...zap.Field) {}

// Info implements Logger.
func (*NoOpLogger) Info(msg string, fields ...zap.Field) {}

// Warn implements Logger.
func (*NoOpLogger) Warn(msg string, fields ...zap.Field) {}

// Error implements Logger.
func (*NoOpLogger) Error(msg string, fields ...zap.Field) {}
