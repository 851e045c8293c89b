package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines an interface for logging messages.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, fields ...zap.Field)
	// Info logs a message at InfoLevel.
	Info(msg string, fields ...zap.Field)
	// Warn logs a message at WarnLevel.
	Warn(msg string, fields ...zap.Field)
	// Error logs a message at ErrorLevel.
	Error(msg string, fields ...zap.Field)
}

var _ Logger = &loggerImpl{}

type loggerImpl struct {
	zapLogger zap.Logger
}

// Debug implements Logger.
func (l *loggerImpl) Debug(msg string, fields ...zap.Field) {
	l.zapLogger.Debug(msg, fields...)
}

// Info implements Logger.
func (l *loggerImpl) Info(msg string, fields ...zap.Field) {
	l.zapLogger.Info(msg, fields...)
}

// Warn implements Logger.
func (l *loggerImpl) Warn(msg string, fields ...zap.Field) {
	l.zapLogger.Warn(msg, fields...)
}

// Error implements Logger.
func (l *loggerImpl) Error(msg string, fields ...zap.Field) {
	l.zapLogger.Error(msg, fields...)
}

// NewLogger creates a new logger.
// If fileName is non-empty, it pipes logs to file and stdout.
// if fileName is empty, it pipes logs only to stdout.
func NewLogger(isProduction bool, fileName string, logLevel string) (Logger, error) {
	var config zap.Config
	if isProduction {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if fileName != "" {
		config.OutputPaths = append(config.OutputPaths, fileName)
		config.ErrorOutputPaths = append(config.ErrorOutputPaths, fileName)
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &loggerImpl{
		zapLogger: *zapLogger,
	}, nil
}
