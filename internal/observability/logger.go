package observability

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	maxLoggerFieldCapacity int = 4 // Maximum number of context fields to add to logger
)

// Global logger instance - shared across the application.
// Loggers are not stored in context; only the fields are.
//
//nolint:gochecknoglobals // Singleton logger is a standard pattern
var (
	globalLogger *zap.Logger
	loggerMu     sync.RWMutex
)

// LoggerConfig controls the base logger.
type LoggerConfig struct {
	Level       string `env:"LOG_LEVEL"       envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// InitLogger initializes the base logger (called once at startup).
func InitLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg != nil && cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg != nil && cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	SetLogger(logger)

	return logger, nil
}

// SetLogger replaces the base logger. Tests use it to install zap.NewNop
// or an observer core.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	globalLogger = logger
	loggerMu.Unlock()
}

// getBaseLogger returns the global logger instance.
func getBaseLogger() *zap.Logger {
	loggerMu.RLock()
	logger := globalLogger
	loggerMu.RUnlock()

	if logger == nil {
		// Fallback to production logger if not initialized
		logger, _ = zap.NewProduction()
	}

	return logger
}

// FromContext creates a logger with fields extracted from context.
func FromContext(ctx context.Context) *zap.Logger {
	logger := getBaseLogger()

	fields := make([]zap.Field, 0, maxLoggerFieldCapacity)

	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if provider := GetProvider(ctx); provider != "" {
		fields = append(fields, zap.String("provider", provider))
	}

	if model := GetModel(ctx); model != "" {
		fields = append(fields, zap.String("model", model))
	}

	return logger.With(fields...)
}
