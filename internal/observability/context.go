package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

const traceIDBytes = 16

const (
	// TraceIDKey holds the trace ID propagated in X-Trace-Id.
	TraceIDKey contextKey = "trace_id"

	// RequestIDKey holds the unique request identifier.
	RequestIDKey contextKey = "request_id"

	// ProviderKey holds the provider id for this request.
	ProviderKey contextKey = "provider"

	// ModelKey holds the model name for this request.
	ModelKey contextKey = "model"
)

// WithTraceID injects trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithRequestID injects request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithProvider injects provider id into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithModel injects model name into context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

func stringValue(ctx context.Context, key contextKey) string {
	if value, ok := ctx.Value(key).(string); ok {
		return value
	}
	return ""
}

// GetTraceID extracts trace ID from context.
func GetTraceID(ctx context.Context) string { return stringValue(ctx, TraceIDKey) }

// GetRequestID extracts request ID from context.
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

// GetProvider extracts provider id from context.
func GetProvider(ctx context.Context) string { return stringValue(ctx, ProviderKey) }

// GetModel extracts model name from context.
func GetModel(ctx context.Context) string { return stringValue(ctx, ModelKey) }

// GenerateTraceID generates a 32 hex char trace ID.
func GenerateTraceID() string {
	bytes := make([]byte, traceIDBytes)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(bytes)
}

// GenerateRequestID generates a unique request identifier (UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}
