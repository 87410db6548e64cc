package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across qresp.
const (
	// Identity and context
	FieldSession   = "session"
	FieldRequestID = "request_id"

	// Components
	FieldComponent = "component"

	// Requests
	FieldRequest = "request"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount     = "count"
	FieldBatch     = "batch"
	FieldBatchSize = "batch_size"
	FieldIndex     = "index"

	// Files
	FieldFile = "file"

	// Query responses
	FieldKind   = "kind"
	FieldRank   = "rank"
	FieldSpan   = "span"
	FieldReason = "reason"
)

type contextKey string

const (
	sessionKey   contextKey = "logger_session"
	requestIDKey contextKey = "logger_request_id"
	componentKey contextKey = "logger_component"
)

// WithSession adds a session ID to the context for logging
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// WithRequestID adds a request ID to the context for logging
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if session, ok := ctx.Value(sessionKey).(string); ok && session != "" {
		fields = append(fields, FieldSession, session)
	}
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, FieldRequestID, requestID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	j := journal.New(db, logger.ComponentLogger("journal"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
