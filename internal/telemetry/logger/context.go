package logger

import "context"

// OperationIDKey is the attribute key of operation ids.
const OperationIDKey = "op_id"

type contextKey string

const (
	loggerKey      contextKey = "loginchallenge.logger"
	operationIDKey contextKey = "loginchallenge.operation_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithOperationID adds an operation ID to the context.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// OperationIDFromContext extracts the operation ID from context.
func OperationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(operationIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context logger bound to ctx, so entries carry the
// operation ID.
func L(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
