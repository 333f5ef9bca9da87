package shared

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys defined in this package.
type contextKey string

const (
	// UserIDContextKey is the context key under which the authentication
	// middleware stores the authenticated user's id.
	UserIDContextKey contextKey = "user_id"

	// traceIDContextKey carries the per-request trace id.
	traceIDContextKey contextKey = "trace_id"
)

// SetTraceID returns a context carrying a freshly generated trace id.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDContextKey, uuid.New().String())
}

// GetTraceID extracts the trace id from the context, or returns an empty
// string when none was set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(traceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
