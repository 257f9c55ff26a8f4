// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application are defined here so that
// producers and consumers agree on key and value type.
//
// USAGE PATTERN:
//
//	ctx = contextkeys.WithRequestID(ctx, id)
//	id := contextkeys.GetRequestID(ctx)
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// RequestIDKey contains request ID string (UUID unless the client sent one)
	// Set by: httputil.RequestIDMiddleware
	// Used by: httputil.LoggingMiddleware, error responses
	// Type: string
	RequestIDKey Key = "request_id"

	// RouteNameKey contains the name of the host route a request matched
	// Set by: host.Router
	// Used by: module controller actions
	// Type: string
	RouteNameKey Key = "route_name"
)

// WithRequestID adds request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithRouteName adds the matched route name to the context
func WithRouteName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, RouteNameKey, name)
}

// GetRouteName retrieves the matched route name from context
func GetRouteName(ctx context.Context) string {
	if name, ok := ctx.Value(RouteNameKey).(string); ok {
		return name
	}
	return ""
}
