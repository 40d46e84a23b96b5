package api

import "context"

type contextKey string

const resourceKey contextKey = "api_resource"

// WithResource attaches a resource label to the context for call logging.
func WithResource(ctx context.Context, resource string) context.Context {
	return context.WithValue(ctx, resourceKey, resource)
}

// ResourceFrom extracts the resource label from the context.
func ResourceFrom(ctx context.Context) string {
	if v, ok := ctx.Value(resourceKey).(string); ok {
		return v
	}
	return "unknown"
}
