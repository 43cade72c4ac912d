// Package meta provides functionality for managing request metadata through context.
package meta

import "context"

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for tracing requests across services.
	TraceID ContextKey = "trace_id"

	// TenantID identifies the tenant namespace the request operates in.
	// It is resolved from the request host before any catalog or storage access.
	TenantID ContextKey = "tenant_id"

	// ActorID identifies the user making the request.
	ActorID ContextKey = "actor_id"

	// IPAddress contains the client's IP address.
	IPAddress ContextKey = "ip_address"

	// UserAgent contains the user agent string from the request.
	UserAgent ContextKey = "user_agent"

	// RemoteAddr contains the network address that sent the request.
	RemoteAddr ContextKey = "remote_addr"

	// ServiceName identifies the name of the current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

// allKeys lists every predefined context key handled by this package.
var allKeys = []ContextKey{ //nolint:gochecknoglobals // finite, read-only key set
	TraceID,
	TenantID,
	ActorID,
	IPAddress,
	UserAgent,
	RemoteAddr,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all metadata from the provided context.
// Only non-empty string values are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// GetTenantID returns the tenant id stored in the context, or an empty
// string if the request has not passed tenant resolution.
func GetTenantID(ctx context.Context) string {
	v, _ := ctx.Value(TenantID).(string)
	return v
}

// GetActorID returns the acting user id stored in the context.
func GetActorID(ctx context.Context) string {
	v, _ := ctx.Value(ActorID).(string)
	return v
}
