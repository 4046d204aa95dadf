// Package meta provides functionality for managing invocation metadata through context.
package meta

import "context"

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for tracing an invocation across components.
	TraceID ContextKey = "trace_id"

	// ServiceName identifies the name of the service embedding the invoker.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"

	// InvocationCode is the code of the callable being invoked.
	InvocationCode ContextKey = "invocation_code"

	// AcceptLanguage indicates the natural language and locale that the caller prefers.
	AcceptLanguage ContextKey = "accept-language"
)

//nolint:gochecknoglobals // fixed list of known keys
var knownKeys = []ContextKey{
	TraceID,
	ServiceName,
	ServiceVersion,
	InvocationCode,
	AcceptLanguage,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// Empty values are skipped.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all known metadata from the provided context.
// Only non-empty string values are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v := Find(ctx, k); v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the value stored under key, or an empty string.
func Find(ctx context.Context, key ContextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
