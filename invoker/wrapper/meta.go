package wrapper

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
	"github.com/rise-and-shine/invoker/meta"
)

// NewMetaInject adds the trace id, service info and invocation code to the context
// passed down to the callable. An existing trace id in the context is kept.
func NewMetaInject(serviceName, serviceVersion string) dispatcher.WrapFunc {
	return func(code codemap.Code, next codemap.Callable) codemap.Callable {
		return func(ctx context.Context, args []any) (any, error) {
			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        getTraceID(ctx),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
				meta.InvocationCode: string(code),
			})

			return next(ctx, args)
		}
	}
}

// getTraceID prefers an id already in the context, then the current span's trace id,
// and generates a new one otherwise.
func getTraceID(ctx context.Context) string {
	if id := meta.Find(ctx, meta.TraceID); id != "" {
		return id
	}

	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	return "man-" + uuid.NewString()
}
