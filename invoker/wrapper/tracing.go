package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
)

const tracerName = "github.com/rise-and-shine/invoker"

// NewTracing starts a span named "INVOKE <code>" around every invocation.
// A nil provider falls back to the global otel tracer provider.
func NewTracing(tp trace.TracerProvider) dispatcher.WrapFunc {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(tracerName)

	return func(code codemap.Code, next codemap.Callable) codemap.Callable {
		return func(ctx context.Context, args []any) (any, error) {
			ctx, span := tracer.Start(ctx, "INVOKE "+string(code),
				trace.WithAttributes(
					attribute.String("invocation.code", string(code)),
					attribute.Int("invocation.args_count", len(args)),
				),
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			result, err := next(ctx, args)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return result, err
		}
	}
}
