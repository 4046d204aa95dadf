package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
	"github.com/rise-and-shine/invoker/logger"
)

const CodePanicRecovered = "INVOCATION_PANIC"

// NewRecovery turns a panic raised by the callable into an error.
func NewRecovery(log logger.Logger) dispatcher.WrapFunc {
	log = log.Named("invoker.recovery")

	return func(code codemap.Code, next codemap.Callable) codemap.Callable {
		return func(ctx context.Context, args []any) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, 4096) // 4KB
					stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

					log.
						WithContext(ctx).
						With("code", string(code)).
						With("stack_trace", string(stackTrace)).
						With("panic_values", fmt.Sprintf("%v", r)).
						Error("panic recovered in recovery wrapper")

					result = nil
					err = errx.New("panic recovered in recovery wrapper",
						errx.WithCode(CodePanicRecovered),
						errx.WithDetails(errx.D{
							"code":         string(code),
							"stack_trace":  string(stackTrace),
							"panic_values": fmt.Sprintf("%v", r),
						}),
					)
				}
			}()

			return next(ctx, args)
		}
	}
}
