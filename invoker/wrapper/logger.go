package wrapper

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
	"github.com/rise-and-shine/invoker/logger"
	"github.com/rise-and-shine/invoker/mask"
)

// NewLogger logs every invocation with its code, masked arguments and execution time.
// Failed invocations are logged at error level with the errx attributes of the error.
func NewLogger(log logger.Logger) dispatcher.WrapFunc {
	log = log.Named("invoker.logger")

	return func(code codemap.Code, next codemap.Callable) codemap.Callable {
		return func(ctx context.Context, args []any) (any, error) {
			start := time.Now()

			result, err := next(ctx, args)

			l := log.
				WithContext(ctx).
				With("code", string(code)).
				With("execution_time", time.Since(start).String()).
				With("args", lo.Map(args, func(arg any, _ int) any { return mask.Value(arg) }))

			if err != nil {
				l.Errorx(err)
			} else {
				l.Info("invocation completed")
			}

			return result, err
		}
	}
}
