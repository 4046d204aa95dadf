package invoker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/invoker"
	"github.com/rise-and-shine/invoker/logger"
	"github.com/rise-and-shine/invoker/meta"
	"github.com/rise-and-shine/invoker/val"
)

func newObservedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestNewFromConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  invoker.Config
	}{
		{name: "missing service name", cfg: invoker.Config{}},
		{name: "invalid log level", cfg: invoker.Config{
			ServiceName: "svc",
			Logger:      logger.Config{Level: "verbose"},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := invoker.NewFromConfig(tc.cfg, logger.NewNop())
			require.Error(t, err)
			assert.Nil(t, inv)
			assert.True(t, errx.IsCodeIn(err, val.CodeValidationFailed))
		})
	}
}

func TestNewFromConfig_BuildsLoggerWhenNil(t *testing.T) {
	inv, err := invoker.NewFromConfig(invoker.Config{
		ServiceName: "svc",
		Logger:      logger.Config{Disable: true},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, inv.Register("greet", greet))
	res, err := inv.Invoke(t.Context(), "greet", invoker.List("World"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, World", res)
}

func TestNewFromConfig_DefaultMiddlewares(t *testing.T) {
	log, logs := newObservedLogger()

	inv, err := invoker.NewFromConfig(invoker.Config{ServiceName: "billing"}, log)
	require.NoError(t, err)

	var seen map[meta.ContextKey]string
	require.NoError(t, inv.Register("charge", func(ctx context.Context, _ []any) (any, error) {
		seen = meta.ExtractMetaFromContext(ctx)
		return "ok", nil
	}))

	_, err = inv.Invoke(t.Context(), "charge", invoker.List(10))
	require.NoError(t, err)

	assert.Equal(t, "billing", seen[meta.ServiceName])
	assert.Equal(t, "dev", seen[meta.ServiceVersion])
	assert.Equal(t, "charge", seen[meta.InvocationCode])
	assert.NotEmpty(t, seen[meta.TraceID])

	entries := logs.FilterMessage("invocation completed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "charge", fields["code"])
	assert.Equal(t, "billing", fields[string(meta.ServiceName)])
	assert.Equal(t, seen[meta.TraceID], fields[string(meta.TraceID)])
}

func TestNewFromConfig_MiddlewareToggles(t *testing.T) {
	log, logs := newObservedLogger()

	inv, err := invoker.NewFromConfig(invoker.Config{
		ServiceName: "svc",
		Middleware: invoker.MiddlewareConfig{
			DisableLogging: true,
			DisableMeta:    true,
			EnableRecovery: true,
		},
	}, log)
	require.NoError(t, err)

	require.NoError(t, inv.Register("meta", func(ctx context.Context, _ []any) (any, error) {
		return meta.ExtractMetaFromContext(ctx), nil
	}))
	require.NoError(t, inv.Register("panic", func(context.Context, []any) (any, error) {
		panic("unexpected")
	}))

	res, err := inv.Invoke(t.Context(), "meta", invoker.List())
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = inv.Invoke(t.Context(), "panic", invoker.List())
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, "INVOCATION_PANIC"))

	var failure *invoker.InvocationFailure
	assert.False(t, errors.As(err, &failure), "recovered panics are callable errors")

	assert.Zero(t, logs.FilterMessage("invocation completed").Len())
}

func TestNewFromConfig_Translations(t *testing.T) {
	inv, err := invoker.NewFromConfig(invoker.Config{
		ServiceName: "svc",
		Middleware:  invoker.MiddlewareConfig{DisableLogging: true},
		Translations: map[string]map[string]string{
			"uz": {invoker.MsgCouldNotInvoke: "Chaqirib bo'lmadi"},
			"ru": {invoker.MsgCouldNotInvoke: "Не удалось вызвать"},
		},
	}, logger.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{name: "uz", lang: "uz", expected: "Chaqirib bo'lmadi"},
		{name: "ru", lang: "ru", expected: "Не удалось вызвать"},
		{name: "unknown language falls back to source text", lang: "de", expected: invoker.MsgCouldNotInvoke},
		{name: "no language", lang: "", expected: invoker.MsgCouldNotInvoke},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			if tc.lang != "" {
				ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.AcceptLanguage: tc.lang})
			}

			_, err := inv.Invoke(ctx, "missing", invoker.List())

			var failure *invoker.InvocationFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tc.expected, failure.Message)
			assert.Equal(t, codemap.Code("missing"), failure.Command)
		})
	}
}

func TestNewFromConfig_UserOptionsOverride(t *testing.T) {
	sentinel := errors.New("custom")

	inv, err := invoker.NewFromConfig(
		invoker.Config{ServiceName: "svc"},
		logger.NewNop(),
		invoker.WithInvocationFailureFactory(func(string, *int, error, codemap.Code, []any) error {
			return sentinel
		}),
	)
	require.NoError(t, err)

	_, err = inv.Invoke(t.Context(), "missing", invoker.List())
	assert.Same(t, sentinel, err)
}
