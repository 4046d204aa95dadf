package dispatcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
)

type stubLookup struct {
	callable codemap.Callable
	err      error
	looked   []codemap.Code
}

func (s *stubLookup) Lookup(code codemap.Code) (codemap.Callable, error) {
	s.looked = append(s.looked, code)
	return s.callable, s.err
}

func TestInvokeByCode_Success(t *testing.T) {
	m := codemap.New()
	require.NoError(t, m.Register("sum", func(_ context.Context, args []any) (any, error) {
		total := 0
		for _, a := range args {
			total += a.(int)
		}
		return total, nil
	}))

	d := dispatcher.New(m)

	res, err := d.InvokeByCode(t.Context(), "sum", []any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6, res)
}

func TestInvokeByCode_PassesArgsAndContext(t *testing.T) {
	type ctxKey struct{}

	var gotArgs []any
	var gotVal any
	lookup := &stubLookup{callable: func(ctx context.Context, args []any) (any, error) {
		gotArgs = args
		gotVal = ctx.Value(ctxKey{})
		return nil, nil
	}}

	ctx := context.WithValue(t.Context(), ctxKey{}, "v")
	_, err := dispatcher.New(lookup).InvokeByCode(ctx, "c", []any{"x", 2})
	require.NoError(t, err)

	assert.Equal(t, []any{"x", 2}, gotArgs)
	assert.Equal(t, "v", gotVal)
	assert.Equal(t, []codemap.Code{"c"}, lookup.looked)
}

func TestInvokeByCode_NotFoundPropagatesUnchanged(t *testing.T) {
	m := codemap.New()
	_, lookupErr := m.Lookup("missing")
	require.Error(t, lookupErr)

	res, err := dispatcher.New(m).InvokeByCode(t.Context(), "missing", nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, codemap.IsNotFound(err))
	assert.Equal(t, lookupErr.Error(), err.Error())

	sentinel := errors.New("lookup failed")
	_, err = dispatcher.New(&stubLookup{err: sentinel}).InvokeByCode(t.Context(), "x", nil)
	assert.Same(t, sentinel, err)
}

func TestInvokeByCode_CallableErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	lookup := &stubLookup{callable: func(context.Context, []any) (any, error) {
		return "partial", boom
	}}

	res, err := dispatcher.New(lookup).InvokeByCode(t.Context(), "c", nil)
	assert.Same(t, boom, err)
	assert.Equal(t, "partial", res)
	assert.False(t, codemap.IsNotFound(err))
}

func TestInvokeByCode_WrapperOrder(t *testing.T) {
	var trace []string

	wrap := func(name string) dispatcher.WrapFunc {
		return func(code codemap.Code, next codemap.Callable) codemap.Callable {
			return func(ctx context.Context, args []any) (any, error) {
				trace = append(trace, name+">"+string(code))
				res, err := next(ctx, args)
				trace = append(trace, name+"<")
				return res, err
			}
		}
	}

	lookup := &stubLookup{callable: func(context.Context, []any) (any, error) {
		trace = append(trace, "callable")
		return "ok", nil
	}}

	res, err := dispatcher.New(lookup, wrap("outer"), wrap("inner")).InvokeByCode(t.Context(), "c", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, []string{"outer>c", "inner>c", "callable", "inner<", "outer<"}, trace)
}

func TestInvokeByCode_WrappersSkippedOnNotFound(t *testing.T) {
	called := false
	wrap := func(_ codemap.Code, next codemap.Callable) codemap.Callable {
		called = true
		return next
	}

	_, err := dispatcher.New(codemap.New(), wrap).InvokeByCode(t.Context(), "missing", nil)
	require.Error(t, err)
	assert.False(t, called)
}
