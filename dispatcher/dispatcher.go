// Package dispatcher resolves codes to callables and invokes them.
//
// The only failure of its own is an unresolved code, returned exactly as the lookup
// produced it (see codemap.IsNotFound). Errors of the callable itself pass through untouched.
package dispatcher

import (
	"context"

	"github.com/rise-and-shine/invoker/codemap"
)

// Lookuper resolves a code to its callable.
type Lookuper interface {
	Lookup(code codemap.Code) (codemap.Callable, error)
}

// WrapFunc decorates a resolved callable for a single invocation.
type WrapFunc func(code codemap.Code, next codemap.Callable) codemap.Callable

// Dispatcher invokes callables by code.
type Dispatcher struct {
	lookup   Lookuper
	wrappers []WrapFunc
}

// New creates a Dispatcher reading from lookup.
// Wrappers are applied in order, so the first one is the outermost.
func New(lookup Lookuper, wrappers ...WrapFunc) *Dispatcher {
	return &Dispatcher{
		lookup:   lookup,
		wrappers: wrappers,
	}
}

// InvokeByCode looks up code and invokes its callable with args.
// args must already be a fully materialized list.
func (d *Dispatcher) InvokeByCode(ctx context.Context, code codemap.Code, args []any) (any, error) {
	callable, err := d.lookup.Lookup(code)
	if err != nil {
		return nil, err
	}

	for i := len(d.wrappers) - 1; i >= 0; i-- {
		callable = d.wrappers[i](code, callable)
	}

	return callable(ctx, args)
}
