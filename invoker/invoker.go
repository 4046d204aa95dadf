// Package invoker is the public entry point for invoking behavior by code.
//
// An Invoker owns a code map, registers callables on it and invokes them by code:
//
//	inv := invoker.New()
//	_ = inv.Register("greet", func(_ context.Context, args []any) (any, error) {
//	    return "Hello, " + args[0].(string), nil
//	})
//
//	res, err := inv.Invoke(ctx, "greet", invoker.List("World")) // "Hello, World"
//
// Invoking an unregistered code fails with *InvocationFailure, which carries the command
// and the normalized arguments. Errors returned by the callable itself are passed through
// unchanged.
package invoker

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
	"github.com/rise-and-shine/invoker/registrar"
)

// Message templates passed through the Translator.
const (
	MsgCouldNotInvoke  = "Could not invoke callable"
	MsgInvalidArgs     = "Invalid invocation arguments"
	MsgInvalidCommand  = "Invalid command"
	MsgInvalidMapping  = "Invalid callable mapping"
	MsgInvalidCallable = "Invalid callable"
)

// Registerable accepts code to callable registrations.
type Registerable interface {
	Register(code codemap.Code, callable codemap.Callable) error
	RegisterAll(mapping registrar.Mapping) error
}

// Dispatchable invokes a callable by code with an already materialized argument list.
type Dispatchable interface {
	InvokeByCode(ctx context.Context, code codemap.Code, args []any) (any, error)
}

// Invocable invokes a command with arguments in any supported form.
type Invocable interface {
	Invoke(ctx context.Context, command codemap.Code, args Args) (any, error)
}

var (
	_ Registerable = (*Invoker)(nil)
	_ Dispatchable = (*Invoker)(nil)
	_ Invocable    = (*Invoker)(nil)
)

// Invoker maps codes to callables and invokes them by code.
//
// Registrations and invocations may run concurrently. A bulk registration is not
// atomic, so concurrent invocations can observe part of it.
type Invoker struct {
	codes      *codemap.CodeMap
	dispatcher *dispatcher.Dispatcher
	opts       options
}

// New creates an Invoker with an empty code map.
func New(opts ...Option) *Invoker {
	o := buildOptions(opts)
	codes := codemap.New()

	return &Invoker{
		codes:      codes,
		dispatcher: dispatcher.New(codes, o.wrappers...),
		opts:       o,
	}
}

// Register maps callable to code, replacing any previous callable of that code.
// A nil callable yields the error built by the InvalidInputFactory.
func (i *Invoker) Register(code codemap.Code, callable codemap.Callable) error {
	return i.invalidRegistration(i.codes.Register(code, callable), MsgInvalidCallable, callable)
}

// RegisterAll registers every pair of mapping. It is not atomic: on failure,
// pairs registered before the failing one are kept.
// A nil mapping or a nil callable in it yields the error built by the InvalidInputFactory;
// iteration failures of the mapping are returned as-is.
func (i *Invoker) RegisterAll(mapping registrar.Mapping) error {
	return i.invalidRegistration(registrar.RegisterAll(i.codes, mapping), MsgInvalidMapping, mapping)
}

// RegisterAllAny registers a dynamically typed mapping, see registrar.FromAny.
// A value that is not a mapping yields the error built by the InvalidInputFactory.
func (i *Invoker) RegisterAllAny(mapping any) error {
	return i.invalidRegistration(registrar.RegisterAllAny(i.codes, mapping), MsgInvalidMapping, mapping)
}

// invalidRegistration turns validation failures of a registration into the invalid input error.
// Registration has no invocation context, so the translator gets a nil one.
func (i *Invoker) invalidRegistration(err error, message string, value any) error {
	if err == nil || !errx.IsCodeIn(err, registrar.CodeInvalidMapping, codemap.CodeInvalidCallable) {
		return err
	}
	return i.opts.invalidInputFactory(i.opts.translator(message, nil, nil), err, value)
}

// InvokeByCode dispatches to the callable of code without translating lookup failures.
func (i *Invoker) InvokeByCode(ctx context.Context, code codemap.Code, args []any) (any, error) {
	return i.dispatcher.InvokeByCode(ctx, code, args)
}

// Invoke normalizes args and invokes the callable registered under command.
//
// An unresolved command yields the error built by the InvocationFailureFactory
// (*InvocationFailure by default) wrapping the lookup error. Malformed args yield the
// error built by the InvalidInputFactory (*InvalidInput by default) and nothing is dispatched.
// Any other error comes from the callable and is returned as-is.
//
// The not-found check also covers errors returned by the callable: an error whose chain
// holds an errx error with code codemap.CodeNotFound (for example from a nested
// InvokeByCode) is reported as an InvocationFailure of command. Callables must not use
// codemap.CodeNotFound for their own business errors.
func (i *Invoker) Invoke(ctx context.Context, command codemap.Code, args Args) (any, error) {
	list, err := Normalize(args)
	if err != nil {
		return nil, i.opts.invalidInputFactory(
			i.opts.translator(MsgInvalidArgs, nil, ctx), err, args,
		)
	}

	result, err := i.dispatcher.InvokeByCode(ctx, command, list)
	if err != nil && codemap.IsNotFound(err) {
		return nil, i.opts.invocationFailureFactory(
			i.opts.translator(MsgCouldNotInvoke, nil, ctx), nil, err, command, list,
		)
	}

	return result, err
}

// InvokeAny is Invoke for a dynamically typed command and arguments.
// The command is normalized with codemap.ToCode and the arguments with ArgsFrom.
func (i *Invoker) InvokeAny(ctx context.Context, command any, args any) (any, error) {
	code, err := codemap.ToCode(command)
	if err != nil {
		return nil, i.opts.invalidInputFactory(
			i.opts.translator(MsgInvalidCommand, nil, ctx), err, command,
		)
	}

	normalized, err := ArgsFrom(args)
	if err != nil {
		return nil, i.opts.invalidInputFactory(
			i.opts.translator(MsgInvalidArgs, nil, ctx), err, args,
		)
	}

	return i.Invoke(ctx, code, normalized)
}

// Has reports whether a callable is registered under code.
func (i *Invoker) Has(code codemap.Code) bool {
	return i.codes.Has(code)
}

// Len returns the number of registered codes.
func (i *Invoker) Len() int {
	return i.codes.Len()
}

// Codes returns the registered codes in registration order.
func (i *Invoker) Codes() []codemap.Code {
	return i.codes.Codes()
}
