package invoker

import (
	"fmt"

	"github.com/rise-and-shine/invoker/codemap"
	"github.com/rise-and-shine/invoker/dispatcher"
)

type (
	// Translator formats a human-readable message from a template, placeholder
	// values and an optional translation context (for instance a context.Context
	// or a language tag).
	Translator func(template string, args []any, context any) string

	// InvalidInputFactory creates the error returned for malformed input.
	InvalidInputFactory func(message string, cause error, value any) error

	// InvocationFailureFactory creates the error returned when a command cannot be resolved.
	InvocationFailureFactory func(message string, code *int, cause error, command codemap.Code, args []any) error
)

// DefaultTranslator substitutes args into template with fmt.Sprintf and ignores the context.
// A template without args is returned untouched.
func DefaultTranslator(template string, args []any, _ any) string {
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

type options struct {
	translator               Translator
	invalidInputFactory      InvalidInputFactory
	invocationFailureFactory InvocationFailureFactory
	wrappers                 []dispatcher.WrapFunc
}

// Option is a functional option for configuring an Invoker.
type Option func(*options)

// WithTranslator sets the collaborator used to format error messages.
func WithTranslator(t Translator) Option {
	return func(o *options) {
		if t != nil {
			o.translator = t
		}
	}
}

// WithInvalidInputFactory sets the constructor of invalid input errors.
func WithInvalidInputFactory(f InvalidInputFactory) Option {
	return func(o *options) {
		if f != nil {
			o.invalidInputFactory = f
		}
	}
}

// WithInvocationFailureFactory sets the constructor of invocation failure errors.
func WithInvocationFailureFactory(f InvocationFailureFactory) Option {
	return func(o *options) {
		if f != nil {
			o.invocationFailureFactory = f
		}
	}
}

// WithWrappers appends invocation middlewares. The first wrapper is the outermost.
func WithWrappers(wrappers ...dispatcher.WrapFunc) Option {
	return func(o *options) {
		o.wrappers = append(o.wrappers, wrappers...)
	}
}

func buildOptions(opts []Option) options {
	o := options{
		translator:               DefaultTranslator,
		invalidInputFactory:      NewInvalidInput,
		invocationFailureFactory: NewInvocationFailure,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
