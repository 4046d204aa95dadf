package invoker

import (
	"fmt"
	"iter"
	"slices"

	"github.com/code19m/errx"
)

// Args is the argument list of an invocation: either a materialized list or a lazy sequence.
// Build one with List, ListOf or Seq.
type Args interface {
	materialize() ([]any, error)
}

type (
	listArgs []any
	seqArgs  iter.Seq[any]
)

// List creates Args from the given values, used as-is.
func List(values ...any) Args {
	if values == nil {
		values = []any{}
	}
	return listArgs(values)
}

// ListOf creates Args from an existing slice, used as-is.
func ListOf(values []any) Args {
	if values == nil {
		values = []any{}
	}
	return listArgs(values)
}

// Seq creates Args from a sequence. The sequence is drained completely
// before dispatch and its order is kept.
func Seq(seq iter.Seq[any]) Args {
	return seqArgs(seq)
}

func (a listArgs) materialize() ([]any, error) {
	return a, nil
}

func (a seqArgs) materialize() ([]any, error) {
	if a == nil {
		return nil, errx.New("[invoker]: argument sequence is nil",
			errx.WithCode(CodeInvalidArgs),
			errx.WithType(errx.T_Validation),
		)
	}

	values := slices.Collect(iter.Seq[any](a))
	if values == nil {
		values = []any{}
	}
	return values, nil
}

// ArgsFrom converts a dynamically typed value into Args.
// Accepted forms are Args, []any and iter.Seq[any].
func ArgsFrom(v any) (Args, error) {
	switch a := v.(type) {
	case Args:
		return a, nil
	case []any:
		return ListOf(a), nil
	case iter.Seq[any]:
		return Seq(a), nil
	case func(func(any) bool):
		return Seq(a), nil
	default:
		return nil, errx.New("[invoker]: arguments are neither a list nor a sequence",
			errx.WithCode(CodeInvalidArgs),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"value_type": fmt.Sprintf("%T", v)}),
		)
	}
}

// Normalize materializes args into an ordered list.
func Normalize(args Args) ([]any, error) {
	if args == nil {
		return nil, errx.New("[invoker]: arguments are required",
			errx.WithCode(CodeInvalidArgs),
			errx.WithType(errx.T_Validation),
		)
	}
	return args.materialize()
}
