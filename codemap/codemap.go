// Package codemap provides an insertion-ordered association from symbolic codes to callables.
//
// A CodeMap is the storage behind an invoker: codes are registered once (or overwritten)
// and later resolved by exact key equality. Resolving an absent code yields an error
// that can be told apart from failures of the callable itself via IsNotFound.
package codemap

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	CodeNotFound        = "CODE_NOT_FOUND"
	CodeInvalidCallable = "INVALID_CALLABLE"
	CodeInvalidCode     = "INVALID_CODE"
)

type (
	// Code is an opaque identifier of a registered behavior.
	Code string

	// Callable is a unit of behavior invoked with an ordered list of arguments.
	Callable func(ctx context.Context, args []any) (any, error)
)

// Invocable is implemented by types that can act as a Callable.
type Invocable interface {
	Invoke(ctx context.Context, args []any) (any, error)
}

// FromInvocable adapts an Invocable to a Callable.
// A nil Invocable results in a nil Callable, which Register rejects.
func FromInvocable(inv Invocable) Callable {
	if inv == nil {
		return nil
	}
	return inv.Invoke
}

// ToCode normalizes a string-like value (string, fmt.Stringer, numbers, ...) into a Code.
func ToCode(v any) (Code, error) {
	if c, ok := v.(Code); ok {
		return c, nil
	}

	s, err := cast.ToStringE(v)
	if v == nil || err != nil {
		if err == nil {
			err = errx.New("nil value")
		}
		return "", errx.New("[codemap]: value is not convertible to a code",
			errx.WithCode(CodeInvalidCode),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"value_type": fmt.Sprintf("%T", v), "cast_error": err.Error()}),
		)
	}

	return Code(s), nil
}

// IsNotFound reports whether err, or any error it wraps, signals a lookup of an unregistered code.
func IsNotFound(err error) bool {
	var e errx.ErrorX
	return errors.As(err, &e) && e.Code() == CodeNotFound
}

// CodeMap stores callables by code, keeping registration order.
// It is safe for concurrent use.
type CodeMap struct {
	mu      sync.RWMutex
	entries *orderedmap.OrderedMap[Code, Callable]
}

// New creates an empty CodeMap.
func New() *CodeMap {
	return &CodeMap{
		entries: orderedmap.New[Code, Callable](),
	}
}

// Register stores callable under code, replacing any previous entry.
// An overwritten code keeps its original position in the registration order.
func (m *CodeMap) Register(code Code, callable Callable) error {
	if callable == nil {
		return errx.New("[codemap]: callable must not be nil",
			errx.WithCode(CodeInvalidCallable),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"code": string(code)}),
		)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries.Set(code, callable)
	return nil
}

// Lookup returns the callable registered under code.
func (m *CodeMap) Lookup(code Code) (Callable, error) {
	m.mu.RLock()
	callable, ok := m.entries.Get(code)
	m.mu.RUnlock()

	if !ok {
		return nil, errx.New("[codemap]: no callable registered for code",
			errx.WithCode(CodeNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(errx.D{"code": string(code)}),
		)
	}

	return callable, nil
}

// Has reports whether a callable is registered under code.
func (m *CodeMap) Has(code Code) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries.Get(code)
	return ok
}

// Len returns the number of registered codes.
func (m *CodeMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.entries.Len()
}

// Codes returns the registered codes in registration order.
func (m *CodeMap) Codes() []Code {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codes := make([]Code, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		codes = append(codes, pair.Key)
	}
	return codes
}

// All iterates over a snapshot of the entries in registration order.
func (m *CodeMap) All() iter.Seq2[Code, Callable] {
	type entry struct {
		code     Code
		callable Callable
	}

	m.mu.RLock()
	snapshot := make([]entry, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		snapshot = append(snapshot, entry{code: pair.Key, callable: pair.Value})
	}
	m.mu.RUnlock()

	return func(yield func(Code, Callable) bool) {
		for _, e := range snapshot {
			if !yield(e.code, e.callable) {
				return
			}
		}
	}
}
