// Package registrar bulk-registers code to callable mappings onto a registration target.
//
// Mappings come in a closed set of forms (see Mapping). Registration is applied pair by pair
// in the mapping's order and is not transactional: when iteration or a single registration
// fails, pairs applied before the failure stay registered.
package registrar

import (
	"fmt"
	"iter"
	"slices"

	"github.com/code19m/errx"
	"github.com/samber/lo"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rise-and-shine/invoker/codemap"
)

const (
	CodeInvalidMapping  = "INVALID_MAPPING"
	CodeIterationFailed = "MAPPING_ITERATION_FAILED"
)

// Registerable is a target that accepts a single code to callable registration.
type Registerable interface {
	Register(code codemap.Code, callable codemap.Callable) error
}

// Pair is a single code to callable association.
type Pair struct {
	Code     codemap.Code
	Callable codemap.Callable
}

// Mapping is a source of code to callable pairs.
// Use Map, Pairs, Ordered, Seq or FallibleSeq to build one.
type Mapping interface {
	pairs() iter.Seq2[Pair, error]
	isNil() bool
}

type (
	mapMapping         map[codemap.Code]codemap.Callable
	pairsMapping       []Pair
	seqMapping         iter.Seq2[codemap.Code, codemap.Callable]
	fallibleSeqMapping iter.Seq2[Pair, error]
)

type orderedMapping struct {
	om *orderedmap.OrderedMap[codemap.Code, codemap.Callable]
}

// Map creates a Mapping from a materialized Go map.
// Go maps are unordered, so pairs are applied in ascending code order.
func Map(m map[codemap.Code]codemap.Callable) Mapping {
	return mapMapping(m)
}

// Pairs creates a Mapping applied in argument order.
func Pairs(pairs ...Pair) Mapping {
	if pairs == nil {
		pairs = []Pair{}
	}
	return pairsMapping(pairs)
}

// Ordered creates a Mapping from an ordered map, applied oldest entry first.
func Ordered(om *orderedmap.OrderedMap[codemap.Code, codemap.Callable]) Mapping {
	return orderedMapping{om: om}
}

// Seq creates a Mapping from a pull-based sequence, applied in yield order.
func Seq(seq iter.Seq2[codemap.Code, codemap.Callable]) Mapping {
	return seqMapping(seq)
}

// FallibleSeq creates a Mapping from a sequence whose iteration may fail.
// A non-nil error yielded by the sequence stops registration.
func FallibleSeq(seq iter.Seq2[Pair, error]) Mapping {
	return fallibleSeqMapping(seq)
}

func (m mapMapping) isNil() bool { return m == nil }

func (m mapMapping) pairs() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		codes := lo.Keys(m)
		slices.Sort(codes)
		for _, code := range codes {
			if !yield(Pair{Code: code, Callable: m[code]}, nil) {
				return
			}
		}
	}
}

func (m pairsMapping) isNil() bool { return m == nil }

func (m pairsMapping) pairs() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for _, p := range m {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func (m orderedMapping) isNil() bool { return m.om == nil }

func (m orderedMapping) pairs() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(Pair{Code: pair.Key, Callable: pair.Value}, nil) {
				return
			}
		}
	}
}

func (m seqMapping) isNil() bool { return m == nil }

func (m seqMapping) pairs() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for code, callable := range m {
			if !yield(Pair{Code: code, Callable: callable}, nil) {
				return
			}
		}
	}
}

func (m fallibleSeqMapping) isNil() bool { return m == nil }

func (m fallibleSeqMapping) pairs() iter.Seq2[Pair, error] {
	return iter.Seq2[Pair, error](m)
}

// FromAny converts a dynamically typed value into a Mapping.
//
// Accepted forms are any Mapping, map[codemap.Code]codemap.Callable, map[string]codemap.Callable,
// map[any]codemap.Callable (keys normalized with codemap.ToCode), []Pair,
// iter.Seq2[codemap.Code, codemap.Callable], iter.Seq2[Pair, error] and
// *orderedmap.OrderedMap[codemap.Code, codemap.Callable].
func FromAny(v any) (Mapping, error) {
	switch m := v.(type) {
	case Mapping:
		return m, nil
	case map[codemap.Code]codemap.Callable:
		return Map(m), nil
	case map[string]codemap.Callable:
		if m == nil {
			return Map(nil), nil
		}
		return Map(lo.MapKeys(m, func(_ codemap.Callable, k string) codemap.Code {
			return codemap.Code(k)
		})), nil
	case map[any]codemap.Callable:
		return fromAnyKeyedMap(m)
	case []Pair:
		if m == nil {
			return pairsMapping(nil), nil
		}
		return Pairs(m...), nil
	case iter.Seq2[codemap.Code, codemap.Callable]:
		return Seq(m), nil
	case func(func(codemap.Code, codemap.Callable) bool):
		return Seq(m), nil
	case iter.Seq2[Pair, error]:
		return FallibleSeq(m), nil
	case func(func(Pair, error) bool):
		return FallibleSeq(m), nil
	case *orderedmap.OrderedMap[codemap.Code, codemap.Callable]:
		return Ordered(m), nil
	default:
		return nil, errx.New("[registrar]: value is neither a map nor a sequence of code/callable pairs",
			errx.WithCode(CodeInvalidMapping),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"value_type": fmt.Sprintf("%T", v)}),
		)
	}
}

func fromAnyKeyedMap(m map[any]codemap.Callable) (Mapping, error) {
	if m == nil {
		return Map(nil), nil
	}

	normalized := make(map[codemap.Code]codemap.Callable, len(m))
	for k, callable := range m {
		code, err := codemap.ToCode(k)
		if err != nil {
			return nil, errx.New("[registrar]: mapping key is not convertible to a code",
				errx.WithCode(CodeInvalidMapping),
				errx.WithType(errx.T_Validation),
				errx.WithDetails(errx.D{"key_type": fmt.Sprintf("%T", k), "cause": err.Error()}),
			)
		}
		normalized[code] = callable
	}

	return Map(normalized), nil
}

// RegisterAll registers every pair of mapping onto target, in the mapping's order.
//
// A nil target or mapping fails with CodeInvalidMapping before anything is registered.
// Iteration and registration failures stop the process without rolling back pairs
// that were already applied; the "applied" detail of the returned error tells how many were.
func RegisterAll(target Registerable, mapping Mapping) error {
	if target == nil {
		return errx.New("[registrar]: registration target is required",
			errx.WithCode(CodeInvalidMapping),
			errx.WithType(errx.T_Validation),
		)
	}
	if mapping == nil || mapping.isNil() {
		return errx.New("[registrar]: mapping is required",
			errx.WithCode(CodeInvalidMapping),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"value_type": fmt.Sprintf("%T", mapping)}),
		)
	}

	applied := 0
	for pair, err := range mapping.pairs() {
		if err != nil {
			return errx.Wrap(err,
				errx.WithCode(CodeIterationFailed),
				errx.WithDetails(errx.D{"applied": applied}),
			)
		}

		if err = target.Register(pair.Code, pair.Callable); err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{
				"applied": applied,
				"code":    string(pair.Code),
			}))
		}
		applied++
	}

	return nil
}

// RegisterAllAny is RegisterAll for a dynamically typed mapping, see FromAny.
func RegisterAllAny(target Registerable, v any) error {
	mapping, err := FromAny(v)
	if err != nil {
		return err
	}
	return RegisterAll(target, mapping)
}
