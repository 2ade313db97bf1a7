// Package pattern captures transformation chains and the patterns built
// from them (IndexerPattern, SearchPattern), and the capturing Builder
// callers use to record a chain before terminating it with a comparator.
package pattern

import (
	"errors"
	"fmt"
	"reflect"
)

// IndexableFunc is a pure, deterministic function eligible to appear in a
// transformation chain. It carries a stable identity token chosen at
// registration time, so that two chains built from the same registered
// function compare equal regardless of which call site produced them.
type IndexableFunc struct {
	token string
	fn    func(any) (any, error)
}

// RegisterFunction registers fn under id and returns an IndexableFunc that
// can be threaded into a Builder via Apply. Repeated applications of the
// same IndexableFunc are distinct steps in a chain; the returned value's
// token is reused, not regenerated, on each Apply call.
func RegisterFunction(id string, fn func(any) (any, error)) IndexableFunc {
	return IndexableFunc{token: fmt.Sprintf("fn(%s)", id), fn: fn}
}

type stepKind int

const (
	stepIdentity stepKind = iota
	stepKey
	stepFunc
)

// step is one projection in a transformation Chain: identity, a keyed
// access, or an indexable function application.
type step struct {
	kind stepKind
	key  any
	fn   IndexableFunc
}

func (s step) token() string {
	switch s.kind {
	case stepIdentity:
		return "identity"
	case stepKey:
		return fmt.Sprintf("key(%#v)", s.key)
	case stepFunc:
		return s.fn.token
	default:
		panic("pattern: unknown step kind")
	}
}

func (s step) apply(v any) (any, error) {
	switch s.kind {
	case stepIdentity:
		return v, nil
	case stepKey:
		return indexValue(v, s.key)
	case stepFunc:
		return s.fn.fn(v)
	default:
		panic("pattern: unknown step kind")
	}
}

// Chain is an ordered sequence of transformation steps applied left to
// right. The zero Chain is equivalent to a single identity step once
// normalized by a Builder; an empty Chain applied directly returns its
// input unchanged.
type Chain []step

// Signature is the stable fingerprint of a Chain: two chains are
// equivalent iff their signatures are equal.
func (c Chain) Signature() string {
	sig := ""
	for i, s := range c {
		if i > 0 {
			sig += "|"
		}
		sig += s.token()
	}
	return sig
}

func (c Chain) String() string { return c.Signature() }

// Apply walks the chain left to right. ok is false when a keyed step could
// not resolve a value (skip); err is non-nil only for a fatal
// transformation error, in which case it is a *TransformationFailure.
func (c Chain) Apply(e any) (v any, ok bool, err error) {
	v = e
	for _, s := range c {
		next, serr := s.apply(v)
		if serr != nil {
			if errors.Is(serr, errSkip) {
				return nil, false, nil
			}
			return nil, false, &TransformationFailure{Err: serr}
		}
		v = next
	}
	return v, true, nil
}

// indexValue applies a keyed access to v, mirroring subscript access over
// maps, slices, and arrays. It reports errSkip rather than a fatal error
// when the key cannot be resolved, since a missing key on one element of a
// heterogeneous host is routine, not exceptional.
func indexValue(v any, key any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() || !kv.Type().ConvertibleTo(rv.Type().Key()) {
			return nil, errSkip
		}
		mv := rv.MapIndex(kv.Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, errSkip
		}
		return mv.Interface(), nil
	case reflect.Slice, reflect.Array:
		idx, ok := asInt(key)
		if !ok || idx < 0 || idx >= rv.Len() {
			return nil, errSkip
		}
		return rv.Index(idx).Interface(), nil
	default:
		return nil, errSkip
	}
}

func asInt(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	}
	return 0, false
}
