package compare

import (
	"fmt"
	"time"
)

// Order compares two values and reports whether they are mutually
// comparable. When comparable is true, cmp follows the usual convention:
// negative if a < b, zero if a == b, positive if a > b.
//
// Order understands the common scalar families (ints, floats, strings,
// bools, time.Time) across mixed representations, and falls back to
// comparing values of the same concrete type by their formatted string.
// Values of differing, non-numeric concrete types are reported as not
// comparable rather than given an arbitrary order — a lookup built on
// such a mix would violate the mapping's total-order invariant.
func Order(a, b any) (cmp int, comparable bool) {
	if a == nil && b == nil {
		return 0, true
	}
	if a == nil {
		return -1, true
	}
	if b == nil {
		return 1, true
	}

	if an, aok := asFloat(a); aok {
		if bn, bok := asFloat(b); bok {
			return compareFloats(an, bn), true
		}
		return 0, false
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return compareStrings(av, bv), true
		}
		return 0, false
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBools(av, bv), true
		}
		return 0, false
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1, true
			case av.After(bv):
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}

	// Same concrete type: fall back to a stable, total string order.
	if fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b) {
		return compareStrings(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)), true
	}

	return 0, false
}

// Equal reports whether a and b represent the same value: both are nil, or
// Order reports them comparable with a zero result.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if cmp, ok := Order(a, b); ok {
		return cmp == 0
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}
