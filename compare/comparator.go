// Package compare holds the value predicates ("comparators") used by
// SearchPatterns, and the Covers partial order that lets a query planner
// decide whether one comparator's results are a superset of another's.
//
// Eq and In are point comparators: they carry a discrete set of values and
// expose it through Values(). Gt, Ge, Lt, and Le are range comparators:
// they expose the bound they filter on through RangeComparator so a range
// seek can be built over a sorted mapping.
package compare

import "fmt"

// Comparator is a predicate over a single value with a defined Covers
// relation against other comparators.
type Comparator interface {
	// Matches reports whether x satisfies this comparator.
	Matches(x any) bool

	// Covers reports whether every value satisfying other also satisfies
	// this comparator. Pairs not defined by the covering matrix return
	// false rather than panicking.
	Covers(other Comparator) bool

	fmt.Stringer
}

// PointComparator is implemented by comparators that check membership in a
// fixed, discrete set of values (Eq, In).
type PointComparator interface {
	Comparator

	// Values returns the comparator's values in caller-declared order.
	Values() []any
}

// RangeComparator is implemented by comparators that describe a half-open
// or unbounded range (Gt, Ge, Lt, Le).
type RangeComparator interface {
	Comparator

	// StartKey returns the key to begin a range seek at, and whether one
	// exists. Lt and Le have no start key and seek from the beginning.
	StartKey() (key any, ok bool)

	// StartInclusive reports whether StartKey itself should be included.
	StartInclusive() bool
}

// Eq matches values equal to Value.
type Eq struct {
	Value any
}

func (e Eq) Matches(x any) bool { return Equal(x, e.Value) }

func (e Eq) Values() []any { return []any{e.Value} }

func (e Eq) String() string { return fmt.Sprintf("== %v", e.Value) }

func (e Eq) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return Equal(e.Value, o.Value)
	case In:
		// Deliberately asymmetric with In.Covers(Eq): this requires the
		// other side's set to equal the singleton {Value}, not merely be
		// contained in it.
		if len(o.Items) == 0 {
			return false
		}
		for _, v := range o.Items {
			if !Equal(e.Value, v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// In matches values present in Items.
type In struct {
	Items []any
}

// Values returns the comparator's values in caller-declared order.
func (in In) Values() []any { return in.Items }

func (in In) Matches(x any) bool {
	for _, v := range in.Items {
		if Equal(x, v) {
			return true
		}
	}
	return false
}

func (in In) String() string {
	s := "in_("
	for i, v := range in.Items {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v", v)
	}
	return s + ")"
}

func (in In) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return in.contains(o.Value)
	case In:
		for _, v := range o.Items {
			if !in.contains(v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (in In) contains(v any) bool {
	for _, own := range in.Items {
		if Equal(own, v) {
			return true
		}
	}
	return false
}

// Gt matches values strictly greater than Start.
type Gt struct {
	Start any
}

func (g Gt) Matches(x any) bool {
	cmp, ok := Order(x, g.Start)
	return ok && cmp > 0
}

func (g Gt) StartKey() (any, bool) { return g.Start, true }

func (g Gt) StartInclusive() bool { return false }

func (g Gt) String() string { return fmt.Sprintf("> %v", g.Start) }

func (g Gt) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return greater(o.Value, g.Start)
	case In:
		return allGreater(o.Items, g.Start)
	case Gt:
		return geq(o.Start, g.Start)
	case Ge:
		return greater(o.Start, g.Start)
	default:
		return false
	}
}

// Ge matches values greater than or equal to Start.
type Ge struct {
	Start any
}

func (g Ge) Matches(x any) bool {
	cmp, ok := Order(x, g.Start)
	return ok && cmp >= 0
}

func (g Ge) StartKey() (any, bool) { return g.Start, true }

func (g Ge) StartInclusive() bool { return true }

func (g Ge) String() string { return fmt.Sprintf(">= %v", g.Start) }

func (g Ge) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return geq(o.Value, g.Start)
	case In:
		return allGeq(o.Items, g.Start)
	case Gt:
		return geq(o.Start, g.Start)
	case Ge:
		return geq(o.Start, g.Start)
	default:
		return false
	}
}

// Lt matches values strictly less than End.
type Lt struct {
	End any
}

func (l Lt) Matches(x any) bool {
	cmp, ok := Order(x, l.End)
	return ok && cmp < 0
}

func (l Lt) StartKey() (any, bool) { return nil, false }

func (l Lt) StartInclusive() bool { return true }

func (l Lt) String() string { return fmt.Sprintf("< %v", l.End) }

func (l Lt) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return less(o.Value, l.End)
	case In:
		return allLess(o.Items, l.End)
	case Lt:
		return leq(o.End, l.End)
	case Le:
		return less(o.End, l.End)
	default:
		return false
	}
}

// Le matches values less than or equal to End.
type Le struct {
	End any
}

func (l Le) Matches(x any) bool {
	cmp, ok := Order(x, l.End)
	return ok && cmp <= 0
}

func (l Le) StartKey() (any, bool) { return nil, false }

func (l Le) StartInclusive() bool { return true }

func (l Le) String() string { return fmt.Sprintf("<= %v", l.End) }

func (l Le) Covers(other Comparator) bool {
	switch o := other.(type) {
	case Eq:
		return leq(o.Value, l.End)
	case In:
		return allLeq(o.Items, l.End)
	case Lt:
		return leq(o.End, l.End)
	case Le:
		return leq(o.End, l.End)
	default:
		return false
	}
}

func greater(a, b any) bool {
	cmp, ok := Order(a, b)
	return ok && cmp > 0
}

func geq(a, b any) bool {
	cmp, ok := Order(a, b)
	return ok && cmp >= 0
}

func less(a, b any) bool {
	cmp, ok := Order(a, b)
	return ok && cmp < 0
}

func leq(a, b any) bool {
	cmp, ok := Order(a, b)
	return ok && cmp <= 0
}

func allGreater(values []any, bound any) bool {
	for _, v := range values {
		if !greater(v, bound) {
			return false
		}
	}
	return true
}

func allGeq(values []any, bound any) bool {
	for _, v := range values {
		if !geq(v, bound) {
			return false
		}
	}
	return true
}

func allLess(values []any, bound any) bool {
	for _, v := range values {
		if !less(v, bound) {
			return false
		}
	}
	return true
}

func allLeq(values []any, bound any) bool {
	for _, v := range values {
		if !leq(v, bound) {
			return false
		}
	}
	return true
}

var (
	_ PointComparator = Eq{}
	_ PointComparator = In{}
	_ RangeComparator = Gt{}
	_ RangeComparator = Ge{}
	_ RangeComparator = Lt{}
	_ RangeComparator = Le{}
)
