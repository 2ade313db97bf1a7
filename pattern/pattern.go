package pattern

import (
	"fmt"

	"github.com/cshenton/seqdex/compare"
)

// Pattern is the common surface of IndexerPattern and SearchPattern: a
// transformation chain plus the handles predicate a query planner uses to
// decide whether this pattern can serve a given query.
type Pattern interface {
	fmt.Stringer

	// Transform applies the pattern's chain to e.
	Transform(e any) (v any, ok bool, err error)

	// Matches reports whether e is indexable/selected under this pattern.
	Matches(e any) (bool, error)

	// Handles reports whether this pattern can serve query q.
	Handles(q SearchPattern) bool

	// Signature returns the underlying chain's signature.
	Signature() string
}

// IndexerPattern is a bare transformation with no comparator, used to
// build unfiltered lookups. It handles a query iff the query applies the
// identical transformation chain; any comparator on the query is
// irrelevant to an IndexerPattern, since every value that survives the
// transformation is indexed.
type IndexerPattern struct {
	Transformations Chain
}

func (p IndexerPattern) Transform(e any) (any, bool, error) {
	return p.Transformations.Apply(e)
}

func (p IndexerPattern) Matches(e any) (bool, error) {
	_, ok, err := p.Transformations.Apply(e)
	return ok, err
}

func (p IndexerPattern) Handles(q SearchPattern) bool {
	return p.Transformations.Signature() == q.Transformations.Signature()
}

func (p IndexerPattern) Signature() string { return p.Transformations.Signature() }

func (p IndexerPattern) String() string { return p.Transformations.Signature() }

// SearchPattern is a transformation chain combined with exactly one
// comparator. It filters at index-build time and drives query matching.
type SearchPattern struct {
	Transformations Chain
	Comparator      compare.Comparator
}

func (p SearchPattern) Transform(e any) (any, bool, error) {
	return p.Transformations.Apply(e)
}

func (p SearchPattern) Matches(e any) (bool, error) {
	v, ok, err := p.Transformations.Apply(e)
	if err != nil || !ok {
		return false, err
	}
	return p.Comparator.Matches(v), nil
}

// Handles reports whether this pattern can serve query q: the two share a
// transformation signature, and this pattern's comparator covers q's.
func (p SearchPattern) Handles(q SearchPattern) bool {
	return p.Transformations.Signature() == q.Transformations.Signature() &&
		p.Comparator.Covers(q.Comparator)
}

func (p SearchPattern) Signature() string { return p.Transformations.Signature() }

func (p SearchPattern) String() string {
	return fmt.Sprintf("%s%s", p.Transformations.Signature(), p.Comparator)
}

var (
	_ Pattern = IndexerPattern{}
	_ Pattern = SearchPattern{}
)
