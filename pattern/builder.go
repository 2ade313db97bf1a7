package pattern

import "github.com/cshenton/seqdex/compare"

// Builder is a capturing element proxy: each method records a projection
// and returns a new Builder, mirroring a dynamic language's proxy object
// with explicit methods in place of operator overloading. A Builder is
// immutable; every recording method returns a fresh value.
type Builder struct {
	chain Chain
}

// NewBuilder starts a capturing proxy over the bare element.
func NewBuilder() Builder { return Builder{} }

// Key records a keyed access by a literal key, compared for equality by
// value in the resulting chain signature.
func (b Builder) Key(k any) Builder {
	return Builder{chain: b.extend(step{kind: stepKey, key: k})}
}

// Apply records an application of a registered indexable function.
func (b Builder) Apply(fn IndexableFunc) Builder {
	return Builder{chain: b.extend(step{kind: stepFunc, fn: fn})}
}

func (b Builder) extend(s step) Chain {
	next := make(Chain, len(b.chain)+1)
	copy(next, b.chain)
	next[len(b.chain)] = s
	return next
}

// terminalChain returns the recorded transformation chain, normalized to a single
// identity step when nothing has been recorded yet.
func (b Builder) terminalChain() Chain {
	if len(b.chain) == 0 {
		return Chain{{kind: stepIdentity}}
	}
	return b.chain
}

// Indexer returns the IndexerPattern capturing the chain recorded so far,
// with no comparator, for use when creating an unfiltered lookup.
func (b Builder) Indexer() IndexerPattern {
	return IndexerPattern{Transformations: b.terminalChain()}
}

// Eq terminates the chain into an equality SearchPattern.
func (b Builder) Eq(v any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.Eq{Value: v}}
}

// In terminates the chain into a membership SearchPattern.
func (b Builder) In(values ...any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.In{Items: values}}
}

// Gt terminates the chain into a strictly-greater-than SearchPattern.
func (b Builder) Gt(start any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.Gt{Start: start}}
}

// Ge terminates the chain into a greater-than-or-equal SearchPattern.
func (b Builder) Ge(start any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.Ge{Start: start}}
}

// Lt terminates the chain into a strictly-less-than SearchPattern.
func (b Builder) Lt(end any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.Lt{End: end}}
}

// Le terminates the chain into a less-than-or-equal SearchPattern.
func (b Builder) Le(end any) SearchPattern {
	return SearchPattern{Transformations: b.terminalChain(), Comparator: compare.Le{End: end}}
}
