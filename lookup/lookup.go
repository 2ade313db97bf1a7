// Package lookup implements a named secondary index over a host sequence:
// a key-sorted mapping from a pattern's derived key to the set of host
// positions that produce it.
package lookup

import (
	"github.com/google/btree"

	"github.com/cshenton/seqdex/compare"
	"github.com/cshenton/seqdex/pattern"
)

// Host is the slice of host-sequence behavior a Lookup needs to bootstrap
// itself. It is defined locally, rather than importing the sequence
// package, so that lookup and sequence can be tested and compiled
// independently of one another.
type Host interface {
	Len() int
	Get(position int) (any, error)
}

// entry is one row of a Lookup's mapping: a derived key and the set of
// host positions that currently produce it.
type entry struct {
	key       any
	positions map[int]struct{}
}

func lessEntry(a, b entry) bool {
	cmp, _ := compare.Order(a.key, b.key)
	return cmp < 0
}

// Lookup is a named secondary index built from an IndexerPattern or
// SearchPattern over a host sequence. It is not safe for concurrent use.
type Lookup struct {
	Name    string
	Pattern pattern.Pattern

	tree *btree.BTreeG[entry]
}

// New constructs a Lookup over host and bootstraps it by scanning the
// host's current contents. A nil pattern defaults to a bare identity
// IndexerPattern.
func New(host Host, name string, p pattern.Pattern) (*Lookup, error) {
	if p == nil {
		p = pattern.NewBuilder().Indexer()
	}
	l := &Lookup{
		Name:    name,
		Pattern: p,
		tree:    btree.NewG(32, lessEntry),
	}
	for i := 0; i < host.Len(); i++ {
		e, err := host.Get(i)
		if err != nil {
			return nil, err
		}
		if err := l.indexPosition(i, e); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Handles delegates to the underlying pattern's Handles predicate.
func (l *Lookup) Handles(q pattern.SearchPattern) bool {
	return l.Pattern.Handles(q)
}

// Len reports the number of distinct keys currently in the mapping.
func (l *Lookup) Len() int { return l.tree.Len() }

// Get returns the position set stored under key, and whether one exists.
// The returned set must not be mutated by the caller.
func (l *Lookup) Get(key any) (map[int]struct{}, bool) {
	e, ok := l.tree.Get(entry{key: key})
	// A key that Order cannot place against the stored keys compares as
	// "not less" both ways, so the tree may hand back an unrelated entry.
	if !ok || !compare.Equal(e.key, key) {
		return nil, false
	}
	return e.positions, true
}

// Ascend visits every key in ascending order, calling fn(key, positions)
// for each, stopping early if fn returns false.
func (l *Lookup) Ascend(fn func(key any, positions map[int]struct{}) bool) {
	l.tree.Ascend(func(e entry) bool {
		return fn(e.key, e.positions)
	})
}

// AscendFrom visits keys in ascending order starting at the bisect
// position determined by start and inclusive (bisect_left when inclusive,
// bisect_right otherwise), calling fn(key, positions) for each until fn
// returns false.
func (l *Lookup) AscendFrom(start any, inclusive bool, fn func(key any, positions map[int]struct{}) bool) {
	pivot := entry{key: start}
	l.tree.AscendGreaterOrEqual(pivot, func(e entry) bool {
		if !inclusive {
			if cmp, ok := compare.Order(e.key, start); ok && cmp == 0 {
				return true
			}
		}
		return fn(e.key, e.positions)
	})
}

// OnInsert indexes the element newly appended at position.
func (l *Lookup) OnInsert(position int, element any) error {
	return l.indexPosition(position, element)
}

// OnReplace re-indexes position after its element changed. Per spec it is
// a delete-without-renumber followed by an insert, since the position
// itself does not move.
func (l *Lookup) OnReplace(position int, oldElement, newElement any) error {
	l.removePosition(position, false)
	return l.indexPosition(position, newElement)
}

// OnDelete removes position from every key set it belongs to and
// decrements every stored position greater than it, preserving position
// validity across the host's removal.
func (l *Lookup) OnDelete(position int) error {
	l.removePosition(position, true)
	return nil
}

func (l *Lookup) indexPosition(position int, element any) error {
	key, ok, err := l.Pattern.Transform(element)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if sp, isSearch := l.Pattern.(pattern.SearchPattern); isSearch {
		if !sp.Comparator.Matches(key) {
			return nil
		}
	}
	return l.insert(position, key)
}

func (l *Lookup) insert(position int, key any) error {
	if err := l.checkComparable(key); err != nil {
		return err
	}
	e, found := l.tree.Get(entry{key: key})
	if !found {
		e = entry{key: key, positions: map[int]struct{}{}}
	}
	e.positions[position] = struct{}{}
	l.tree.ReplaceOrInsert(e)
	return nil
}

func (l *Lookup) checkComparable(key any) error {
	min, ok := l.tree.Min()
	if !ok {
		if _, comparable := compare.Order(key, key); !comparable {
			return &IncomparableKeysError{Lookup: l.Name, Key: key}
		}
		return nil
	}
	if _, comparable := compare.Order(key, min.key); !comparable {
		return &IncomparableKeysError{Lookup: l.Name, Key: key}
	}
	return nil
}

// removePosition removes position from every key set containing it,
// dropping keys whose set becomes empty. When renumber is true, every
// remaining stored position greater than position is decremented by one.
func (l *Lookup) removePosition(position int, renumber bool) {
	var toDelete []entry
	l.tree.Ascend(func(e entry) bool {
		delete(e.positions, position)

		if renumber {
			var shifted []int
			for q := range e.positions {
				if q > position {
					shifted = append(shifted, q)
				}
			}
			for _, q := range shifted {
				delete(e.positions, q)
			}
			for _, q := range shifted {
				e.positions[q-1] = struct{}{}
			}
		}

		if len(e.positions) == 0 {
			toDelete = append(toDelete, e)
		}
		return true
	})
	for _, e := range toDelete {
		l.tree.Delete(e)
	}
}
