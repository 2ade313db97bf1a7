// Package sequence defines the host-sequence interfaces the planner core
// consumes, and ships List, a concrete, observer-notifying reference
// implementation used to exercise and test that core. The mutable
// container itself is not the subject of this module — it exists as
// host-glue for the planner, lookup, and pattern packages.
package sequence

import "fmt"

// Host is the ordered, random-access storage the core consumes: lookups
// are built and maintained against it, and the planner reads through it.
type Host interface {
	Len() int
	Get(position int) (any, error)
	RegisterObserver(o LookupObserver)
	UnregisterObserver(o LookupObserver)
}

// LookupObserver receives synchronous notification of host mutations, in
// registration order, before the mutating call returns.
type LookupObserver interface {
	OnInsert(position int, element any) error
	OnReplace(position int, oldElement, newElement any) error
	OnDelete(position int) error
}

// OutOfRangeError reports an access to a position outside the host's
// current bounds.
type OutOfRangeError struct {
	Position int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("sequence: position %d out of range (length %d)", e.Position, e.Length)
}

// List is a minimal mutable sequence that notifies registered observers
// synchronously on every mutation. It is not safe for concurrent use.
type List struct {
	items     []any
	observers []LookupObserver
}

// NewList returns an empty List.
func NewList() *List { return &List{} }

func (l *List) Len() int { return len(l.items) }

func (l *List) Get(position int) (any, error) {
	if position < 0 || position >= len(l.items) {
		return nil, &OutOfRangeError{Position: position, Length: len(l.items)}
	}
	return l.items[position], nil
}

func (l *List) RegisterObserver(o LookupObserver) {
	l.observers = append(l.observers, o)
}

func (l *List) UnregisterObserver(o LookupObserver) {
	for i, existing := range l.observers {
		if existing == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

// Append adds e to the end of the list and notifies observers of the
// insertion at its new position.
func (l *List) Append(e any) error {
	l.items = append(l.items, e)
	position := len(l.items) - 1
	for _, o := range l.observers {
		if err := o.OnInsert(position, e); err != nil {
			return err
		}
	}
	return nil
}

// Set replaces the element at position in place and notifies observers.
func (l *List) Set(position int, e any) error {
	if position < 0 || position >= len(l.items) {
		return &OutOfRangeError{Position: position, Length: len(l.items)}
	}
	old := l.items[position]
	l.items[position] = e
	for _, o := range l.observers {
		if err := o.OnReplace(position, old, e); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAt removes the element at position, shifting later elements down,
// and notifies observers after the removal is already visible through
// Get/Len.
func (l *List) DeleteAt(position int) error {
	if position < 0 || position >= len(l.items) {
		return &OutOfRangeError{Position: position, Length: len(l.items)}
	}
	l.items = append(l.items[:position], l.items[position+1:]...)
	for _, o := range l.observers {
		if err := o.OnDelete(position); err != nil {
			return err
		}
	}
	return nil
}

var _ Host = (*List)(nil)
