// Package seqdex ties a host sequence, its registered lookups, and the
// query planner together behind a small facade, for callers who do not
// want to wire the sub-packages (pattern, compare, lookup, plan, planner)
// by hand.
package seqdex

import (
	"fmt"

	"github.com/cshenton/seqdex/lookup"
	"github.com/cshenton/seqdex/pattern"
	"github.com/cshenton/seqdex/plan"
	"github.com/cshenton/seqdex/planner"
	"github.com/cshenton/seqdex/sequence"
)

// Event is emitted around lookup lifecycle and planning decisions. The
// core itself performs no logging; this is the only observability hook it
// offers, and it is entirely optional.
type Event struct {
	Name string
	Data map[string]any
}

// Handler receives Events. A nil Handler is a no-op.
type Handler func(Event)

// DuplicateLookupError reports an attempt to register a lookup name that
// is already in use.
type DuplicateLookupError struct {
	Name string
}

func (e *DuplicateLookupError) Error() string {
	return fmt.Sprintf("seqdex: lookup %q already exists", e.Name)
}

// UnknownLookupError reports an attempt to operate on a lookup name that
// has not been registered.
type UnknownLookupError struct {
	Name string
}

func (e *UnknownLookupError) Error() string {
	return fmt.Sprintf("seqdex: lookup %q is not registered", e.Name)
}

// SeqDex is the host-facing entry point: create lookups against it, then
// plan or search queries over the host they were built from.
type SeqDex struct {
	host    sequence.Host
	lookups []*lookup.Lookup
	byName  map[string]*lookup.Lookup
	planner *planner.Planner
	onEvent Handler
}

// New returns a SeqDex over host with no lookups registered.
func New(host sequence.Host) *SeqDex {
	return &SeqDex{
		host:    host,
		byName:  make(map[string]*lookup.Lookup),
		planner: planner.New(),
	}
}

// OnEvent installs a hook invoked on lookup lifecycle and planning events.
// Passing nil disables it.
func (s *SeqDex) OnEvent(h Handler) { s.onEvent = h }

func (s *SeqDex) emit(name string, data map[string]any) {
	if s.onEvent != nil {
		s.onEvent(Event{Name: name, Data: data})
	}
}

// CreateLookup registers a new named lookup built from p, bootstraps it
// against the host's current contents, and subscribes it to future host
// mutations. A nil p defaults to a bare identity IndexerPattern. name must
// be unique among this SeqDex's lookups.
func (s *SeqDex) CreateLookup(name string, p pattern.Pattern) (*lookup.Lookup, error) {
	if _, exists := s.byName[name]; exists {
		return nil, &DuplicateLookupError{Name: name}
	}

	l, err := lookup.New(s.host, name, p)
	if err != nil {
		return nil, err
	}

	s.host.RegisterObserver(l)
	s.lookups = append(s.lookups, l)
	s.byName[name] = l
	s.emit("lookup.created", map[string]any{"name": name})
	return l, nil
}

// DropLookup unregisters and discards the named lookup.
func (s *SeqDex) DropLookup(name string) error {
	l, exists := s.byName[name]
	if !exists {
		return &UnknownLookupError{Name: name}
	}

	s.host.UnregisterObserver(l)
	delete(s.byName, name)
	for i, existing := range s.lookups {
		if existing == l {
			s.lookups = append(s.lookups[:i], s.lookups[i+1:]...)
			break
		}
	}
	s.emit("lookup.dropped", map[string]any{"name": name})
	return nil
}

// Plan returns the plan the planner would execute for query, without
// executing it.
func (s *SeqDex) Plan(query pattern.SearchPattern) *plan.QueryPlan {
	p := s.planner.Plan(query, s.lookups)
	s.emit("query.planned", map[string]any{
		"query":      query.String(),
		"operations": len(p.Operations),
	})
	return p
}

// Search plans and executes query against the host, returning the
// resulting lazy stream of (position, element) pairs.
func (s *SeqDex) Search(query pattern.SearchPattern) plan.ItemStream {
	return s.Plan(query).Execute(s.host)
}
