package plan

import (
	"github.com/cshenton/seqdex/lookup"
	"github.com/cshenton/seqdex/pattern"
)

// DataScan yields every host position whose element matches Pattern, in
// ascending position order.
type DataScan struct {
	Pattern pattern.SearchPattern
}

func (d DataScan) Describe() map[string]any {
	return map[string]any{
		"operation": "DataScan",
		"args":      map[string]any{"query": d.Pattern.String()},
	}
}

func (d DataScan) stream(host Host) ItemStream {
	return &dataScanStream{pattern: d.Pattern, host: host}
}

type dataScanStream struct {
	pattern pattern.SearchPattern
	host    Host
	pos     int
}

func (s *dataScanStream) Next() (Item, bool, error) {
	for s.pos < s.host.Len() {
		p := s.pos
		s.pos++
		e, err := s.host.Get(p)
		if err != nil {
			return Item{}, false, err
		}
		matched, err := s.pattern.Matches(e)
		if err != nil {
			return Item{}, false, err
		}
		if matched {
			return Item{Position: p, Element: e}, true, nil
		}
	}
	return Item{}, false, nil
}

// LookupSeek yields one position set per key in Keys, in Keys' order. A
// key absent from the lookup yields an empty set, never an error.
type LookupSeek struct {
	Lookup *lookup.Lookup
	Keys   []any
}

func (s LookupSeek) Describe() map[string]any {
	return map[string]any{
		"operation": "LookupSeek",
		"source":    lookupSource(s.Lookup),
		"args":      map[string]any{"keys": s.Keys},
	}
}

func (s LookupSeek) stream() PositionSetStream {
	return &lookupSeekStream{lookup: s.Lookup, keys: s.Keys}
}

type lookupSeekStream struct {
	lookup *lookup.Lookup
	keys   []any
	idx    int
}

func (s *lookupSeekStream) Next() (map[int]struct{}, bool, error) {
	if s.idx >= len(s.keys) {
		return nil, false, nil
	}
	k := s.keys[s.idx]
	s.idx++
	positions, found := s.lookup.Get(k)
	if !found {
		positions = map[int]struct{}{}
	}
	return positions, true, nil
}

// LookupRangeSeek yields position sets for keys in ascending order
// starting at StartKey (or from the beginning, if StartKeyPresent is
// false), stopping at the first key for which MatchFunc returns false.
// This short-circuit is what makes upper-bounded ranges efficient.
type LookupRangeSeek struct {
	Lookup          *lookup.Lookup
	StartKey        any
	StartKeyPresent bool
	StartInclusive  bool
	MatchFunc       func(key any) bool
}

func (s LookupRangeSeek) Describe() map[string]any {
	args := map[string]any{"start_inclusive": s.StartInclusive}
	if s.StartKeyPresent {
		args["start_key"] = s.StartKey
	}
	return map[string]any{
		"operation": "LookupRangeSeek",
		"source":    lookupSource(s.Lookup),
		"args":      args,
	}
}

func (s LookupRangeSeek) stream() PositionSetStream {
	return &lookupRangeSeekStream{seek: s}
}

type lookupRangeSeekStream struct {
	seek     LookupRangeSeek
	buffered []map[int]struct{}
	idx      int
	walked   bool
}

// ensureWalked performs the bounded tree walk on first use: it visits keys
// from the start position in ascending order and stops at the first key
// MatchFunc rejects, so the buffered set never exceeds what a fully lazy
// walk would have produced.
func (s *lookupRangeSeekStream) ensureWalked() {
	if s.walked {
		return
	}
	s.walked = true
	visit := func(_ any, positions map[int]struct{}) bool {
		s.buffered = append(s.buffered, positions)
		return true
	}
	matchAndVisit := func(key any, positions map[int]struct{}) bool {
		if !s.seek.MatchFunc(key) {
			return false
		}
		return visit(key, positions)
	}
	if s.seek.StartKeyPresent {
		s.seek.Lookup.AscendFrom(s.seek.StartKey, s.seek.StartInclusive, matchAndVisit)
	} else {
		s.seek.Lookup.Ascend(matchAndVisit)
	}
}

func (s *lookupRangeSeekStream) Next() (map[int]struct{}, bool, error) {
	s.ensureWalked()
	if s.idx >= len(s.buffered) {
		return nil, false, nil
	}
	positions := s.buffered[s.idx]
	s.idx++
	return positions, true, nil
}

func lookupSource(l *lookup.Lookup) map[string]any {
	return map[string]any{
		"type":       "lookup",
		"name":       l.Name,
		"definition": l.Pattern.String(),
	}
}

// Chain flattens a stream of position sets into a stream of positions. No
// deduplication is performed: within a single lookup, keys yield disjoint
// sets.
type Chain struct{}

func (Chain) Describe() map[string]any {
	return map[string]any{"operation": "Chain"}
}

func (c Chain) stream(src PositionSetStream) PositionStream {
	return &chainStream{src: src}
}

type chainStream struct {
	src     PositionSetStream
	current []int
	idx     int
}

func (s *chainStream) Next() (int, bool, error) {
	for {
		if s.idx < len(s.current) {
			p := s.current[s.idx]
			s.idx++
			return p, true, nil
		}
		set, ok, err := s.src.Next()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		s.current = s.current[:0]
		for p := range set {
			s.current = append(s.current, p)
		}
		s.idx = 0
	}
}

// FetchItemsByIndices maps a stream of positions to a stream of
// (position, element) pairs.
type FetchItemsByIndices struct{}

func (FetchItemsByIndices) Describe() map[string]any {
	return map[string]any{"operation": "FetchItemsByIndices"}
}

func (f FetchItemsByIndices) stream(host Host, src PositionStream) ItemStream {
	return &fetchStream{host: host, src: src}
}

type fetchStream struct {
	host Host
	src  PositionStream
}

func (s *fetchStream) Next() (Item, bool, error) {
	p, ok, err := s.src.Next()
	if err != nil || !ok {
		return Item{}, false, err
	}
	e, err := s.host.Get(p)
	if err != nil {
		return Item{}, false, err
	}
	return Item{Position: p, Element: e}, true, nil
}
