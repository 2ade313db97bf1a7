package plan

import (
	"github.com/cshenton/seqdex/compare"
	"github.com/cshenton/seqdex/lookup"
	"github.com/cshenton/seqdex/pattern"
)

// QueryPlan is an ordered, executable sequence of operations producing
// (position, element) pairs. It is always total: a plan with no matching
// lookup still executes as a DataScan.
type QueryPlan struct {
	Query      pattern.SearchPattern
	Operations []Operation

	build func(host Host) ItemStream
}

// Execute runs the plan against host, returning the resulting lazy
// stream. Output ordering is whatever the chosen operations emit; callers
// needing a stable order must sort the drained results themselves.
func (p *QueryPlan) Execute(host Host) ItemStream {
	return p.build(host)
}

// Describe renders the plan as a nested mapping suitable for
// introspection or pretty-printing.
func (p *QueryPlan) Describe() map[string]any {
	ops := make([]map[string]any, 0, len(p.Operations))
	for _, op := range p.Operations {
		ops = append(ops, op.Describe())
	}
	return map[string]any{
		"query":      p.Query.String(),
		"operations": ops,
	}
}

// NewScanPlan builds the fallback plan used when no candidate lookup
// handles query: a single DataScan.
func NewScanPlan(query pattern.SearchPattern) *QueryPlan {
	scan := DataScan{Pattern: query}
	return &QueryPlan{
		Query:      query,
		Operations: []Operation{scan},
		build: func(host Host) ItemStream {
			return scan.stream(host)
		},
	}
}

// NewPointSeekPlan builds a plan for a point comparator (Eq, In) served by
// l: LookupSeek over keys, flattened by Chain, materialized by
// FetchItemsByIndices.
func NewPointSeekPlan(query pattern.SearchPattern, l *lookup.Lookup, keys []any) *QueryPlan {
	seek := LookupSeek{Lookup: l, Keys: keys}
	chain := Chain{}
	fetch := FetchItemsByIndices{}
	return &QueryPlan{
		Query:      query,
		Operations: []Operation{seek, chain, fetch},
		build: func(host Host) ItemStream {
			return fetch.stream(host, chain.stream(seek.stream()))
		},
	}
}

// NewRangeSeekPlan builds a plan for a range comparator (Gt, Ge, Lt, Le)
// served by l: LookupRangeSeek starting at rc's start key, flattened by
// Chain, materialized by FetchItemsByIndices.
func NewRangeSeekPlan(query pattern.SearchPattern, l *lookup.Lookup, rc compare.RangeComparator) *QueryPlan {
	startKey, present := rc.StartKey()
	seek := LookupRangeSeek{
		Lookup:          l,
		StartKey:        startKey,
		StartKeyPresent: present,
		StartInclusive:  rc.StartInclusive(),
		MatchFunc:       rc.Matches,
	}
	chain := Chain{}
	fetch := FetchItemsByIndices{}
	return &QueryPlan{
		Query:      query,
		Operations: []Operation{seek, chain, fetch},
		build: func(host Host) ItemStream {
			return fetch.stream(host, chain.stream(seek.stream()))
		},
	}
}
