// Package planner selects, for a given query, the first declared lookup
// whose pattern can serve it, and compiles the resulting seek-based plan
// or falls back to a full scan.
package planner

import (
	"github.com/cshenton/seqdex/compare"
	"github.com/cshenton/seqdex/lookup"
	"github.com/cshenton/seqdex/pattern"
	"github.com/cshenton/seqdex/plan"
)

// Planner is deterministic and holds no state: it is not a cost-based
// optimizer, so there is nothing to configure and nothing to cache.
type Planner struct{}

// New returns a ready-to-use Planner.
func New() *Planner { return &Planner{} }

// Plan implements the first-match procedure: it iterates lookups in their
// declared order and selects the first whose pattern handles query. Ties
// are broken by declaration order. The planner always returns a plan,
// falling back to a DataScan when no lookup matches.
func (p *Planner) Plan(query pattern.SearchPattern, lookups []*lookup.Lookup) *plan.QueryPlan {
	for _, l := range lookups {
		if !l.Handles(query) {
			continue
		}

		if rc, ok := query.Comparator.(compare.RangeComparator); ok {
			return plan.NewRangeSeekPlan(query, l, rc)
		}

		if pc, ok := query.Comparator.(compare.PointComparator); ok {
			return plan.NewPointSeekPlan(query, l, pc.Values())
		}
	}

	return plan.NewScanPlan(query)
}
