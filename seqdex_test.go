package seqdex

import (
	"sort"
	"testing"

	"github.com/cshenton/seqdex/pattern"
	"github.com/cshenton/seqdex/plan"
	"github.com/cshenton/seqdex/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCycle(t *testing.T, values []int, length int) *sequence.List {
	t.Helper()
	l := sequence.NewList()
	for i := 0; i < length; i++ {
		require.NoError(t, l.Append(values[i%len(values)]))
	}
	return l
}

func drain(t *testing.T, s plan.ItemStream) []plan.Item {
	t.Helper()
	var items []plan.Item
	for {
		item, ok, err := s.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items
}

func TestScenarioS1(t *testing.T) {
	host := sequence.NewList()
	for i := 1; i <= 9; i++ {
		require.NoError(t, host.Append(i))
	}
	dex := New(host)
	_, err := dex.CreateLookup("sample", nil)
	require.NoError(t, err)

	p := dex.Plan(pattern.NewBuilder().Eq(2))
	var names []string
	for _, op := range p.Operations {
		names = append(names, op.Describe()["operation"].(string))
	}
	assert.Equal(t, []string{"LookupSeek", "Chain", "FetchItemsByIndices"}, names)

	items := drain(t, dex.Search(pattern.NewBuilder().Eq(2)))
	assert.Equal(t, []plan.Item{{Position: 1, Element: 2}}, items)
}

func TestScenarioS2(t *testing.T) {
	host := seedCycle(t, []int{1, 2, 3, 4, 5, 6, 7}, 20)
	dex := New(host)
	_, err := dex.CreateLookup("sample", nil)
	require.NoError(t, err)

	items := drain(t, dex.Search(pattern.NewBuilder().In(4, 7)))
	expected := []plan.Item{
		{Position: 3, Element: 4}, {Position: 6, Element: 7}, {Position: 10, Element: 4},
		{Position: 13, Element: 7}, {Position: 17, Element: 4},
	}
	sort.Slice(expected, func(i, j int) bool { return expected[i].Position < expected[j].Position })
	assert.Equal(t, expected, items)
}

func TestScenarioS3And4FilteredLookup(t *testing.T) {
	host := seedCycle(t, []int{1, 2, 3, 4, 5, 6, 7}, 20)
	dex := New(host)
	_, err := dex.CreateLookup("filtered", pattern.NewBuilder().Gt(5))
	require.NoError(t, err)

	s3 := dex.Plan(pattern.NewBuilder().Eq(5))
	assert.Equal(t, "DataScan", s3.Operations[0].Describe()["operation"])
	s3Items := drain(t, dex.Search(pattern.NewBuilder().Eq(5)))
	assert.Equal(t, []plan.Item{
		{Position: 4, Element: 5}, {Position: 11, Element: 5}, {Position: 18, Element: 5},
	}, s3Items)

	s4 := dex.Plan(pattern.NewBuilder().Eq(6))
	assert.Equal(t, "LookupSeek", s4.Operations[0].Describe()["operation"])
	s4Items := drain(t, dex.Search(pattern.NewBuilder().Eq(6)))
	assert.Equal(t, []plan.Item{
		{Position: 5, Element: 6}, {Position: 12, Element: 6}, {Position: 19, Element: 6},
	}, s4Items)
}

func TestScenarioS5KeyedLookupWithSkips(t *testing.T) {
	host := sequence.NewList()
	require.NoError(t, host.Append(map[string]any{"a": 1, "b": 2}))
	require.NoError(t, host.Append(map[string]any{"b": 3}))
	require.NoError(t, host.Append(map[string]any{"a": 2, "b": 4}))
	require.NoError(t, host.Append(map[string]any{"a": 3, "b": 5}))

	dex := New(host)
	_, err := dex.CreateLookup("by_a", pattern.NewBuilder().Key("a").Indexer())
	require.NoError(t, err)

	items := drain(t, dex.Search(pattern.NewBuilder().Key("a").In(2, 3)))
	assert.Equal(t, []plan.Item{
		{Position: 2, Element: map[string]any{"a": 2, "b": 4}},
		{Position: 3, Element: map[string]any{"a": 3, "b": 5}},
	}, items)
}

func TestScenarioS6DeleteRenumbersAcrossLookups(t *testing.T) {
	host := sequence.NewList()
	for _, v := range []int{95, 96, 97, 98, 99} {
		require.NoError(t, host.Append(v))
	}

	dex := New(host)
	_, err := dex.CreateLookup("basic", nil)
	require.NoError(t, err)
	_, err = dex.CreateLookup("filtered", pattern.NewBuilder().Gt(97))
	require.NoError(t, err)

	require.NoError(t, host.DeleteAt(3)) // removes value 98

	basicItems := drain(t, dex.Search(pattern.NewBuilder().Eq(99)))
	assert.Equal(t, []plan.Item{{Position: 3, Element: 99}}, basicItems)

	// Drop "basic" so the same query is served by "filtered".
	require.NoError(t, dex.DropLookup("basic"))
	filteredItems := drain(t, dex.Search(pattern.NewBuilder().Eq(99)))
	assert.Equal(t, []plan.Item{{Position: 3, Element: 99}}, filteredItems)
}

func TestCreateLookupRejectsDuplicateName(t *testing.T) {
	host := sequence.NewList()
	dex := New(host)
	_, err := dex.CreateLookup("sample", nil)
	require.NoError(t, err)

	_, err = dex.CreateLookup("sample", nil)
	require.Error(t, err)
	var dup *DuplicateLookupError
	require.ErrorAs(t, err, &dup)
}

func TestDropLookupRejectsUnknownName(t *testing.T) {
	host := sequence.NewList()
	dex := New(host)

	err := dex.DropLookup("missing")
	require.Error(t, err)
	var unknown *UnknownLookupError
	require.ErrorAs(t, err, &unknown)
}

func TestDropLookupStopsReceivingMutations(t *testing.T) {
	host := sequence.NewList()
	require.NoError(t, host.Append(1))
	dex := New(host)
	l, err := dex.CreateLookup("sample", nil)
	require.NoError(t, err)
	require.NoError(t, dex.DropLookup("sample"))

	require.NoError(t, host.Append(2))

	// The dropped lookup was not notified of the append.
	_, indexed := l.Get(2)
	assert.False(t, indexed)

	// With the lookup dropped, the only candidate vanishes and Eq(2) falls
	// back to a scan, which still finds the freshly appended element.
	p := dex.Plan(pattern.NewBuilder().Eq(2))
	assert.Equal(t, "DataScan", p.Operations[0].Describe()["operation"])
}

func TestOnEventFiresForLifecycleAndPlanning(t *testing.T) {
	host := sequence.NewList()
	require.NoError(t, host.Append(1))
	dex := New(host)

	var names []string
	dex.OnEvent(func(e Event) { names = append(names, e.Name) })

	_, err := dex.CreateLookup("sample", nil)
	require.NoError(t, err)
	dex.Plan(pattern.NewBuilder().Eq(1))
	require.NoError(t, dex.DropLookup("sample"))

	assert.Equal(t, []string{"lookup.created", "query.planned", "lookup.dropped"}, names)
}
