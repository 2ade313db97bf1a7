package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	inserted []int
	replaced []int
	deleted  []int
}

func (o *recordingObserver) OnInsert(position int, _ any) error {
	o.inserted = append(o.inserted, position)
	return nil
}

func (o *recordingObserver) OnReplace(position int, _, _ any) error {
	o.replaced = append(o.replaced, position)
	return nil
}

func (o *recordingObserver) OnDelete(position int) error {
	o.deleted = append(o.deleted, position)
	return nil
}

func TestListAppendNotifiesObservers(t *testing.T) {
	l := NewList()
	obs := &recordingObserver{}
	l.RegisterObserver(obs)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))

	assert.Equal(t, []int{0, 1}, obs.inserted)
	assert.Equal(t, 2, l.Len())
}

func TestListGetOutOfRange(t *testing.T) {
	l := NewList()
	_, err := l.Get(0)
	require.Error(t, err)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
}

func TestListSetNotifiesReplace(t *testing.T) {
	l := NewList()
	require.NoError(t, l.Append("a"))
	obs := &recordingObserver{}
	l.RegisterObserver(obs)

	require.NoError(t, l.Set(0, "b"))
	assert.Equal(t, []int{0}, obs.replaced)

	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestListDeleteAtNotifiesAfterRemoval(t *testing.T) {
	l := NewList()
	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))
	require.NoError(t, l.Append("c"))

	obs := &recordingObserver{}
	l.RegisterObserver(obs)

	require.NoError(t, l.DeleteAt(1))
	assert.Equal(t, []int{1}, obs.deleted)
	assert.Equal(t, 2, l.Len())

	v, err := l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestListUnregisterObserver(t *testing.T) {
	l := NewList()
	obs := &recordingObserver{}
	l.RegisterObserver(obs)
	l.UnregisterObserver(obs)

	require.NoError(t, l.Append("a"))
	assert.Empty(t, obs.inserted)
}
