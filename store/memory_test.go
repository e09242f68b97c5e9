// file: store/memory_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestMemory_AddResolvesServerTimestamp(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	m.SetClock(fixedClock(start))

	id, err := m.Add(ctx, "reports", map[string]interface{}{"name": "Sam", "timestamp": ServerTimestamp})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := m.Get(ctx, "reports", id)
	require.NoError(t, err)
	assert.Equal(t, "Sam", rec.Fields["name"])
	assert.Equal(t, start.Add(time.Second), rec.Fields["timestamp"])
}

func TestMemory_QueryOrderFilterLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetClock(fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	for _, typ := range []string{"bullying", "incident", "bullying", "other", "bullying"} {
		_, err := m.Add(ctx, "reports", map[string]interface{}{"type": typ, "timestamp": ServerTimestamp})
		require.NoError(t, err)
	}

	all, err := m.Query(ctx, "reports", Query{OrderBy: "timestamp", Descending: true})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		prev := all[i-1].Fields["timestamp"].(time.Time)
		cur := all[i].Fields["timestamp"].(time.Time)
		assert.True(t, prev.After(cur), "newest first")
	}

	bullying, err := m.Query(ctx, "reports", Query{
		OrderBy:    "timestamp",
		Descending: true,
		Where:      []Filter{{Field: "type", Value: "bullying"}},
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Len(t, bullying, 2)
	for _, r := range bullying {
		assert.Equal(t, "bullying", r.Fields["type"])
	}
}

func TestMemory_QueryEmptyCollection(t *testing.T) {
	recs, err := NewMemory().Query(context.Background(), "missing", Query{})
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMemory_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.Add(ctx, "reports", map[string]interface{}{"status": "New", "name": "Sam"})
	require.NoError(t, err)

	require.NoError(t, m.Update(ctx, "reports", id, map[string]interface{}{"status": "Reviewed"}))
	rec, err := m.Get(ctx, "reports", id)
	require.NoError(t, err)
	assert.Equal(t, "Reviewed", rec.Fields["status"])
	assert.Equal(t, "Sam", rec.Fields["name"], "update merges")

	assert.ErrorIs(t, m.Update(ctx, "reports", "nope", map[string]interface{}{"status": "New"}), ErrNotFound)

	require.NoError(t, m.Delete(ctx, "reports", id))
	_, err = m.Get(ctx, "reports", id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, m.Delete(ctx, "reports", id), "delete is idempotent")
}

func TestMemory_SetReplaces(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "users", "u1", map[string]interface{}{"role": "student", "email": "a@b.c"}))
	require.NoError(t, m.Set(ctx, "users", "u1", map[string]interface{}{"role": "admin"}))

	rec, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"role": "admin"}, rec.Fields)

	assert.Error(t, m.Set(ctx, "users", "", nil))
	assert.Error(t, m.Set(ctx, "users", "a/b", nil))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "users", "u1", map[string]interface{}{"role": "student"}))

	rec, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	rec.Fields["role"] = "admin"

	again, err := m.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "student", again.Fields["role"])
}

func TestCompareValues(t *testing.T) {
	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -1, compareValues(early, early.Add(time.Hour)))
	assert.Equal(t, 0, compareValues(int64(3), 3))
	assert.Equal(t, 1, compareValues(4.5, int64(4)))
	assert.Equal(t, -1, compareValues(nil, "a"))
	assert.Equal(t, 0, compareValues("New", "New"))
}
