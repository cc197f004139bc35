package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an initialized in-memory store.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	st := newUninitializedStore(t)
	require.NoError(t, st.Initialize(context.Background()))
	return st
}

// newUninitializedStore opens an in-memory store without running
// Initialize, so its gate stays false.
func newUninitializedStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(":memory:", NewGate())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func countRows(t *testing.T, st *Store, table string) int {
	t.Helper()

	var n int
	require.NoError(t, st.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestInitializeFlipsGate(t *testing.T) {
	st := newUninitializedStore(t)
	assert.False(t, st.gate.Ready())

	require.NoError(t, st.Initialize(context.Background()))
	assert.True(t, st.gate.Ready())
}

func TestInitializeIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Initialize(ctx))
	require.NoError(t, st.Initialize(ctx))

	assert.Equal(t, len(seedCatalog), countRows(t, st, "Productos"))
}

func TestGateSubscribe(t *testing.T) {
	gate := NewGate()

	ch := gate.Subscribe()
	assert.False(t, <-ch)

	gate.set(true)
	assert.True(t, <-ch)
	assert.True(t, gate.Ready())
}

func TestGateSubscribeKeepsLatestValue(t *testing.T) {
	gate := NewGate()
	ch := gate.Subscribe()

	gate.set(true)
	gate.set(false)
	gate.set(true)

	// The subscriber never read in between; only the latest value is kept.
	assert.True(t, <-ch)
}
