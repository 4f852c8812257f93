package localstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/devicelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Mark(ctx, "device-a", "2026-03-09", devicelock.KindIn))

	state, err := store.Get(ctx, "device-a", "2026-03-09")
	require.NoError(t, err)
	assert.True(t, state.CheckedIn)
	assert.False(t, state.CheckedOut)

	// A new store over the same directory simulates a process restart.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	state, err = reopened.Get(ctx, "device-a", "2026-03-09")
	require.NoError(t, err)
	assert.True(t, state.CheckedIn)
}

func TestLockIsPerCalendarDay(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Mark(ctx, "device-a", "2026-03-09", devicelock.KindIn))

	state, err := store.Get(ctx, "device-a", "2026-03-10")
	require.NoError(t, err)
	assert.False(t, state.CheckedIn, "yesterday's lock must not carry over")
}

func TestLockIsPerDevice(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Mark(ctx, "device-a", "2026-03-09", devicelock.KindOut))

	state, err := store.Get(ctx, "device-b", "2026-03-09")
	require.NoError(t, err)
	assert.False(t, state.CheckedOut)
}

func TestCorruptLockFailsOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lock_device-a.json"), []byte("{not json"), 0644))

	state, err := store.Get(ctx, "device-a", "2026-03-09")
	require.NoError(t, err, "corrupt state must not block the user")
	assert.False(t, state.CheckedIn)
	assert.False(t, state.CheckedOut)
}

func TestMarkReplacesStaleDay(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Mark(ctx, "device-a", "2026-03-09", devicelock.KindIn))
	require.NoError(t, store.Mark(ctx, "device-a", "2026-03-10", devicelock.KindOut))

	state, err := store.Get(ctx, "device-a", "2026-03-10")
	require.NoError(t, err)
	assert.False(t, state.CheckedIn, "old day's IN flag must not leak into the new day")
	assert.True(t, state.CheckedOut)
}

func TestLastUsernameRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.LastUsername(ctx, "device-a")
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, store.RememberUsername(ctx, "device-a", "guru1"))
	name, err = store.LastUsername(ctx, "device-a")
	require.NoError(t, err)
	assert.Equal(t, "guru1", name)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeID("a/b\\c"))
	assert.Equal(t, "unknown", sanitizeID(""))
	// Dots survive but separators never do, so "lock_" + id cannot traverse.
	assert.Equal(t, ".._.", sanitizeID("../."))
}
