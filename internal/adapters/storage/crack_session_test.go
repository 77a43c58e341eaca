package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcalzada-xor/wpacrack/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrackSessionStore_SaveAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewCrackSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	rec := ports.SessionRecord{
		ID:         "job-1",
		ESSID:      "TestNet",
		BSSID:      "aa:bb:cc:dd:ee:ff",
		Workers:    4,
		Candidates: 1000,
		Found:      true,
		Passphrase: "correcthorse",
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
	}
	require.NoError(t, store.SaveSession(ctx, rec))

	got, err := store.GetSession(ctx, "job-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ESSID, got.ESSID)
	assert.Equal(t, rec.Passphrase, got.Passphrase)
	assert.True(t, got.Found)
}

func TestCrackSessionStore_GetMissingReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewCrackSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetSession(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCrackSessionStore_ListSessionsOrdersNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewCrackSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Now()
	require.NoError(t, store.SaveSession(ctx, ports.SessionRecord{ID: "a", ESSID: "Net1", StartedAt: base.Add(-time.Hour)}))
	require.NoError(t, store.SaveSession(ctx, ports.SessionRecord{ID: "b", ESSID: "Net2", StartedAt: base}))

	sessions, err := store.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "b", sessions[0].ID)
	assert.Equal(t, "a", sessions[1].ID)
}

func TestCrackSessionStore_ListSessionsRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := NewCrackSessionStore(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveSession(ctx, ports.SessionRecord{ID: string(rune('a' + i)), StartedAt: time.Now()}))
	}

	sessions, err := store.ListSessions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestCrackSessionStore_ImplementsSessionStore(t *testing.T) {
	var _ ports.SessionStore = (*CrackSessionStore)(nil)
}
