package profile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shopmind/internal/intent"
	"shopmind/internal/style"
)

func sampleProfile() style.Profile {
	p := style.DefaultProfile()
	p.MessagesSeen = 7
	p.VerbosityPreference = 0.62
	p.FormalityPreference = 0.31
	p.MathAffinity = 0.8
	p.FrustrationLevel = 0.12
	p.IntentCounts[intent.ProductSearch] = 4
	p.IntentCounts[intent.Pricing] = 3
	return p
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	loaded, err := store.Load(ctx, "nobody")
	require.NoError(t, err)
	require.Equal(t, style.DefaultProfile(), loaded)

	saved := sampleProfile()
	require.NoError(t, store.Save(ctx, "alice", saved))

	loaded, err = store.Load(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestMemoryStoreCloneIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	saved := sampleProfile()
	require.NoError(t, store.Save(ctx, "alice", saved))

	// Mutating the caller's copy after Save must not leak into the store,
	// and mutating a loaded copy must not leak either.
	saved.IntentCounts[intent.ProductSearch] = 99

	loaded, _ := store.Load(ctx, "alice")
	require.Equal(t, 4, loaded.IntentCounts[intent.ProductSearch])

	loaded.IntentCounts[intent.Pricing] = 50
	again, _ := store.Load(ctx, "alice")
	require.Equal(t, 3, again.IntentCounts[intent.Pricing])
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	loaded, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	require.Equal(t, style.DefaultProfile(), loaded)

	saved := sampleProfile()
	require.NoError(t, store.Save(ctx, "alice", saved))
	require.NoError(t, store.Save(ctx, "alice", saved)) // upsert is idempotent

	loaded, err = store.Load(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSQLiteStoreMalformedRow(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	_, err = store.db.ExecContext(ctx,
		`INSERT INTO profiles (profile_id, profile, updated_at) VALUES ('bad', 'not json', 0)`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "bad")
	require.NoError(t, err)
	require.Equal(t, style.DefaultProfile(), loaded)
}

func TestSQLiteStorePartialRow(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	// Rows written by older builds may carry only some fields; the absent
	// ones normalize to defaults.
	_, err = store.db.ExecContext(ctx,
		`INSERT INTO profiles (profile_id, profile, updated_at)
		 VALUES ('old', '{"messagesSeen":3,"mathAffinity":0.9}', 0)`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "old")
	require.NoError(t, err)
	require.Equal(t, 3, loaded.MessagesSeen)
	require.Equal(t, 0.9, loaded.MathAffinity)
	require.Equal(t, 0.5, loaded.VerbosityPreference)
	require.Equal(t, 0.0, loaded.FrustrationLevel)
}
