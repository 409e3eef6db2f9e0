package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/common"
	"github.com/avelichko/snipcli/internal/cryptox"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func testKey() []byte {
	key := make([]byte, cryptox.KeySize)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

func TestCredentialStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewCredentialStore(setupDB(t), testKey())
	ctx := context.Background()

	in := &models.Session{
		Token: "tok-abc",
		Profile: models.Profile{
			UserID: 5, Email: "a@b.c", FirstName: "Ann", SubscriptionTier: models.TierPremium,
		},
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.Token, out.Token)
	assert.Equal(t, in.Profile, out.Profile)
}

func TestCredentialStore_TokenSealedAtRest(t *testing.T) {
	db := setupDB(t)
	store := NewCredentialStore(db, testKey())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.Session{Token: "super-secret-token"}))

	var raw []byte
	require.NoError(t, db.QueryRow(
		`SELECT value FROM credentials WHERE key = ?`, common.TokenSlotKey).Scan(&raw))
	assert.NotContains(t, string(raw), "super-secret-token")
}

func TestCredentialStore_LoadEmptySlot(t *testing.T) {
	store := NewCredentialStore(setupDB(t), testKey())

	out, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCredentialStore_ClearRemovesEverything(t *testing.T) {
	store := NewCredentialStore(setupDB(t), testKey())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &models.Session{Token: "tok"}))
	require.NoError(t, store.Clear(ctx))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCredentialStore_WrongKeyFailsLoad(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewCredentialStore(db, testKey()).Save(ctx, &models.Session{Token: "tok"}))

	other := make([]byte, cryptox.KeySize)
	_, err := NewCredentialStore(db, other).Load(ctx)
	require.Error(t, err)
}
