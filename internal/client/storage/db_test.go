package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "creds.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO credentials (key, value) VALUES (?, ?)`, "auth_token", []byte("x"))
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestInitDatabase_Reopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "creds.db")

	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// second open must not fail on already-applied migrations
	db, err = InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
