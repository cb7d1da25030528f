package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sanakirja/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var pageCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pageCount)
		require.NoError(t, err)

		var lookupCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lookups").Scan(&lookupCount)
		require.NoError(t, err)
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/cache.db"
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		require.NoError(t, db.Close())
	})

	t.Run("records schema version and keeps it on reopen", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/cache.db"
		ctx := context.Background()

		for range 2 {
			db := sqlite.NewDB(dbPath)
			require.NoError(t, db.Open())

			var version int
			require.NoError(t, db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
			require.NoError(t, db.Close())
			assert.Equal(t, sqlite.SchemaVersion, version)
		}
	})

	t.Run("configures connection for cache use", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/cache db.sqlite")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		var busyTimeout, autoVacuum int
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busyTimeout))
		require.NoError(t, db.QueryRowContext(ctx, "PRAGMA auto_vacuum").Scan(&autoVacuum))
		assert.Equal(t, sqlite.BusyTimeout, busyTimeout)
		assert.Equal(t, 2, autoVacuum, "incremental")
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
