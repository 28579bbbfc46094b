package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavoritesDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE favorites (track_id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	return db
}

func favorites(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM favorites`).Scan(&n))
	return n
}

func insert(ids ...string) func(*sql.Tx) error {
	return func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.Exec(`INSERT INTO favorites (track_id) VALUES (?)`, id); err != nil {
				return err
			}
		}
		return nil
	}
}

func TestWithTx_Commits(t *testing.T) {
	db := newFavoritesDB(t)

	require.NoError(t, WithTx(context.Background(), db, insert("rain", "ocean", "forest")))
	assert.Equal(t, 3, favorites(t, db))
}

func TestWithTx_ErrorRollsBack(t *testing.T) {
	db := newFavoritesDB(t)
	abort := errors.New("abort")

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		require.NoError(t, insert("rain", "ocean")(tx))
		return abort
	})
	require.ErrorIs(t, err, abort)
	assert.Zero(t, favorites(t, db))
}

func TestWithTx_ConstraintFailureRollsBackEarlierRows(t *testing.T) {
	db := newFavoritesDB(t)

	err := WithTx(context.Background(), db, insert("rain", "ocean", "rain"))
	require.Error(t, err)
	assert.Zero(t, favorites(t, db))
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	db := newFavoritesDB(t)

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(tx *sql.Tx) error {
			require.NoError(t, insert("rain")(tx))
			panic("boom")
		})
	})
	assert.Zero(t, favorites(t, db))
	require.NoError(t, WithTx(context.Background(), db, insert("ocean")), "connection is usable again")
}

func TestWithTx_CancelledContext(t *testing.T) {
	db := newFavoritesDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin")
	assert.False(t, called)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "nested", "eko.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
