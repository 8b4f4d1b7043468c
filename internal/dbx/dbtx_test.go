package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupDB opens a shared in-memory vault with a minimal records table, the
// shape WithTx is used with by the storage layer.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:lifevault_tx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		record_type TEXT NOT NULL,
		payload TEXT NOT NULL DEFAULT '{}'
	);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM records;`)
	require.NoError(t, err)
	return db
}

func countRecords(t *testing.T, db *sql.DB, recordType string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM records WHERE record_type = ?`, recordType).Scan(&n))
	return n
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO records(id, record_type) VALUES ('rec-1', 'trips')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRecords(t, db, "trips"), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	// A replace is a delete followed by an insert; a failure after the
	// delete must leave the original row untouched.
	_, err := db.Exec(`INSERT INTO records(id, record_type) VALUES ('rec-old', 'passport')`)
	require.NoError(t, err)

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `DELETE FROM records WHERE record_type = 'passport'`)
		require.NoError(t, e)
		_, e = tx.ExecContext(ctx, `INSERT INTO records(id, record_type) VALUES ('rec-new', 'passport')`)
		require.NoError(t, e)
		return errors.New("replace failed")
	})
	require.Error(t, err)

	require.Equal(t, 1, countRecords(t, db, "passport"), "must rollback when fn returns error")
	var id string
	require.NoError(t, db.QueryRow(`SELECT id FROM records WHERE record_type = 'passport'`).Scan(&id))
	require.Equal(t, "rec-old", id, "original row must survive the rollback")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRecords(t, db, "trips"), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO records(id, record_type) VALUES ('rec-panic', 'trips')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close()) // break the connection

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}
