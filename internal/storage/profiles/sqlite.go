package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/dbx"
	"github.com/evzhukov/lifevault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a profile body by id. The kind column is updated on conflict
// as well, though in practice a profile never changes kind.
func (r *SQLiteRepository) Save(ctx context.Context, kind models.Kind, id string, body []byte) error {
	query := `INSERT INTO profiles (id, kind, body) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET kind = excluded.kind, body = excluded.body`
	_, err := r.db.ExecContext(ctx, query, id, string(kind), string(body))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// ListRaw returns decoded bodies for all profiles of a kind, in rowid order.
func (r *SQLiteRepository) ListRaw(ctx context.Context, kind models.Kind) ([]any, error) {
	query := `SELECT body FROM profiles WHERE kind = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to select profiles: %w", err)
	}
	defer rows.Close()

	var result []any
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			// A corrupt body is not this layer's problem to repair: pass
			// a nil element along so normalization drops it.
			v = nil
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete hard-removes one profile. It expects exactly one row to be affected.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
