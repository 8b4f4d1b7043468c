package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/dbx"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/registry"
)

// SQLiteRepository implements Repository over a *sql.DB. Upsert runs a
// delete-then-insert inside a transaction for singleton types, so it needs
// the full DB handle rather than a DBTX.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func marshalRecord(rec models.LifeVaultRecord) (string, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	return string(body), nil
}

// Upsert writes a record, replacing the profile's existing record of the
// same type when the registry marks the type singleton.
func (r *SQLiteRepository) Upsert(ctx context.Context, profileID string, rec models.LifeVaultRecord) error {
	body, err := marshalRecord(rec)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if registry.IsKnownType(rec.RecordType) && registry.IsSingletonType(rec.RecordType) {
			_, err := tx.ExecContext(ctx,
				`DELETE FROM records WHERE profile_id = ? AND record_type = ? AND id <> ?`,
				profileID, string(rec.RecordType), rec.ID)
			if err != nil {
				return fmt.Errorf("failed to replace singleton record: %w", err)
			}
		}
		return upsertRow(ctx, tx, profileID, rec, body)
	})
}

// Insert writes a record but rejects a second record of a singleton type.
func (r *SQLiteRepository) Insert(ctx context.Context, profileID string, rec models.LifeVaultRecord) error {
	body, err := marshalRecord(rec)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if registry.IsKnownType(rec.RecordType) && registry.IsSingletonType(rec.RecordType) {
			var n int
			row := tx.QueryRowContext(ctx,
				`SELECT COUNT(1) FROM records WHERE profile_id = ? AND record_type = ? AND id <> ?`,
				profileID, string(rec.RecordType), rec.ID)
			if err := row.Scan(&n); err != nil {
				return fmt.Errorf("failed to count singleton records: %w", err)
			}
			if n > 0 {
				return common.ErrorSingletonViolation
			}
		}
		return upsertRow(ctx, tx, profileID, rec, body)
	})
}

func upsertRow(ctx context.Context, tx dbx.DBTX, profileID string, rec models.LifeVaultRecord, body string) error {
	query := `INSERT INTO records (id, profile_id, record_type, body) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET profile_id = excluded.profile_id,
				record_type = excluded.record_type,
				body = excluded.body`
	if _, err := tx.ExecContext(ctx, query, rec.ID, profileID, string(rec.RecordType), body); err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// ListRaw returns decoded record bodies for a profile in rowid order.
func (r *SQLiteRepository) ListRaw(ctx context.Context, profileID string) ([]any, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT body FROM records WHERE profile_id = ? ORDER BY rowid`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
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
			v = nil
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete hard-removes one record.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
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
