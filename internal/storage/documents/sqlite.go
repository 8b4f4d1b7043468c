package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/dbx"
	"github.com/evzhukov/lifevault/internal/models"
)

// SQLiteRepository implements Repository over a *sql.DB. SetOcrResult is a
// read-modify-write and runs inside a transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a document. The sha256 column is denormalized from the body
// so dedup lookups do not scan JSON.
func (r *SQLiteRepository) Save(ctx context.Context, doc models.VaultDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	query := `INSERT INTO documents (id, sha256, body) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET sha256 = excluded.sha256, body = excluded.body`
	if _, err := r.db.ExecContext(ctx, query, doc.ID, doc.SHA256, string(body)); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// ListRaw returns decoded bodies of all documents in rowid order.
func (r *SQLiteRepository) ListRaw(ctx context.Context) ([]any, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT body FROM documents ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
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

// FindIDsBySHA256 returns ids of documents with the given content hash.
// An empty hash never matches anything even though the column defaults to "".
func (r *SQLiteRepository) FindIDsBySHA256(ctx context.Context, sum string) ([]string, error) {
	if sum == "" {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM documents WHERE sha256 = ?`, sum)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents by hash: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetOcrResult stores a fresh extraction result into the document's current
// slot, rebuilding the stored body from the decoded document.
func (r *SQLiteRepository) SetOcrResult(ctx context.Context, id string, result models.DocumentOcrResult) error {
	if err := result.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid ocr result: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var body string
		row := tx.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id)
		if err := row.Scan(&body); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("failed to load document: %w", err)
		}

		var doc models.VaultDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}
		doc = doc.WithOcrResult(result)

		updated, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE documents SET body = ? WHERE id = ?`, string(updated), id); err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		return nil
	})
}

// Delete hard-removes one document.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
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
