// Package storage opens the local vault database, applies embedded goose
// migrations, and hands out repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/evzhukov/lifevault/internal/storage/documents"
	"github.com/evzhukov/lifevault/internal/storage/metadata"
	"github.com/evzhukov/lifevault/internal/storage/migrations"
	"github.com/evzhukov/lifevault/internal/storage/profiles"
	"github.com/evzhukov/lifevault/internal/storage/records"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the SQLite-backed stores sharing one database.
type Repositories struct {
	Profiles  profiles.Repository
	Records   records.Repository
	Documents documents.Repository
	Metadata  metadata.Repository
	DB        *sql.DB
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the vault database at dsn, migrates it, and returns the
// repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Profiles:  profiles.NewSQLiteRepository(db),
		Records:   records.NewSQLiteRepository(db),
		Documents: documents.NewSQLiteRepository(db),
		Metadata:  metadata.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
