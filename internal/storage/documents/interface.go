package documents

import (
	"context"

	"github.com/evzhukov/lifevault/internal/models"
)

// Repository persists vault documents. As with profiles, reads come back
// untyped so schema normalization stays the single gatekeeper.
type Repository interface {
	// Save upserts one document.
	Save(ctx context.Context, doc models.VaultDocument) error

	// ListRaw returns all stored documents as decoded JSON values.
	ListRaw(ctx context.Context) ([]any, error)

	// FindIDsBySHA256 returns ids of documents carrying the given content
	// hash, for ingest-time de-duplication.
	FindIDsBySHA256(ctx context.Context, sum string) ([]string, error)

	// SetOcrResult replaces the document's current extraction result slot.
	SetOcrResult(ctx context.Context, id string, result models.DocumentOcrResult) error

	// Delete hard-removes one document.
	Delete(ctx context.Context, id string) error
}
