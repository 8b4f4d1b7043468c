package profiles

import (
	"context"

	"github.com/evzhukov/lifevault/internal/models"
)

// Repository persists profiles as raw JSON bodies keyed by kind. The read
// side deliberately returns untyped values: everything leaving this store
// goes through schema normalization before any typed consumer sees it.
type Repository interface {
	// Save upserts one profile body by id.
	Save(ctx context.Context, kind models.Kind, id string, body []byte) error

	// ListRaw returns the stored profile list of a kind as decoded JSON
	// values in insertion order. Bodies that fail to decode come back as
	// nil elements; normalization drops them.
	ListRaw(ctx context.Context, kind models.Kind) ([]any, error)

	// Delete removes a profile. Hard remove, no tombstone.
	Delete(ctx context.Context, id string) error
}
