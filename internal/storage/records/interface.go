package records

import (
	"context"

	"github.com/evzhukov/lifevault/internal/models"
)

// Repository persists the categorized records attached to a profile. The
// SINGLE-cardinality cap is enforced here, at the storage boundary: writes
// consult the registry before insert and replace or reject accordingly.
type Repository interface {
	// Upsert writes a record. For singleton record types any existing
	// record of the same type on the profile is replaced.
	Upsert(ctx context.Context, profileID string, rec models.LifeVaultRecord) error

	// Insert writes a record, rejecting with ErrorSingletonViolation when
	// the type is singleton and the profile already holds one.
	Insert(ctx context.Context, profileID string, rec models.LifeVaultRecord) error

	// ListRaw returns the profile's records as decoded JSON values for
	// normalization, preserving insertion order.
	ListRaw(ctx context.Context, profileID string) ([]any, error)

	// Delete hard-removes one record.
	Delete(ctx context.Context, id string) error
}
