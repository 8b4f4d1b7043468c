// Package remote defines the typed boundary to the vault backend. The core
// only depends on the Client interface; transport specifics stay behind it.
package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/registry"
)

// VaultInfo describes a remote vault container.
type VaultInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntityInfo describes a remotely created profile entity.
type EntityInfo struct {
	ID        string      `json:"id"`
	Kind      models.Kind `json:"kind"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UpsertResult is the backend's answer to a record upsert.
type UpsertResult struct {
	ID         string              `json:"id"`
	RecordType registry.RecordType `json:"recordType"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Record round-trips the result into the domain record shape. Only the
// fields the backend owns are populated; payload and title stay local.
func (r UpsertResult) Record() models.LifeVaultRecord {
	return models.LifeVaultRecord{
		ID:         r.ID,
		RecordType: r.RecordType,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Client is the remote vault API. All errors from the transport propagate
// wrapped; retry/backoff policy beyond the transport's own is the caller's.
type Client interface {
	// Ping checks backend reachability.
	Ping(ctx context.Context) error

	// CreateVault creates a vault container for the household.
	CreateVault(ctx context.Context, name string) (*VaultInfo, error)

	// CreateEntity registers a profile entity under a vault. The body is
	// the canonical schema-version JSON of the profile.
	CreateEntity(ctx context.Context, vaultID string, kind models.Kind, body json.RawMessage) (*EntityInfo, error)

	// UpsertRecord pushes one record; the result must round-trip into
	// models.LifeVaultRecord.
	UpsertRecord(ctx context.Context, profileID string, rec models.LifeVaultRecord) (*UpsertResult, error)

	// Close releases transport resources.
	Close() error
}
