package models

import (
	"time"

	"github.com/evzhukov/lifevault/internal/registry"
)

// Timestamps embeds the audit pair shared by all entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LifeVaultRecord is one categorized record belonging to a profile.
// Cardinality rules for RecordType live in the registry; the storage layer
// consults registry.IsSingletonType before insert.
type LifeVaultRecord struct {
	ID         string              `json:"id"`
	RecordType registry.RecordType `json:"recordType"`
	Title      string              `json:"title,omitempty"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Payload    map[string]any      `json:"payload"`
}
