package services

import (
	"context"
	"fmt"
	"time"

	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/registry"
	"github.com/evzhukov/lifevault/internal/schema"
	"github.com/evzhukov/lifevault/internal/storage/records"
	"github.com/google/uuid"
)

// RecordService reads and writes the categorized records of a profile.
type RecordService struct {
	repo records.Repository
	log  logging.Logger
}

func NewRecordService(repo records.Repository, log logging.Logger) *RecordService {
	return &RecordService{repo: repo, log: log}
}

// List returns a profile's records. Elements that fail normalization, and
// records whose type is no longer in the registry, are dropped with a
// warning rather than surfaced as errors.
func (s *RecordService) List(ctx context.Context, profileID string) ([]models.LifeVaultRecord, error) {
	raw, err := s.repo.ListRaw(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	var dropped int
	n := &schema.Normalizer{
		OnDrop: func(entity string, index int, reason string) {
			dropped++
			s.log.Warn(ctx, "dropped malformed element", "entity", entity, "index", index, "reason", reason)
		},
	}

	out := make([]models.LifeVaultRecord, 0, len(raw))
	for _, r := range n.Records(raw) {
		rec := models.RecordFromSchema(r)
		if !registry.IsKnownType(rec.RecordType) {
			dropped++
			s.log.Warn(ctx, "dropped record of unknown type", "recordType", rec.RecordType, "id", rec.ID)
			continue
		}
		out = append(out, rec)
	}
	if dropped > 0 {
		s.log.Warn(ctx, "normalization dropped elements", "entity", schema.EntityRecord, "dropped", dropped)
	}
	return out, nil
}

// Add creates a record of the given type on a profile, starting from the
// registry's default payload when none is supplied. Singleton types replace
// the profile's existing record.
func (s *RecordService) Add(ctx context.Context, profileID string, t registry.RecordType, title string, payload map[string]any) (models.LifeVaultRecord, error) {
	if !registry.IsKnownType(t) {
		return models.LifeVaultRecord{}, fmt.Errorf("unknown record type %q", t)
	}
	if payload == nil {
		payload = registry.DefaultPayload(t)
	}
	rec := models.LifeVaultRecord{
		ID:         uuid.NewString(),
		RecordType: t,
		Title:      title,
		UpdatedAt:  time.Now().UTC(),
		Payload:    payload,
	}
	if err := s.repo.Upsert(ctx, profileID, rec); err != nil {
		return models.LifeVaultRecord{}, fmt.Errorf("adding record: %w", err)
	}
	return rec, nil
}

// Update rewrites an existing record in place.
func (s *RecordService) Update(ctx context.Context, profileID string, rec models.LifeVaultRecord) (models.LifeVaultRecord, error) {
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, profileID, rec); err != nil {
		return models.LifeVaultRecord{}, fmt.Errorf("updating record: %w", err)
	}
	return rec, nil
}

// Delete hard-removes one record.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
