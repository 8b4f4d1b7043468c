// Package services contains the application services of the LifeVault
// client. They sit between the untyped local store and the typed domain
// model: every read passes through schema normalization, every write stores
// the canonical current-version shape.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/schema"
	"github.com/evzhukov/lifevault/internal/storage/profiles"
	"github.com/google/uuid"
)

// ProfileService reads and writes profiles of all three kinds.
type ProfileService struct {
	repo profiles.Repository
	log  logging.Logger
}

func NewProfileService(repo profiles.Repository, log logging.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// normalizer builds a per-call normalizer whose drop hook logs each
// discarded element. Dropping stays silent for the user; the log is the
// only trace of data loss.
func (s *ProfileService) normalizer(ctx context.Context, dropped *int) *schema.Normalizer {
	return &schema.Normalizer{
		OnDrop: func(entity string, index int, reason string) {
			*dropped++
			s.log.Warn(ctx, "dropped malformed element", "entity", entity, "index", index, "reason", reason)
		},
	}
}

// ListPersons returns all person profiles that survive normalization.
func (s *ProfileService) ListPersons(ctx context.Context) ([]models.PersonProfile, error) {
	raw, err := s.repo.ListRaw(ctx, models.KindPerson)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	var dropped int
	normalized := s.normalizer(ctx, &dropped).Persons(raw)
	out := make([]models.PersonProfile, len(normalized))
	for i, p := range normalized {
		out[i] = models.PersonFromSchema(p)
	}
	s.logDrops(ctx, schema.EntityPerson, dropped)
	return out, nil
}

// ListPets returns all pet profiles. This read is also the pet migration
// pass: normalization refreshes updatedAt, and the migrated shape is not
// written back until the next save.
func (s *ProfileService) ListPets(ctx context.Context) ([]models.PetProfile, error) {
	raw, err := s.repo.ListRaw(ctx, models.KindPet)
	if err != nil {
		return nil, fmt.Errorf("listing pets: %w", err)
	}
	var dropped int
	normalized := s.normalizer(ctx, &dropped).Pets(raw)
	out := make([]models.PetProfile, len(normalized))
	for i, p := range normalized {
		out[i] = models.PetFromSchema(p)
	}
	s.logDrops(ctx, schema.EntityPet, dropped)
	return out, nil
}

// ListHouseholds returns all household profiles.
func (s *ProfileService) ListHouseholds(ctx context.Context) ([]models.HouseholdProfile, error) {
	raw, err := s.repo.ListRaw(ctx, models.KindHousehold)
	if err != nil {
		return nil, fmt.Errorf("listing households: %w", err)
	}
	var dropped int
	normalized := s.normalizer(ctx, &dropped).Households(raw)
	out := make([]models.HouseholdProfile, len(normalized))
	for i, h := range normalized {
		out[i] = models.HouseholdFromSchema(h)
	}
	s.logDrops(ctx, schema.EntityHousehold, dropped)
	return out, nil
}

func (s *ProfileService) logDrops(ctx context.Context, entity string, dropped int) {
	if dropped > 0 {
		s.log.Warn(ctx, "normalization dropped elements", "entity", entity, "dropped", dropped)
	}
}

// SavePerson persists a person profile, minting an id and timestamps for a
// new one. The stored body is the canonical current-version shape.
func (s *ProfileService) SavePerson(ctx context.Context, p models.PersonProfile) (models.PersonProfile, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	body, err := json.Marshal(schema.Person{
		SchemaVersion: schema.Version,
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		PreferredName: p.PreferredName,
		Relationship:  p.Relationship,
		DOB:           p.DOB,
		AvatarURI:     p.AvatarURI,
		IsPrimary:     p.IsPrimary,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	})
	if err != nil {
		return models.PersonProfile{}, fmt.Errorf("marshaling person: %w", err)
	}
	if err := s.repo.Save(ctx, models.KindPerson, p.ID, body); err != nil {
		return models.PersonProfile{}, fmt.Errorf("saving person: %w", err)
	}
	return p, nil
}

// SavePet persists a pet profile in the canonical shape.
func (s *ProfileService) SavePet(ctx context.Context, p models.PetProfile) (models.PetProfile, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Kind == "" {
		p.Kind = "Other"
	}

	body, err := json.Marshal(schema.Pet{
		SchemaVersion: schema.Version,
		ID:            p.ID,
		PetName:       p.PetName,
		Kind:          p.Kind,
		Breed:         p.Breed,
		AvatarURI:     p.AvatarURI,
		Feeding:       p.Care.Feeding,
		Potty:         p.Care.Potty,
		Sleep:         p.Care.Sleep,
		Behavior:      p.Care.Behavior,
		Medications:   p.Medications,
		Vaccinations:  p.Vaccinations,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	})
	if err != nil {
		return models.PetProfile{}, fmt.Errorf("marshaling pet: %w", err)
	}
	if err := s.repo.Save(ctx, models.KindPet, p.ID, body); err != nil {
		return models.PetProfile{}, fmt.Errorf("saving pet: %w", err)
	}
	return p, nil
}

// SaveHousehold persists a household profile in the canonical shape.
func (s *ProfileService) SaveHousehold(ctx context.Context, h models.HouseholdProfile) (models.HouseholdProfile, error) {
	now := time.Now().UTC()
	if h.ID == "" {
		h.ID = uuid.NewString()
		h.CreatedAt = now
	}
	h.UpdatedAt = now

	body, err := json.Marshal(schema.Household{
		SchemaVersion: schema.Version,
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		MemberIDs:     h.MemberIDs,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	})
	if err != nil {
		return models.HouseholdProfile{}, fmt.Errorf("marshaling household: %w", err)
	}
	if err := s.repo.Save(ctx, models.KindHousehold, h.ID, body); err != nil {
		return models.HouseholdProfile{}, fmt.Errorf("saving household: %w", err)
	}
	return h, nil
}

// Delete removes a profile. Member references pointing at it elsewhere are
// left dangling on purpose; nothing cascades.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
