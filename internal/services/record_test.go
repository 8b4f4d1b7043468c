package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/registry"
)

func TestRecordService_List(t *testing.T) {
	repo := &fakeRecordRepo{raws: []any{
		rawRecord("r1", "allergies"),
		rawRecord("r2", "floppy_disks"),           // retired type, not in the registry
		map[string]any{"recordType": "allergies"}, // no id
	}}
	svc := NewRecordService(repo, logging.NewDefault())

	recs, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "r1", recs[0].ID)
	assert.Equal(t, registry.RecordTypeAllergies, recs[0].RecordType)
}

func TestRecordService_Add(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewRecordService(repo, logging.NewDefault())

	rec, err := svc.Add(context.Background(), "p1", registry.RecordTypeAllergies, "Allergies", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.UpdatedAt.IsZero())
	// Nil payload starts from the registry template.
	assert.Equal(t, registry.DefaultPayload(registry.RecordTypeAllergies), rec.Payload)
	require.Len(t, repo.upserts, 1)
}

func TestRecordService_Add_UnknownType(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewRecordService(repo, logging.NewDefault())

	_, err := svc.Add(context.Background(), "p1", registry.RecordType("floppy_disks"), "", nil)
	require.Error(t, err)
	assert.Empty(t, repo.upserts)
}

func TestRecordService_Update(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewRecordService(repo, logging.NewDefault())

	in := models.LifeVaultRecord{ID: "r1", RecordType: registry.RecordTypePassport, Title: "Passport"}
	out, err := svc.Update(context.Background(), "p1", in)
	require.NoError(t, err)
	assert.Equal(t, "r1", out.ID)
	assert.False(t, out.UpdatedAt.IsZero())
	require.Len(t, repo.upserts, 1)
}
