package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/datamode"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/remote"
)

type fakeSecretStore struct {
	data map[string][]byte
}

func newFakeSecretStore() *fakeSecretStore {
	return &fakeSecretStore{data: map[string][]byte{}}
}

func (s *fakeSecretStore) Get(_ context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *fakeSecretStore) Set(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *fakeSecretStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type fakeRecordRepo struct {
	raws    []any
	upserts []models.LifeVaultRecord
	deletes []string
}

func (f *fakeRecordRepo) Upsert(_ context.Context, _ string, rec models.LifeVaultRecord) error {
	f.upserts = append(f.upserts, rec)
	return nil
}

func (f *fakeRecordRepo) Insert(_ context.Context, _ string, rec models.LifeVaultRecord) error {
	f.upserts = append(f.upserts, rec)
	return nil
}

func (f *fakeRecordRepo) ListRaw(_ context.Context, _ string) ([]any, error) {
	return f.raws, nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeRemote struct {
	upserted []models.LifeVaultRecord
	fail     error
	now      time.Time
	remapID  string
}

func (f *fakeRemote) Ping(_ context.Context) error { return nil }

func (f *fakeRemote) CreateVault(_ context.Context, name string) (*remote.VaultInfo, error) {
	return &remote.VaultInfo{ID: "v1", Name: name}, nil
}

func (f *fakeRemote) CreateEntity(_ context.Context, _ string, kind models.Kind, _ json.RawMessage) (*remote.EntityInfo, error) {
	return &remote.EntityInfo{ID: "e1", Kind: kind}, nil
}

func (f *fakeRemote) UpsertRecord(_ context.Context, _ string, rec models.LifeVaultRecord) (*remote.UpsertResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.upserted = append(f.upserted, rec)
	id := rec.ID
	if f.remapID != "" {
		id = f.remapID
	}
	return &remote.UpsertResult{ID: id, RecordType: rec.RecordType, UpdatedAt: f.now}, nil
}

func (f *fakeRemote) Close() error { return nil }

func rawRecord(id, recordType string) map[string]any {
	return map[string]any{
		"id":         id,
		"recordType": recordType,
		"title":      "t",
		"updatedAt":  "2025-03-01T10:00:00Z",
		"data":       map[string]any{},
	}
}

func TestSyncService_PushRecords(t *testing.T) {
	log := logging.NewDefault()
	serverNow := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	newSvc := func(store *fakeSecretStore, repo *fakeRecordRepo, rem *fakeRemote) *SyncService {
		mode := datamode.NewResolver(store, false, log)
		recs := NewRecordService(repo, log)
		return NewSyncService(recs, repo, rem, mode, log)
	}

	t.Run("pushes and applies server timestamps", func(t *testing.T) {
		store := newFakeSecretStore()
		store.data[datamode.KeyAccessToken] = []byte("real-token")
		repo := &fakeRecordRepo{raws: []any{
			rawRecord("r1", "allergies"),
			rawRecord("r2", "medications"),
		}}
		rem := &fakeRemote{now: serverNow}

		n, err := newSvc(store, repo, rem).PushRecords(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, rem.upserted, 2)
		require.Len(t, repo.upserts, 2)
		for _, rec := range repo.upserts {
			assert.Equal(t, serverNow, rec.UpdatedAt)
		}
		assert.Empty(t, repo.deletes, "unchanged ids must not trigger deletes")
	})

	t.Run("removes the superseded row when the backend remaps the id", func(t *testing.T) {
		store := newFakeSecretStore()
		store.data[datamode.KeyAccessToken] = []byte("real-token")
		repo := &fakeRecordRepo{raws: []any{rawRecord("r1", "allergies")}}
		rem := &fakeRemote{now: serverNow, remapID: "srv-9"}

		n, err := newSvc(store, repo, rem).PushRecords(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		require.Len(t, repo.upserts, 1)
		assert.Equal(t, "srv-9", repo.upserts[0].ID)
		assert.Equal(t, []string{"r1"}, repo.deletes)
	})

	t.Run("refuses in local-only mode", func(t *testing.T) {
		store := newFakeSecretStore()
		store.data[datamode.KeyLocalOnly] = []byte("true")
		repo := &fakeRecordRepo{raws: []any{rawRecord("r1", "allergies")}}
		rem := &fakeRemote{now: serverNow}

		_, err := newSvc(store, repo, rem).PushRecords(context.Background(), "p1")
		require.ErrorIs(t, err, ErrLocalOnlyMode)
		assert.Empty(t, rem.upserted)
	})

	t.Run("refuses without a credential", func(t *testing.T) {
		store := newFakeSecretStore()
		store.data[datamode.KeyAccessToken] = []byte(common.PlaceholderAccessToken)
		repo := &fakeRecordRepo{raws: []any{rawRecord("r1", "allergies")}}
		rem := &fakeRemote{now: serverNow}

		_, err := newSvc(store, repo, rem).PushRecords(context.Background(), "p1")
		require.ErrorIs(t, err, common.ErrorUnauthorized)
		assert.Empty(t, rem.upserted)
	})

	t.Run("stops on the first failed push", func(t *testing.T) {
		store := newFakeSecretStore()
		store.data[datamode.KeyAccessToken] = []byte("real-token")
		repo := &fakeRecordRepo{raws: []any{rawRecord("r1", "allergies")}}
		rem := &fakeRemote{now: serverNow, fail: errors.New("boom")}

		n, err := newSvc(store, repo, rem).PushRecords(context.Background(), "p1")
		require.Error(t, err)
		assert.Equal(t, 0, n)
		assert.Empty(t, repo.upserts)
	})
}
