package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/datamode"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/remote"
	"github.com/evzhukov/lifevault/internal/storage/records"
)

// ErrLocalOnlyMode is returned by sync operations while the app runs
// without a remote backend.
var ErrLocalOnlyMode = errors.New("local-only mode")

// SyncService pushes local records to the remote vault. It only runs for an
// authenticated, remote-backed installation; the data-mode resolver guards
// both conditions.
type SyncService struct {
	recs   *RecordService
	repo   records.Repository
	client remote.Client
	mode   *datamode.Resolver
	log    logging.Logger
}

func NewSyncService(recs *RecordService, repo records.Repository, client remote.Client, mode *datamode.Resolver, log logging.Logger) *SyncService {
	return &SyncService{recs: recs, repo: repo, client: client, mode: mode, log: log}
}

// PushRecords upserts every record of a profile to the backend and applies
// the server-owned fields (id, updatedAt) back to the local copy. It
// returns the number of records pushed.
func (s *SyncService) PushRecords(ctx context.Context, profileID string) (int, error) {
	local, err := s.mode.IsLocalOnly(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolving data mode: %w", err)
	}
	if local {
		return 0, ErrLocalOnlyMode
	}
	authed, err := s.mode.HasCredential(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking credential: %w", err)
	}
	if !authed {
		return 0, common.ErrorUnauthorized
	}

	recs, err := s.recs.List(ctx, profileID)
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, rec := range recs {
		res, err := s.client.UpsertRecord(ctx, profileID, rec)
		if err != nil {
			return pushed, fmt.Errorf("pushing record %s: %w", rec.ID, err)
		}
		// The backend owns id and updatedAt; payload and title stay local.
		localID := rec.ID
		rec.ID = res.ID
		rec.UpdatedAt = res.UpdatedAt
		if err := s.repo.Upsert(ctx, profileID, rec); err != nil {
			return pushed, fmt.Errorf("applying server fields to record %s: %w", rec.ID, err)
		}
		// A remapped id means the upsert above inserted a new row; the one
		// keyed by the old id is now superseded and must go.
		if res.ID != localID {
			if err := s.repo.Delete(ctx, localID); err != nil && !errors.Is(err, common.ErrorNotFound) {
				return pushed, fmt.Errorf("removing superseded record %s: %w", localID, err)
			}
		}
		pushed++
	}
	s.log.Info(ctx, "records pushed", "profile", profileID, "count", pushed)
	return pushed, nil
}
