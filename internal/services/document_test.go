package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
)

type fakeDocumentRepo struct {
	raws    []any
	byID    map[string]models.VaultDocument
	results map[string]models.DocumentOcrResult
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		byID:    map[string]models.VaultDocument{},
		results: map[string]models.DocumentOcrResult{},
	}
}

func (f *fakeDocumentRepo) Save(_ context.Context, doc models.VaultDocument) error {
	f.byID[doc.ID] = doc
	return nil
}

func (f *fakeDocumentRepo) ListRaw(_ context.Context) ([]any, error) {
	return f.raws, nil
}

func (f *fakeDocumentRepo) FindIDsBySHA256(_ context.Context, sum string) ([]string, error) {
	var ids []string
	for id, doc := range f.byID {
		if doc.SHA256 == sum {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeDocumentRepo) SetOcrResult(_ context.Context, id string, result models.DocumentOcrResult) error {
	f.results[id] = result
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func TestDocumentService_Ingest(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewDocumentService(repo, logging.NewDefault())

	doc, err := svc.Ingest(context.Background(), models.VaultDocument{URI: "file://scan.pdf", SHA256: "abc"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "application/octet-stream", doc.MimeType)
	assert.False(t, doc.CreatedAt.IsZero())

	// Same content hash is rejected as a duplicate.
	_, err = svc.Ingest(context.Background(), models.VaultDocument{URI: "file://copy.pdf", SHA256: "abc"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestDocumentService_Ingest_RequiresURI(t *testing.T) {
	svc := NewDocumentService(newFakeDocumentRepo(), logging.NewDefault())
	_, err := svc.Ingest(context.Background(), models.VaultDocument{SHA256: "abc"})
	require.Error(t, err)
}

func TestDocumentService_List(t *testing.T) {
	repo := newFakeDocumentRepo()
	repo.raws = []any{
		map[string]any{"id": "d1", "uri": "file://a.pdf", "ocr": map[string]any{
			"status": "FAILED", "engine": "mlkit", "error": "",
		}},
		map[string]any{"uri": "file://no-id.pdf"},
	}
	svc := NewDocumentService(repo, logging.NewDefault())

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.NotNil(t, docs[0].OCR)
	assert.Equal(t, models.OcrFailed, docs[0].OCR.Status)
	assert.Equal(t, "extraction failed", docs[0].OCR.Error)
}

func TestDocumentService_AttachOcrResult(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewDocumentService(repo, logging.NewDefault())
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, svc.AttachOcrResult(context.Background(), "d1", models.NewOcrReady("mlkit", "text", nil, at)))
	got := repo.results["d1"]
	assert.Equal(t, models.OcrReady, got.Status)
	assert.Equal(t, "text", got.Text)

	// A later attempt replaces the slot with a fresh value.
	require.NoError(t, svc.AttachOcrResult(context.Background(), "d1", models.NewOcrUnreadable("mlkit", at.Add(time.Hour))))
	got = repo.results["d1"]
	assert.Equal(t, models.OcrUnreadable, got.Status)
	assert.Empty(t, got.Text)
}

func TestDocumentService_Link(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewDocumentService(repo, logging.NewDefault())
	doc := models.VaultDocument{ID: "d1", URI: "file://a.pdf"}
	ref := models.DocumentLinkRef{RecordType: "passport", RecordID: "r1"}

	linked, err := svc.Link(context.Background(), doc, ref)
	require.NoError(t, err)
	require.Len(t, linked.LinkedTo, 1)

	// Linking the same reference twice is a no-op.
	again, err := svc.Link(context.Background(), linked, ref)
	require.NoError(t, err)
	assert.Len(t, again.LinkedTo, 1)
}
