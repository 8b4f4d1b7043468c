package services

import (
	"context"
	"fmt"
	"time"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/models"
	"github.com/evzhukov/lifevault/internal/schema"
	"github.com/evzhukov/lifevault/internal/storage/documents"
	"github.com/google/uuid"
)

// DocumentService handles document ingestion and the OCR result slot.
type DocumentService struct {
	repo documents.Repository
	log  logging.Logger
}

func NewDocumentService(repo documents.Repository, log logging.Logger) *DocumentService {
	return &DocumentService{repo: repo, log: log}
}

// List returns all documents that survive normalization.
func (s *DocumentService) List(ctx context.Context) ([]models.VaultDocument, error) {
	raw, err := s.repo.ListRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	var dropped int
	n := &schema.Normalizer{
		OnDrop: func(entity string, index int, reason string) {
			dropped++
			s.log.Warn(ctx, "dropped malformed element", "entity", entity, "index", index, "reason", reason)
		},
	}
	normalized := n.Documents(raw)
	out := make([]models.VaultDocument, len(normalized))
	for i, d := range normalized {
		out[i] = models.DocumentFromSchema(d)
	}
	if dropped > 0 {
		s.log.Warn(ctx, "normalization dropped elements", "entity", schema.EntityDocument, "dropped", dropped)
	}
	return out, nil
}

// Ingest stores a new document. The content hash, when the ingestion
// pipeline supplied one, is checked against existing documents and a
// duplicate is rejected with ErrorAlreadyExists.
func (s *DocumentService) Ingest(ctx context.Context, doc models.VaultDocument) (models.VaultDocument, error) {
	if doc.URI == "" {
		return models.VaultDocument{}, fmt.Errorf("document uri is required")
	}
	if doc.SHA256 != "" {
		ids, err := s.repo.FindIDsBySHA256(ctx, doc.SHA256)
		if err != nil {
			return models.VaultDocument{}, fmt.Errorf("checking for duplicates: %w", err)
		}
		if len(ids) > 0 {
			return models.VaultDocument{}, fmt.Errorf("document %s: %w", ids[0], common.ErrorAlreadyExists)
		}
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if doc.MimeType == "" {
		doc.MimeType = "application/octet-stream"
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return models.VaultDocument{}, fmt.Errorf("saving document: %w", err)
	}
	return doc, nil
}

// AttachOcrResult records the outcome of an extraction attempt. Each attempt
// produces a fresh result value; the previous slot content is replaced.
func (s *DocumentService) AttachOcrResult(ctx context.Context, docID string, result models.DocumentOcrResult) error {
	if err := s.repo.SetOcrResult(ctx, docID, result); err != nil {
		return fmt.Errorf("attaching ocr result: %w", err)
	}
	s.log.Info(ctx, "ocr result attached", "doc", docID, "status", string(result.Status), "engine", result.Engine)
	return nil
}

// Link adds a weak reference from a document to a record. The target is not
// checked to exist, matching the orphan-tolerant link policy.
func (s *DocumentService) Link(ctx context.Context, doc models.VaultDocument, ref models.DocumentLinkRef) (models.VaultDocument, error) {
	for _, existing := range doc.LinkedTo {
		if existing == ref {
			return doc, nil
		}
	}
	doc.LinkedTo = append(doc.LinkedTo, ref)
	if err := s.repo.Save(ctx, doc); err != nil {
		return models.VaultDocument{}, fmt.Errorf("linking document: %w", err)
	}
	return doc, nil
}

// Delete hard-removes one document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
