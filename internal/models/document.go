package models

import (
	"fmt"
	"time"
)

// OcrStatus is the outcome of one text-extraction attempt. It is terminal
// for the attempt: a re-run produces a fresh DocumentOcrResult rather than
// mutating the previous one.
type OcrStatus string

const (
	// OcrReady means text was extracted and is usable.
	OcrReady OcrStatus = "READY"
	// OcrUnreadable means extraction ran but produced nothing usable.
	OcrUnreadable OcrStatus = "UNREADABLE"
	// OcrFailed means the extraction process itself errored.
	OcrFailed OcrStatus = "FAILED"
)

// DocumentOcrResult is the current extraction result of a document.
// Invariant: Error is non-empty exactly when Status is OcrFailed.
type DocumentOcrResult struct {
	Text        string    `json:"text"`
	Lines       []string  `json:"lines,omitempty"`
	ExtractedAt time.Time `json:"extractedAt"`
	Engine      string    `json:"engine"`
	Status      OcrStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// NewOcrReady builds a successful extraction result.
func NewOcrReady(engine, text string, lines []string, at time.Time) DocumentOcrResult {
	return DocumentOcrResult{Text: text, Lines: lines, ExtractedAt: at, Engine: engine, Status: OcrReady}
}

// NewOcrUnreadable builds a result for a source the engine could not read
// (blank or illegible, not an engine failure).
func NewOcrUnreadable(engine string, at time.Time) DocumentOcrResult {
	return DocumentOcrResult{ExtractedAt: at, Engine: engine, Status: OcrUnreadable}
}

// NewOcrFailed builds a result for a failed extraction run. An empty message
// is replaced so the status/error coupling holds.
func NewOcrFailed(engine, message string, at time.Time) DocumentOcrResult {
	if message == "" {
		message = "extraction failed"
	}
	return DocumentOcrResult{ExtractedAt: at, Engine: engine, Status: OcrFailed, Error: message}
}

// Validate checks the status enum and the status/error coupling.
func (r DocumentOcrResult) Validate() error {
	switch r.Status {
	case OcrReady, OcrUnreadable, OcrFailed:
	default:
		return fmt.Errorf("unknown ocr status %q", r.Status)
	}
	if r.Status == OcrFailed && r.Error == "" {
		return fmt.Errorf("ocr status %s requires an error message", OcrFailed)
	}
	if r.Status != OcrFailed && r.Error != "" {
		return fmt.Errorf("ocr status %s must not carry an error message", r.Status)
	}
	return nil
}

// DocumentLinkRef is a weak reference from a document to a record. Dangling
// refs are tolerated; nothing enforces integrity.
type DocumentLinkRef struct {
	RecordType string `json:"recordType"`
	RecordID   string `json:"recordId"`
}

// VaultDocument is an ingested attachment. SHA256 is supplied by the
// ingestion pipeline for de-duplication, never computed here.
type VaultDocument struct {
	ID        string             `json:"id"`
	URI       string             `json:"uri"`
	MimeType  string             `json:"mimeType"`
	FileName  string             `json:"fileName,omitempty"`
	SizeBytes int64              `json:"sizeBytes,omitempty"`
	SHA256    string             `json:"sha256,omitempty"`
	Title     string             `json:"title,omitempty"`
	Note      string             `json:"note,omitempty"`
	Tags      []string           `json:"tags"`
	LinkedTo  []DocumentLinkRef  `json:"linkedTo"`
	OCR       *DocumentOcrResult `json:"ocr,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// WithOcrResult returns a copy of d whose current result slot holds r. The
// prior result value is left untouched, so callers keeping history can hold
// on to it.
func (d VaultDocument) WithOcrResult(r DocumentOcrResult) VaultDocument {
	d.OCR = &r
	return d
}
