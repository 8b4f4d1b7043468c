// Package schema defines the versioned persisted shapes of vault entities
// and the tolerant normalization that converts arbitrary stored JSON into
// them. Persisted data may come from an older app version or may be damaged;
// normalization is the only gatekeeper between that data and the typed
// domain layer, so it never fails — malformed elements degrade to omission.
package schema

import "time"

// Version is the current schema version literal. Every record produced by
// normalization carries it.
const Version = 2

// Person is the persisted shape of a person profile at the current version.
type Person struct {
	SchemaVersion int       `json:"schemaVersion"`
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName,omitempty"`
	PreferredName string    `json:"preferredName,omitempty"`
	Relationship  string    `json:"relationship,omitempty"`
	DOB           string    `json:"dob,omitempty"`
	AvatarURI     string    `json:"avatarUri,omitempty"`
	IsPrimary     bool      `json:"isPrimary,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Pet is the persisted shape of a pet profile at the current version.
type Pet struct {
	SchemaVersion int       `json:"schemaVersion"`
	ID            string    `json:"id"`
	PetName       string    `json:"petName"`
	Kind          string    `json:"kind"`
	Breed         string    `json:"breed,omitempty"`
	AvatarURI     string    `json:"avatarUri,omitempty"`
	Feeding       string    `json:"feeding,omitempty"`
	Potty         string    `json:"potty,omitempty"`
	Sleep         string    `json:"sleep,omitempty"`
	Behavior      string    `json:"behavior,omitempty"`
	Medications   []string  `json:"medications"`
	Vaccinations  []string  `json:"vaccinations"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Household is the persisted shape of a household profile.
type Household struct {
	SchemaVersion int       `json:"schemaVersion"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	MemberIDs     []string  `json:"memberIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Record is the persisted shape of one categorized record. The typed payload
// arrives under either a "data" or a "payload" key depending on the writing
// app version; normalization accepts both.
type Record struct {
	SchemaVersion int            `json:"schemaVersion"`
	ID            string         `json:"id"`
	RecordType    string         `json:"recordType"`
	Title         string         `json:"title,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Payload       map[string]any `json:"payload"`
}

// LinkRef is a weak reference from a document to a record. No referential
// integrity is enforced; dangling refs are tolerated.
type LinkRef struct {
	RecordType string `json:"recordType"`
	RecordID   string `json:"recordId"`
}

// OcrResult is the persisted outcome of one text-extraction attempt.
type OcrResult struct {
	Text        string    `json:"text"`
	Lines       []string  `json:"lines,omitempty"`
	ExtractedAt time.Time `json:"extractedAt"`
	Engine      string    `json:"engine"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// Document is the persisted shape of a vault document.
type Document struct {
	SchemaVersion int        `json:"schemaVersion"`
	ID            string     `json:"id"`
	URI           string     `json:"uri"`
	MimeType      string     `json:"mimeType"`
	FileName      string     `json:"fileName,omitempty"`
	SizeBytes     int64      `json:"sizeBytes,omitempty"`
	SHA256        string     `json:"sha256,omitempty"`
	Title         string     `json:"title,omitempty"`
	Note          string     `json:"note,omitempty"`
	Tags          []string   `json:"tags"`
	LinkedTo      []LinkRef  `json:"linkedTo"`
	OCR           *OcrResult `json:"ocr,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
