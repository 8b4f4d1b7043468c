package models

import (
	"github.com/evzhukov/lifevault/internal/registry"
	"github.com/evzhukov/lifevault/internal/schema"
)

// One-way projections from schema-versioned records to domain shapes.
// Every schema field maps to a domain field; nothing is validated or
// synthesized here — that already happened during normalization.

// PersonFromSchema projects a schema person to its domain shape.
func PersonFromSchema(p schema.Person) PersonProfile {
	return PersonProfile{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		PreferredName: p.PreferredName,
		Relationship:  p.Relationship,
		DOB:           p.DOB,
		AvatarURI:     p.AvatarURI,
		IsPrimary:     p.IsPrimary,
		Timestamps:    Timestamps{CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
	}
}

// PetFromSchema projects a schema pet to its domain shape.
func PetFromSchema(p schema.Pet) PetProfile {
	return PetProfile{
		ID:        p.ID,
		PetName:   p.PetName,
		Kind:      p.Kind,
		Breed:     p.Breed,
		AvatarURI: p.AvatarURI,
		Care: PetCare{
			Feeding:  p.Feeding,
			Potty:    p.Potty,
			Sleep:    p.Sleep,
			Behavior: p.Behavior,
		},
		Medications:  p.Medications,
		Vaccinations: p.Vaccinations,
		Timestamps:   Timestamps{CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
	}
}

// HouseholdFromSchema projects a schema household to its domain shape.
func HouseholdFromSchema(h schema.Household) HouseholdProfile {
	return HouseholdProfile{
		ID:         h.ID,
		Name:       h.Name,
		Address:    h.Address,
		MemberIDs:  h.MemberIDs,
		Timestamps: Timestamps{CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt},
	}
}

// RecordFromSchema projects a schema record to its domain shape.
func RecordFromSchema(r schema.Record) LifeVaultRecord {
	return LifeVaultRecord{
		ID:         r.ID,
		RecordType: registry.RecordType(r.RecordType),
		Title:      r.Title,
		UpdatedAt:  r.UpdatedAt,
		Payload:    r.Payload,
	}
}

// DocumentFromSchema projects a schema document to its domain shape.
func DocumentFromSchema(d schema.Document) VaultDocument {
	doc := VaultDocument{
		ID:        d.ID,
		URI:       d.URI,
		MimeType:  d.MimeType,
		FileName:  d.FileName,
		SizeBytes: d.SizeBytes,
		SHA256:    d.SHA256,
		Title:     d.Title,
		Note:      d.Note,
		Tags:      d.Tags,
		LinkedTo:  make([]DocumentLinkRef, len(d.LinkedTo)),
		CreatedAt: d.CreatedAt,
	}
	for i, ref := range d.LinkedTo {
		doc.LinkedTo[i] = DocumentLinkRef{RecordType: ref.RecordType, RecordID: ref.RecordID}
	}
	if d.OCR != nil {
		r := DocumentOcrResult{
			Text:        d.OCR.Text,
			Lines:       d.OCR.Lines,
			ExtractedAt: d.OCR.ExtractedAt,
			Engine:      d.OCR.Engine,
			Status:      OcrStatus(d.OCR.Status),
			Error:       d.OCR.Error,
		}
		doc.OCR = &r
	}
	return doc
}
