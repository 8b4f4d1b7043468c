// Package registry defines the closed set of record types a profile can
// hold, their grouping into categories, and their cardinality. The tables
// here are process-wide constants: they are built once at init and never
// mutated at runtime.
package registry

import (
	"fmt"
	"slices"
)

// RecordType identifies one kind of record attached to a profile.
type RecordType string

const (
	RecordTypeAllergies         RecordType = "allergies"
	RecordTypeMedications       RecordType = "medications"
	RecordTypeConditions        RecordType = "conditions"
	RecordTypeVaccinations      RecordType = "vaccinations"
	RecordTypeInsurance         RecordType = "insurance"
	RecordTypePassport          RecordType = "passport"
	RecordTypeBirthCertificate  RecordType = "birth_certificate"
	RecordTypeIDCard            RecordType = "id_card"
	RecordTypeTrips             RecordType = "trips"
	RecordTypeLoyaltyPrograms   RecordType = "loyalty_programs"
	RecordTypeSchools           RecordType = "schools"
	RecordTypeEmergencyContacts RecordType = "emergency_contacts"
	RecordTypeCareInstructions  RecordType = "care_instructions"
)

// RecordCategory groups record types for presentation and lookup.
type RecordCategory string

const (
	CategoryMedical   RecordCategory = "medical"
	CategoryDocuments RecordCategory = "documents"
	CategoryTravel    RecordCategory = "travel"
	CategoryEducation RecordCategory = "education"
	CategoryEmergency RecordCategory = "emergency"
	CategoryCare      RecordCategory = "care"
)

// Cardinality says how many records of a type one profile may hold.
type Cardinality int

const (
	// Multi admits any number of records per profile.
	Multi Cardinality = iota
	// Single admits at most one record per profile; the storage layer
	// replaces the existing record on upsert.
	Single
)

// RecordMeta is the registry entry for one record type.
type RecordMeta struct {
	Category    RecordCategory
	Cardinality Cardinality
}

var recordMeta = map[RecordType]RecordMeta{
	RecordTypeAllergies:         {CategoryMedical, Multi},
	RecordTypeMedications:       {CategoryMedical, Multi},
	RecordTypeConditions:        {CategoryMedical, Multi},
	RecordTypeVaccinations:      {CategoryMedical, Multi},
	RecordTypeInsurance:         {CategoryDocuments, Single},
	RecordTypePassport:          {CategoryDocuments, Single},
	RecordTypeBirthCertificate:  {CategoryDocuments, Single},
	RecordTypeIDCard:            {CategoryDocuments, Single},
	RecordTypeTrips:             {CategoryTravel, Multi},
	RecordTypeLoyaltyPrograms:   {CategoryTravel, Multi},
	RecordTypeSchools:           {CategoryEducation, Multi},
	RecordTypeEmergencyContacts: {CategoryEmergency, Multi},
	RecordTypeCareInstructions:  {CategoryCare, Single},
}

var typesByCategory map[RecordCategory][]RecordType

func init() {
	typesByCategory = make(map[RecordCategory][]RecordType, len(recordMeta))
	for _, t := range AllTypes() {
		m := recordMeta[t]
		typesByCategory[m.Category] = append(typesByCategory[m.Category], t)
	}
}

// AllTypes returns every registered record type in stable (lexical) order.
func AllTypes() []RecordType {
	types := make([]RecordType, 0, len(recordMeta))
	for t := range recordMeta {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Meta returns the registry entry for t. The registry covers the closed
// RecordType enum exhaustively, so an unknown type is a programming error
// and Meta panics rather than degrading.
func Meta(t RecordType) RecordMeta {
	m, ok := recordMeta[t]
	if !ok {
		panic(fmt.Sprintf("registry: unregistered record type %q", t))
	}
	return m
}

// TypesForCategory returns all record types in the given category.
// Unknown categories yield an empty slice, never an error.
func TypesForCategory(c RecordCategory) []RecordType {
	src := typesByCategory[c]
	out := make([]RecordType, len(src))
	copy(out, src)
	return out
}

// IsSingletonType reports whether t admits at most one record per profile.
func IsSingletonType(t RecordType) bool {
	return Meta(t).Cardinality == Single
}

// IsKnownType reports whether t is part of the registry. Callers holding a
// type that crossed a trust boundary (persisted data, network) should check
// before calling Meta.
func IsKnownType(t RecordType) bool {
	_, ok := recordMeta[t]
	return ok
}
