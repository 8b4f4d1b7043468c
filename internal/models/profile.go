// Package models defines the canonical in-memory shapes the app works with:
// profiles, vault records, and documents. Values here come out of the schema
// layer's normalization, so no validation happens at this level.
package models

// Kind classifies a profile.
type Kind string

const (
	KindPerson    Kind = "PERSON"
	KindPet       Kind = "PET"
	KindHousehold Kind = "HOUSEHOLD"
)

// Profile is implemented by the three profile variants.
type Profile interface {
	// ProfileID returns the stable unique id.
	ProfileID() string

	// ProfileKind returns the variant tag.
	ProfileKind() Kind

	// DisplayName returns the primary name field of the variant.
	DisplayName() string
}

// PersonProfile is a household member.
type PersonProfile struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName,omitempty"`
	PreferredName string `json:"preferredName,omitempty"`
	Relationship  string `json:"relationship,omitempty"`
	DOB           string `json:"dob,omitempty"`
	AvatarURI     string `json:"avatarUri,omitempty"`
	IsPrimary     bool   `json:"isPrimary,omitempty"`
	Timestamps
}

func (p PersonProfile) ProfileID() string { return p.ID }

func (p PersonProfile) ProfileKind() Kind { return KindPerson }

// DisplayName prefers the preferred name when one is set.
func (p PersonProfile) DisplayName() string {
	if p.PreferredName != "" {
		return p.PreferredName
	}
	return p.FirstName
}

// PetCare groups the day-to-day care notes for a pet.
type PetCare struct {
	Feeding  string `json:"feeding,omitempty"`
	Potty    string `json:"potty,omitempty"`
	Sleep    string `json:"sleep,omitempty"`
	Behavior string `json:"behavior,omitempty"`
}

// PetProfile is a pet belonging to the household.
type PetProfile struct {
	ID           string   `json:"id"`
	PetName      string   `json:"petName"`
	Kind         string   `json:"kind"`
	Breed        string   `json:"breed,omitempty"`
	AvatarURI    string   `json:"avatarUri,omitempty"`
	Care         PetCare  `json:"care"`
	Medications  []string `json:"medications"`
	Vaccinations []string `json:"vaccinations"`
	Timestamps
}

func (p PetProfile) ProfileID() string { return p.ID }

func (p PetProfile) ProfileKind() Kind { return KindPet }

func (p PetProfile) DisplayName() string { return p.PetName }

// HouseholdProfile groups people and pets. MemberIDs are weak references;
// deleting a member does not cascade here.
type HouseholdProfile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	MemberIDs []string `json:"memberIds"`
	Timestamps
}

func (h HouseholdProfile) ProfileID() string { return h.ID }

func (h HouseholdProfile) ProfileKind() Kind { return KindHousehold }

func (h HouseholdProfile) DisplayName() string { return h.Name }
