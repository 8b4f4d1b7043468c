package schema

import "time"

// Entity names reported to the drop hook.
const (
	EntityPerson    = "person"
	EntityPet       = "pet"
	EntityHousehold = "household"
	EntityRecord    = "record"
	EntityDocument  = "document"
)

// Normalizer converts untrusted persisted values into current-version
// records. The zero value is ready to use: the wall clock backs timestamp
// defaults and drops go unreported.
//
// Every normalize method is pure aside from the clock, total (malformed
// input degrades to omission, never an error), and order preserving.
type Normalizer struct {
	// Now supplies the fallback timestamp; nil means time.Now.
	Now func() time.Time

	// OnDrop, when set, is called once per discarded element with the
	// entity name, the element's index in the input sequence, and a short
	// reason. Dropping is silent otherwise; callers that must surface data
	// loss hook in here.
	OnDrop func(entity string, index int, reason string)
}

func (n *Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now().UTC()
	}
	return time.Now().UTC()
}

func (n *Normalizer) drop(entity string, index int, reason string) {
	if n.OnDrop != nil {
		n.OnDrop(entity, index, reason)
	}
}

// Persons normalizes a persisted person list. Elements missing an id or a
// first name after trimming are dropped. Existing timestamps are preserved,
// so normalizing already-normalized data is idempotent.
func (n *Normalizer) Persons(v any) []Person {
	items := asSlice(v)
	out := make([]Person, 0, len(items))
	for i, raw := range items {
		m := asMap(raw)
		if m == nil {
			n.drop(EntityPerson, i, "not an object")
			continue
		}
		id := cleanString(m["id"])
		if id == "" {
			n.drop(EntityPerson, i, "missing id")
			continue
		}
		firstName := cleanString(m["firstName"])
		if firstName == "" {
			n.drop(EntityPerson, i, "missing firstName")
			continue
		}
		now := n.now()
		out = append(out, Person{
			SchemaVersion: Version,
			ID:            id,
			FirstName:     firstName,
			LastName:      cleanString(m["lastName"]),
			PreferredName: cleanString(m["preferredName"]),
			Relationship:  cleanString(m["relationship"]),
			DOB:           cleanString(m["dob"]),
			AvatarURI:     cleanString(m["avatarUri"]),
			IsPrimary:     truthy(m["isPrimary"]),
			CreatedAt:     coerceTime(m["createdAt"], now),
			UpdatedAt:     coerceTime(m["updatedAt"], now),
		})
	}
	return out
}

// Pets normalizes a persisted pet list. Unlike Persons and Households this
// is a migration: UpdatedAt is refreshed on every pass even when nothing
// changed ("touch on read"), while CreatedAt is preserved. Legacy field
// names are accepted: "name" for petName and "avatar" for avatarUri.
func (n *Normalizer) Pets(v any) []Pet {
	items := asSlice(v)
	out := make([]Pet, 0, len(items))
	for i, raw := range items {
		m := asMap(raw)
		if m == nil {
			n.drop(EntityPet, i, "not an object")
			continue
		}
		id := cleanString(m["id"])
		if id == "" {
			n.drop(EntityPet, i, "missing id")
			continue
		}
		petName := firstString(m, "petName", "name")
		if petName == "" {
			n.drop(EntityPet, i, "missing petName")
			continue
		}
		kind := cleanString(m["kind"])
		if kind == "" {
			kind = "Other"
		}
		now := n.now()
		out = append(out, Pet{
			SchemaVersion: Version,
			ID:            id,
			PetName:       petName,
			Kind:          kind,
			Breed:         cleanString(m["breed"]),
			AvatarURI:     firstString(m, "avatarUri", "avatar"),
			Feeding:       cleanString(m["feeding"]),
			Potty:         cleanString(m["potty"]),
			Sleep:         cleanString(m["sleep"]),
			Behavior:      cleanString(m["behavior"]),
			Medications:   cleanStringSlice(m["medications"]),
			Vaccinations:  cleanStringSlice(m["vaccinations"]),
			CreatedAt:     coerceTime(m["createdAt"], now),
			UpdatedAt:     now,
		})
	}
	return out
}

// Households normalizes a persisted household list. Member ids are weak
// references; nothing checks they resolve.
func (n *Normalizer) Households(v any) []Household {
	items := asSlice(v)
	out := make([]Household, 0, len(items))
	for i, raw := range items {
		m := asMap(raw)
		if m == nil {
			n.drop(EntityHousehold, i, "not an object")
			continue
		}
		id := cleanString(m["id"])
		if id == "" {
			n.drop(EntityHousehold, i, "missing id")
			continue
		}
		name := cleanString(m["name"])
		if name == "" {
			n.drop(EntityHousehold, i, "missing name")
			continue
		}
		now := n.now()
		out = append(out, Household{
			SchemaVersion: Version,
			ID:            id,
			Name:          name,
			Address:       cleanString(m["address"]),
			MemberIDs:     cleanStringSlice(m["memberIds"]),
			CreatedAt:     coerceTime(m["createdAt"], now),
			UpdatedAt:     coerceTime(m["updatedAt"], now),
		})
	}
	return out
}

// Records normalizes a persisted record list. The payload is accepted under
// either "data" or "payload" (older versions wrote "data"). Records whose
// type is unknown to the registry caller are still passed through here; only
// id and recordType are required.
func (n *Normalizer) Records(v any) []Record {
	items := asSlice(v)
	out := make([]Record, 0, len(items))
	for i, raw := range items {
		m := asMap(raw)
		if m == nil {
			n.drop(EntityRecord, i, "not an object")
			continue
		}
		id := cleanString(m["id"])
		if id == "" {
			n.drop(EntityRecord, i, "missing id")
			continue
		}
		recordType := cleanString(m["recordType"])
		if recordType == "" {
			n.drop(EntityRecord, i, "missing recordType")
			continue
		}
		payload := asMap(m["data"])
		if payload == nil {
			payload = asMap(m["payload"])
		}
		if payload == nil {
			payload = map[string]any{}
		}
		out = append(out, Record{
			SchemaVersion: Version,
			ID:            id,
			RecordType:    recordType,
			Title:         cleanString(m["title"]),
			UpdatedAt:     coerceTime(m["updatedAt"], time.Time{}),
			Payload:       payload,
		})
	}
	return out
}
