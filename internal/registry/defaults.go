package registry

// defaultPayloads maps record types to the payload template a new record
// starts from. Templates are shared process-wide state; DefaultPayload hands
// out deep copies so caller mutation never reaches the table.
var defaultPayloads = map[RecordType]map[string]any{
	RecordTypeAllergies: {
		"allergen": "",
		"severity": "",
		"reaction": "",
	},
	RecordTypeMedications: {
		"name":       "",
		"dosage":     "",
		"frequency":  "",
		"prescriber": "",
	},
	RecordTypeConditions: {
		"condition": "",
		"diagnosed": "",
		"notes":     "",
	},
	RecordTypeVaccinations: {
		"vaccine":     "",
		"date":        "",
		"nextDueDate": "",
	},
	RecordTypeInsurance: {
		"provider":     "",
		"policyNumber": "",
		"groupNumber":  "",
		"phone":        "",
	},
	RecordTypePassport: {
		"number":     "",
		"country":    "",
		"expiryDate": "",
	},
	RecordTypeBirthCertificate: {
		"certificateNumber": "",
		"placeOfBirth":      "",
	},
	RecordTypeIDCard: {
		"number":     "",
		"issuer":     "",
		"expiryDate": "",
	},
	RecordTypeTrips: {
		"destination": "",
		"startDate":   "",
		"endDate":     "",
		"notes":       "",
	},
	RecordTypeLoyaltyPrograms: {
		"program":      "",
		"memberNumber": "",
	},
	RecordTypeSchools: {
		"school":    "",
		"grade":     "",
		"startYear": "",
	},
	RecordTypeEmergencyContacts: {
		"name":         "",
		"phone":        "",
		"relationship": "",
	},
	RecordTypeCareInstructions: {
		"instructions": "",
		"contacts":     []any{},
	},
}

// DefaultPayload returns a fresh copy of the payload template for t.
// Unknown or empty types yield an empty map rather than an error, so callers
// can always start from a mutable payload.
func DefaultPayload(t RecordType) map[string]any {
	tpl, ok := defaultPayloads[t]
	if !ok {
		return map[string]any{}
	}
	return deepCopyMap(tpl)
}

func deepCopyMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return t
	}
}
