package schema

// OCR status values as persisted. The status/error coupling is restored
// during normalization: error text survives only alongside a failed status.
const (
	OcrStatusReady      = "READY"
	OcrStatusUnreadable = "UNREADABLE"
	OcrStatusFailed     = "FAILED"
)

// Documents normalizes a persisted document list. Elements missing an id or
// a uri are dropped. Link refs missing either side are dropped from the
// list; dangling-but-complete refs are kept as-is.
func (n *Normalizer) Documents(v any) []Document {
	items := asSlice(v)
	out := make([]Document, 0, len(items))
	for i, raw := range items {
		m := asMap(raw)
		if m == nil {
			n.drop(EntityDocument, i, "not an object")
			continue
		}
		id := cleanString(m["id"])
		if id == "" {
			n.drop(EntityDocument, i, "missing id")
			continue
		}
		uri := cleanString(m["uri"])
		if uri == "" {
			n.drop(EntityDocument, i, "missing uri")
			continue
		}
		mimeType := cleanString(m["mimeType"])
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		out = append(out, Document{
			SchemaVersion: Version,
			ID:            id,
			URI:           uri,
			MimeType:      mimeType,
			FileName:      cleanString(m["fileName"]),
			SizeBytes:     asInt64(m["sizeBytes"]),
			SHA256:        cleanString(m["sha256"]),
			Title:         cleanString(m["title"]),
			Note:          cleanString(m["note"]),
			Tags:          cleanStringSlice(m["tags"]),
			LinkedTo:      n.linkRefs(m["linkedTo"]),
			OCR:           n.ocrResult(m["ocr"]),
			CreatedAt:     coerceTime(m["createdAt"], n.now()),
		})
	}
	return out
}

func (n *Normalizer) linkRefs(v any) []LinkRef {
	items := asSlice(v)
	out := make([]LinkRef, 0, len(items))
	for _, item := range items {
		m := asMap(item)
		if m == nil {
			continue
		}
		ref := LinkRef{
			RecordType: cleanString(m["recordType"]),
			RecordID:   cleanString(m["recordId"]),
		}
		if ref.RecordType == "" || ref.RecordID == "" {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// ocrResult normalizes the current extraction result slot. An unrecognized
// status invalidates the whole result (nil), matching the drop-not-guess
// policy for the rest of the layer.
func (n *Normalizer) ocrResult(v any) *OcrResult {
	m := asMap(v)
	if m == nil {
		return nil
	}
	status := cleanString(m["status"])
	switch status {
	case OcrStatusReady, OcrStatusUnreadable, OcrStatusFailed:
	default:
		return nil
	}
	r := &OcrResult{
		Text:        cleanString(m["text"]),
		Lines:       cleanStringSlice(m["lines"]),
		ExtractedAt: coerceTime(m["extractedAt"], n.now()),
		Engine:      cleanString(m["engine"]),
		Status:      status,
	}
	if status == OcrStatusFailed {
		r.Error = cleanString(m["error"])
		if r.Error == "" {
			r.Error = "extraction failed"
		}
	}
	return r
}
