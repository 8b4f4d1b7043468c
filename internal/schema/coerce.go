package schema

import (
	"strconv"
	"strings"
	"time"
)

// Coercion helpers. Each takes a value of unknown shape and produces a value
// of the expected type, degrading to a zero/fallback instead of failing.

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// cleanString returns v trimmed if it is a string, "" otherwise.
func cleanString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// firstString resolves field aliasing: candidate keys are tried in order and
// the first non-empty cleaned value wins.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := cleanString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// cleanStringSlice keeps only string items, trimmed, with empties filtered.
func cleanStringSlice(v any) []string {
	items := asSlice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := cleanString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// truthy applies loose boolean coercion the way the legacy persisted data
// expects: booleans as-is, non-blank strings and non-zero numbers are true.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return false
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// coerceTime parses an ISO-8601 timestamp, falling back when the value is
// absent or unparsable.
func coerceTime(v any, fallback time.Time) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return ts
			}
		}
	}
	return fallback
}
