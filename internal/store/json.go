package store

import "encoding/json"

// marshalJSON encodes v, falling back to an empty JSON array on error.
// Values come from validated form input, so failures are not expected.
func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// unmarshalStrings decodes a JSON-encoded string slice column.
func unmarshalStrings(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
