package helpers

import (
	"encoding/json"
	"strings"
)

// ParseListField reads a multi-valued form field. A value starting with "[" is decoded
// as a JSON array of strings; anything else is split on commas. Items are trimmed and
// empty items dropped. A malformed JSON array yields an error.
func ParseListField(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, err
		}
	} else {
		items = strings.Split(raw, ",")
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out, nil
}
