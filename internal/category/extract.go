package category

import (
	"encoding/json"
	"strings"
)

// accessor is a path into a decoded JSON document. Elements are object keys (string)
// or array indexes (int).
type accessor []any

// Response shapes the classifier is known to answer with, tried in order.
var categoryAccessors = []accessor{
	{"categories_in_training_data", 0},
	{"category"},
	{"data", "category"},
	{"predicted_category"},
	{"classification"},
	{"result", "category"},
}

// Extract pulls the first non-empty category string out of a classifier response
func Extract(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", false
	}
	for _, path := range categoryAccessors {
		if s, ok := path.lookup(doc); ok {
			return s, true
		}
	}
	return "", false
}

func (a accessor) lookup(doc any) (string, bool) {
	cur := doc
	for _, step := range a {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return "", false
			}
			cur = m[key]
		case int:
			arr, ok := cur.([]any)
			if !ok || key >= len(arr) {
				return "", false
			}
			cur = arr[key]
		}
	}
	s, ok := cur.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	return s, ok && s != ""
}
