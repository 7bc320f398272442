package company

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Record represents a single startup listing extracted from the page.
// Raw preserves the original JSON object text so downstream tools can
// recover fields the normalization step does not map.
type Record struct {
	Secteur     string `json:"secteur"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website,omitempty"`
	Raw         string `json:"raw"`
}

// Key aliases seen in the embedded payloads. Matching is case-insensitive.
var (
	nameKeys        = []string{"name", "title", "nom", "company"}
	secteurKeys     = []string{"secteur", "sector", "categorie", "category"}
	websiteKeys     = []string{"website", "site", "url"}
	descriptionKeys = []string{"description", "desc", "resume"}
)

// Normalize maps a loose JSON object onto a Record. The second return value
// is false when the object carries no recognizable name field; such objects
// are skipped by callers rather than defaulted.
func Normalize(obj map[string]any) (*Record, bool) {
	lower := make(map[string]any, len(obj))
	for k, v := range obj {
		lower[strings.ToLower(k)] = v
	}

	name := firstString(lower, nameKeys)
	if name == "" {
		return nil, false
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		// A map that came out of json.Unmarshal always marshals back.
		return nil, false
	}

	return &Record{
		Secteur:     firstString(lower, secteurKeys),
		Name:        name,
		Description: firstString(lower, descriptionKeys),
		Website:     firstString(lower, websiteKeys),
		Raw:         string(raw),
	}, true
}

// FindList walks a decoded JSON value looking for a list of objects whose
// first element carries a name-like key. Returns nil when no such list exists.
func FindList(v any) []map[string]any {
	switch val := v.(type) {
	case []any:
		if objs, ok := asObjectList(val); ok {
			return objs
		}
		for _, item := range val {
			if found := FindList(item); found != nil {
				return found
			}
		}
	case map[string]any:
		for _, item := range val {
			if found := FindList(item); found != nil {
				return found
			}
		}
	}
	return nil
}

// asObjectList reports whether val is a non-empty list of JSON objects whose
// first element has at least one name-like key.
func asObjectList(val []any) ([]map[string]any, bool) {
	if len(val) == 0 {
		return nil, false
	}
	first, ok := val[0].(map[string]any)
	if !ok {
		return nil, false
	}

	hasNameKey := false
	for k := range first {
		lk := strings.ToLower(k)
		for _, alias := range nameKeys {
			if lk == alias {
				hasNameKey = true
				break
			}
		}
	}
	if !hasNameKey {
		return nil, false
	}

	objs := make([]map[string]any, 0, len(val))
	for _, item := range val {
		if obj, ok := item.(map[string]any); ok {
			objs = append(objs, obj)
		}
	}
	return objs, true
}

// firstString returns the first non-empty string value among the aliased keys.
func firstString(lower map[string]any, keys []string) string {
	for _, k := range keys {
		if s := StringValue(lower[k]); s != "" {
			return s
		}
	}
	return ""
}

// StringValue renders a decoded JSON scalar as a string. Objects and arrays
// yield empty strings since none of the mapped columns hold nested values.
func StringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		// JSON numbers decode as float64; avoid trailing ".000000" for ints
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return ""
	}
}
