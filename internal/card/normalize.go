package card

import "strings"

// Vocabulary is the fixed set of recognized allergen tags, in the order they
// are laid out on the card templates.
var Vocabulary = []string{"eggs", "dairy", "peanuts", "tree_nuts", "shellfish", "soy"}

var vocabSet = func() map[string]bool {
	m := make(map[string]bool, len(Vocabulary))
	for _, tag := range Vocabulary {
		m[tag] = true
	}
	return m
}()

var supportedLanguages = map[string]bool{
	"en": true,
	"fr": true,
	"es": true,
	"pt": true,
	"zh": true,
}

// NormalizeLanguage maps a raw language value to a supported code.
// Unsupported or missing values default to "en"; this never errors.
func NormalizeLanguage(raw string) string {
	l := strings.ToLower(strings.TrimSpace(raw))
	if supportedLanguages[l] {
		return l
	}
	return "en"
}

// canonicalTag lowercases a raw allergen token and collapses internal
// whitespace to underscores, so "Tree Nuts " becomes "tree_nuts".
func canonicalTag(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}

// NormalizeAllergens extracts the canonical allergen set from a decoded
// request body. Three input shapes are accepted, first non-empty result wins:
// an "allergens" array, an "allergens" comma-separated string, or truthy
// checkbox fields named "allergens_<tag>". Unrecognized tokens are dropped,
// duplicates collapse, and the result is returned in Vocabulary order.
func NormalizeAllergens(body map[string]any) []string {
	seen := map[string]bool{}

	switch v := body["allergens"].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				addTag(seen, s)
			}
		}
	case []string:
		for _, s := range v {
			addTag(seen, s)
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			addTag(seen, part)
		}
	}

	if len(seen) == 0 {
		for key, val := range body {
			if !strings.HasPrefix(key, "allergens_") || !truthy(val) {
				continue
			}
			addTag(seen, strings.TrimPrefix(key, "allergens_"))
		}
	}

	out := make([]string, 0, len(seen))
	for _, tag := range Vocabulary {
		if seen[tag] {
			out = append(out, tag)
		}
	}
	return out
}

func addTag(seen map[string]bool, raw string) {
	if tag := canonicalTag(raw); vocabSet[tag] {
		seen[tag] = true
	}
}

// truthy reports whether a checkbox-style value counts as checked. Forms send
// strings ("on", "true", "1", "yes"), JSON sends booleans or numbers.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "on", "yes":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}
