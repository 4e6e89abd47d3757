package textgen

import (
	"strings"

	"github.com/youruser/allergycard/internal/card"
)

const safetySentence = "Please make sure my food does not contain any of these ingredients. Even small amounts can cause a severe reaction."

// FallbackText renders the deterministic card text used when the generative
// backend is unavailable. It depends on nothing external: same input, same
// output, every time.
func FallbackText(f card.Fields) string {
	lines := []string{}
	if name := strings.TrimSpace(f.Name); name != "" {
		lines = append(lines, name)
	}
	if len(f.Allergens) > 0 {
		lines = append(lines, "Allergies: "+HumanAllergenList(f.Allergens))
	} else {
		lines = append(lines, "Allergies: None specified")
	}
	lines = append(lines, safetySentence)
	if contact := contactLine(f.ContactName, f.ContactPhone); contact != "" {
		lines = append(lines, contact)
	}
	lines = append(lines, strings.ToUpper(f.Language))
	return strings.Join(lines, "\n")
}

// contactLine formats "Emergency contact: NAME (PHONE)", dropping the
// parenthesized phone when empty and the whole line when both are empty.
func contactLine(name, phone string) string {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" && phone == "" {
		return ""
	}
	line := "Emergency contact:"
	if name != "" {
		line += " " + name
	}
	if phone != "" {
		line += " (" + phone + ")"
	}
	return line
}
