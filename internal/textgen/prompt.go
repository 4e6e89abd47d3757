package textgen

import (
	"fmt"
	"strings"

	"github.com/youruser/allergycard/internal/card"
)

// buildCardPrompt asks the backend for the card text in the target language.
func buildCardPrompt(f card.Fields) string {
	contact := strings.TrimSpace(f.ContactName + " " + f.ContactPhone)
	if contact == "" {
		contact = "none"
	}

	return fmt.Sprintf(`You are writing the text of a food-allergy card that its owner shows to restaurant staff.

NAME: %s
ALLERGIES: %s
EMERGENCY CONTACT: %s

Write the card text in the language with ISO code %q. It must state the owner's name, list the allergies, warn that even trace amounts can cause a severe reaction, and give the emergency contact. Return plain text with line breaks only - no markdown, no commentary.`,
		f.Name, HumanAllergenList(f.Allergens), contact, f.Language)
}

// HumanAllergenList renders allergen tags human-readably: underscores become
// spaces and tags are comma-joined. An empty set renders as "none".
func HumanAllergenList(allergens []string) string {
	if len(allergens) == 0 {
		return "none"
	}
	parts := make([]string, len(allergens))
	for i, tag := range allergens {
		parts[i] = strings.ReplaceAll(tag, "_", " ")
	}
	return strings.Join(parts, ", ")
}
