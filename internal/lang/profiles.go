package lang

import "strings"

// Profile bundles the static per-language assets: the base template image,
// the localized strings drawn on and around the card, and the email subject.
// EmergencyLabel is drawn onto the card image and must stay within the
// compositor's font coverage.
type Profile struct {
	Code           string
	TemplateFile   string
	EmergencyLabel string
	Subject        string
	Greeting       func(name string) string
}

var profiles = map[string]Profile{
	"en": {
		Code:           "en",
		TemplateFile:   "card_en.png",
		EmergencyLabel: "Emergency contact:",
		Subject:        "Your allergy card",
		Greeting:       greeting("Hi %s, your allergy card is ready.", "Hi, your allergy card is ready."),
	},
	"fr": {
		Code:           "fr",
		TemplateFile:   "card_fr.png",
		EmergencyLabel: "Contact d'urgence :",
		Subject:        "Votre carte d'allergies",
		Greeting:       greeting("Bonjour %s, votre carte d'allergies est prête.", "Bonjour, votre carte d'allergies est prête."),
	},
	"es": {
		Code:           "es",
		TemplateFile:   "card_es.png",
		EmergencyLabel: "Contacto de emergencia:",
		Subject:        "Tu tarjeta de alergias",
		Greeting:       greeting("Hola %s, tu tarjeta de alergias está lista.", "Hola, tu tarjeta de alergias está lista."),
	},
	"pt": {
		Code:           "pt",
		TemplateFile:   "card_pt.png",
		EmergencyLabel: "Contato de emergência:",
		Subject:        "Seu cartão de alergias",
		Greeting:       greeting("Olá %s, seu cartão de alergias está pronto.", "Olá, seu cartão de alergias está pronto."),
	},
	// The zh card draws its label in English: the embedded face covers Latin
	// scripts only, and a CJK label would render as .notdef boxes.
	// TODO: ship a CJK face and restore 紧急联系人 as the drawn label.
	"zh": {
		Code:           "zh",
		TemplateFile:   "card_zh.png",
		EmergencyLabel: "Emergency contact:",
		Subject:        "您的过敏卡",
		Greeting:       greeting("%s您好，您的过敏卡已准备就绪。", "您好，您的过敏卡已准备就绪。"),
	},
}

// Select returns the profile for a normalized language code. Unknown codes
// fall back to English so the lookup is total.
func Select(code string) Profile {
	if p, ok := profiles[code]; ok {
		return p
	}
	return profiles["en"]
}

func greeting(withName, withoutName string) func(string) string {
	return func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return withoutName
		}
		return strings.Replace(withName, "%s", name, 1)
	}
}
