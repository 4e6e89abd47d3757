package card

// Request is the inbound allergy-card request as bound from the HTTP body.
// The allergens field is not bound here because it arrives in several shapes;
// see NormalizeAllergens.
type Request struct {
	Email        string `json:"email" form:"email"`
	Name         string `json:"name" form:"name"`
	ContactName  string `json:"contact_name" form:"contact_name"`
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
	Language     string `json:"language" form:"language"`
	Format       string `json:"format" form:"format"`
}

// Fields is the normalized card content handed to rendering and text
// generation.
type Fields struct {
	Name         string
	Language     string
	ContactName  string
	ContactPhone string
	Allergens    []string
}

// Card output formats.
const (
	FormatImage = "image"
	FormatText  = "text"
)

// NormalizeFormat maps the raw format field to a known output format,
// defaulting to the image card.
func NormalizeFormat(raw string) string {
	if raw == FormatText {
		return FormatText
	}
	return FormatImage
}
