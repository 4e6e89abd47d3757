package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// User-influenced text (greeting name, generated card text) is interpolated
// through html/template, which escapes angle brackets and ampersands.
var bodyTmpl = template.Must(template.New("card_email").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, Helvetica, sans-serif; color: #212121;">
    <p>{{.Greeting}}</p>
{{- if .CardText}}
    <pre style="background: #f5f5f5; padding: 16px; border-radius: 4px; white-space: pre-wrap;">{{.CardText}}</pre>
{{- end}}
{{- if .URL}}
    <p><a href="{{.URL}}">View or share your card online</a></p>
{{- end}}
    <p>Keep this card with you and show it when ordering food.</p>
  </body>
</html>
`))

// RenderBody assembles the HTML email body. CardText and URL are optional and
// their sections collapse when empty.
func RenderBody(greeting, cardText, url string) (string, error) {
	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, struct {
		Greeting string
		CardText string
		URL      string
	}{greeting, cardText, url})
	if err != nil {
		return "", fmt.Errorf("rendering email body: %w", err)
	}
	return buf.String(), nil
}
