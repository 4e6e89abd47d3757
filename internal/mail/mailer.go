package mail

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender dispatches an assembled email and reports the provider-assigned
// message ID. An empty ID with a nil error means the provider does not assign
// one; that is not an error.
type Sender interface {
	Send(ctx context.Context, params SendParams) (string, error)
}

// Attachment carries binary content with an explicit filename and type.
type Attachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// SendParams represents one outgoing email.
type SendParams struct {
	To          string
	Subject     string
	BodyHTML    string
	BodyText    string
	Attachments []Attachment
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (p SendParams) Validate() error {
	if strings.TrimSpace(p.To) == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.To) {
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
