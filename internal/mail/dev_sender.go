package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/youruser/allergycard/internal/util"
)

// DevSender implements Sender for local development. It writes each email as
// an HTML file plus a JSON metadata sidecar (and any attachments) to a
// directory instead of sending it, and assigns no message ID.
type DevSender struct {
	dir string
}

func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type emailMetadata struct {
	Timestamp   string   `json:"timestamp"`
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Attachments []string `json:"attachments,omitempty"`
}

func (d *DevSender) Send(ctx context.Context, params SendParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	if err := util.EnsureDir(d.dir); err != nil {
		return "", fmt.Errorf("%w: creating output dir: %v", ErrFailedToSend, err)
	}

	// nanoseconds keep rapid sends of the same subject from overwriting
	// each other
	now := time.Now()
	base := fmt.Sprintf("%s_%09d_%s", now.Format("2006_01_02_150405"), now.Nanosecond(), util.SanitizeFilename(params.Subject))

	htmlPath := filepath.Join(d.dir, base+".html")
	if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0o644); err != nil {
		return "", fmt.Errorf("%w: writing HTML file: %v", ErrFailedToSend, err)
	}

	meta := emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        params.To,
		Subject:   params.Subject,
	}
	for _, a := range params.Attachments {
		name := base + "_" + util.SanitizeFilename(a.Name)
		if err := os.WriteFile(filepath.Join(d.dir, name), a.Content, 0o644); err != nil {
			return "", fmt.Errorf("%w: writing attachment: %v", ErrFailedToSend, err)
		}
		meta.Attachments = append(meta.Attachments, name)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: marshaling metadata: %v", ErrFailedToSend, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: writing metadata file: %v", ErrFailedToSend, err)
	}

	return "", nil
}
