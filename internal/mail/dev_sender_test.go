package mail_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/allergycard/internal/mail"
)

func TestDevSender_Send(t *testing.T) {
	t.Parallel()

	params := mail.SendParams{
		To:       "user@example.com",
		Subject:  "Your allergy card",
		BodyHTML: "<p>hello</p>",
		Attachments: []mail.Attachment{
			{Name: "allergy-card.png", ContentType: "image/png", Content: []byte{0x89, 0x50}},
		},
	}

	t.Run("writes html, metadata and attachments", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := mail.NewDevSender(dir)

		id, err := sender.Send(context.Background(), params)
		require.NoError(t, err)
		assert.Empty(t, id, "dev sender assigns no message id")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch {
			case strings.HasSuffix(e.Name(), ".html"):
				htmlFile = e.Name()
			case strings.HasSuffix(e.Name(), ".json"):
				jsonFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)

		html, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, params.BodyHTML, string(html))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "user@example.com", meta["to"])
		assert.Equal(t, "Your allergy card", meta["subject"])
	})

	t.Run("rapid sends of the same subject never overwrite", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := mail.NewDevSender(dir)

		noAttachments := params
		noAttachments.Attachments = nil
		for range 3 {
			_, err := sender.Send(context.Background(), noAttachments)
			require.NoError(t, err)
		}

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 6, "each send keeps its own html and json files")
	})

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "mail-out")
		sender := mail.NewDevSender(dir)

		_, err := sender.Send(context.Background(), params)
		require.NoError(t, err)

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()
		sender := mail.NewDevSender(t.TempDir())
		_, err := sender.Send(context.Background(), mail.SendParams{To: "user@example.com"})
		assert.ErrorIs(t, err, mail.ErrInvalidParams)
	})
}
