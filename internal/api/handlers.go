package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/allergycard/internal/card"
	"github.com/youruser/allergycard/internal/config"
	imagepkg "github.com/youruser/allergycard/internal/image"
	"github.com/youruser/allergycard/internal/lang"
	"github.com/youruser/allergycard/internal/mail"
	"github.com/youruser/allergycard/internal/textgen"
)

// Uploader is the optional best-effort image host for shareable card links.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Handler serves the allergy-card endpoint. A nil sender means the mail
// transport is unconfigured; a nil uploader disables the share link.
type Handler struct {
	cfg      config.Config
	composer *imagepkg.Composer
	resolver *textgen.Resolver
	sender   mail.Sender
	uploader Uploader
	log      *slog.Logger
}

func NewHandler(cfg config.Config, composer *imagepkg.Composer, resolver *textgen.Resolver, sender mail.Sender, uploader Uploader, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		cfg:      cfg,
		composer: composer,
		resolver: resolver,
		sender:   sender,
		uploader: uploader,
		log:      log,
	}
}

// createCard runs the whole pipeline for one request: normalize, select the
// language profile, render the card (text or image), dispatch the email.
func (h *Handler) createCard(c *gin.Context) {
	var req card.Request
	body, err := bindRequest(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body: " + err.Error()})
		return
	}

	format := card.NormalizeFormat(req.Format)
	var missing []string
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if format == card.FormatText && strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing required fields: " + strings.Join(missing, ", ")})
		return
	}

	if h.sender == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":    false,
			"error": "mail transport is not configured: set POSTMARK_SERVER_TOKEN, POSTMARK_ACCOUNT_TOKEN and SENDER_EMAIL (or MAIL_DEV_DIR for development)",
		})
		return
	}

	fields := card.Fields{
		Name:         strings.TrimSpace(req.Name),
		Language:     card.NormalizeLanguage(req.Language),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Allergens:    card.NormalizeAllergens(body),
	}
	profile := lang.Select(fields.Language)
	ctx := c.Request.Context()

	params := mail.SendParams{To: strings.TrimSpace(req.Email), Subject: profile.Subject}
	var publicURL string

	switch format {
	case card.FormatText:
		text := h.resolver.Resolve(ctx, fields)
		params.BodyText = text
		params.BodyHTML, err = mail.RenderBody(profile.Greeting(fields.Name), text, "")
	default:
		var data []byte
		data, err = h.renderCardImage(profile, fields)
		if err != nil {
			break
		}
		publicURL = h.uploadCard(ctx, data)
		params.Attachments = append(params.Attachments, mail.Attachment{
			Name:        "allergy-card.png",
			ContentType: "image/png",
			Content:     data,
		})
		if publicURL != "" {
			if qr, qrErr := imagepkg.GenerateQRPNG(publicURL, 256); qrErr == nil {
				params.Attachments = append(params.Attachments, mail.Attachment{
					Name:        "allergy-card-qr.png",
					ContentType: "image/png",
					Content:     qr,
				})
			} else {
				h.log.Warn("qr generation failed", "error", qrErr)
			}
		}
		params.BodyHTML, err = mail.RenderBody(profile.Greeting(fields.Name), "", publicURL)
	}
	if err != nil {
		h.log.Error("rendering card", "error", err, "language", fields.Language)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	messageID, err := h.sender.Send(ctx, params)
	if err != nil {
		h.log.Error("sending card email", "error", err, "to", params.To)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	resp := gin.H{"ok": true, "emailed_to": params.To}
	if messageID != "" {
		resp["messageId"] = messageID
	}
	if publicURL != "" {
		resp["url"] = publicURL
	}
	c.JSON(http.StatusOK, resp)
}

// renderCardImage loads the language template and composes the overlay.
func (h *Handler) renderCardImage(profile lang.Profile, fields card.Fields) ([]byte, error) {
	tpl, err := imagepkg.LoadTemplate(h.cfg.TemplateDir, profile.TemplateFile)
	if err != nil {
		return nil, err
	}
	emergencyLine := joinNonEmpty(profile.EmergencyLabel, fields.ContactName, fields.ContactPhone)
	img, err := h.composer.Compose(tpl, fields.Name, fields.Allergens, emergencyLine)
	if err != nil {
		return nil, err
	}
	return imagepkg.EncodePNG(img)
}

// uploadCard pushes the rendered card to the image host. Best-effort: a
// failure is logged and the email still goes out without a link.
func (h *Handler) uploadCard(ctx context.Context, data []byte) string {
	if h.uploader == nil {
		return ""
	}
	key := fmt.Sprintf("cards/%d.png", time.Now().UnixNano())
	url, err := h.uploader.Upload(ctx, key, "image/png", data)
	if err != nil {
		h.log.Warn("card image upload failed", "error", err)
		return ""
	}
	return url
}

// bindRequest decodes the body into both the typed request and a raw map so
// the allergens field can be read in any of its accepted shapes.
func bindRequest(c *gin.Context, req *card.Request) (map[string]any, error) {
	if c.ContentType() == "application/json" {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		body := map[string]any{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, err
			}
			if err := json.Unmarshal(raw, req); err != nil {
				return nil, err
			}
		}
		return body, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	form := c.Request.PostForm
	req.Email = form.Get("email")
	req.Name = form.Get("name")
	req.ContactName = form.Get("contact_name")
	req.ContactPhone = form.Get("contact_phone")
	req.Language = form.Get("language")
	req.Format = form.Get("format")

	body := make(map[string]any, len(form))
	for key, vals := range form {
		switch len(vals) {
		case 0:
		case 1:
			body[key] = vals[0]
		default:
			items := make([]any, len(vals))
			for i, v := range vals {
				items[i] = v
			}
			body[key] = items
		}
	}
	return body, nil
}

// joinNonEmpty space-joins its non-empty arguments; empty fields collapse
// instead of leaving double spaces.
func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
