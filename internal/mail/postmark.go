package mail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

// Config holds mail transport configuration. The tokens are optional so
// development environments can run on the dev sender instead; the sender
// address establishes the verified "from" identity for all outbound mail.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
}

// Configured reports whether any Postmark setting is present. A partially
// filled config is a misconfiguration to report, not a dev setup.
func (c Config) Configured() bool {
	return c.PostmarkServerToken != "" || c.PostmarkAccountToken != "" || c.SenderEmail != ""
}

type postmarkSender struct {
	client *postmark.Client
	cfg    Config
}

// NewPostmarkSender creates a Postmark-backed sender. All credentials are
// validated here so a misconfigured transport is reported by name instead of
// failing deep inside the provider library.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_ACCOUNT_TOKEN is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SENDER_EMAIL is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SENDER_EMAIL must be a valid email address", ErrInvalidConfig)
	}
	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		cfg:    cfg,
	}, nil
}

// Send dispatches through Postmark's transactional API and returns the
// provider message ID.
func (s *postmarkSender) Send(ctx context.Context, params SendParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	msg := postmark.Email{
		From:       s.cfg.SenderEmail,
		To:         params.To,
		Subject:    params.Subject,
		HTMLBody:   params.BodyHTML,
		TextBody:   params.BodyText,
		Tag:        "allergy-card",
		TrackOpens: true,
	}
	if s.cfg.ReplyToEmail != "" {
		msg.ReplyTo = s.cfg.ReplyToEmail
	}
	for _, a := range params.Attachments {
		msg.Attachments = append(msg.Attachments, postmark.Attachment{
			Name:        a.Name,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		})
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return "", errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return "", errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return resp.MessageID, nil
}
