package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/youruser/allergycard/internal/api"
	"github.com/youruser/allergycard/internal/config"
	imagepkg "github.com/youruser/allergycard/internal/image"
	"github.com/youruser/allergycard/internal/mail"
	"github.com/youruser/allergycard/internal/textgen"
	"github.com/youruser/allergycard/internal/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	composer, err := imagepkg.NewComposer()
	if err != nil {
		logger.Error("initializing composer", "error", err)
		os.Exit(1)
	}

	var provider textgen.Provider
	if cfg.OpenAIAPIKey != "" {
		p, err := textgen.NewOpenAIProvider(textgen.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
		})
		if err != nil {
			logger.Warn("text backend disabled", "error", err)
		} else {
			provider = p
		}
	} else {
		logger.Warn("OPENAI_API_KEY not set, card text will use the deterministic fallback")
	}
	resolver := textgen.NewResolver(provider, logger)

	var sender mail.Sender
	s, err := mail.NewPostmarkSender(cfg.Mail)
	switch {
	case err == nil:
		sender = s
	case cfg.Mail.Configured():
		// partial Postmark settings must not silently drop to the dev
		// sender; card requests answer 500 until the config is completed
		logger.Error("mail transport misconfigured", "error", err)
	case cfg.MailDevDir != "":
		logger.Warn("postmark not configured, writing emails to disk", "dir", cfg.MailDevDir)
		sender = mail.NewDevSender(cfg.MailDevDir)
	default:
		// card requests will answer 500 until the transport is configured
		logger.Warn("mail transport not configured", "error", err)
	}

	var uploader api.Uploader
	if cfg.Upload.Enabled() {
		u, err := upload.NewS3Uploader(context.Background(), cfg.Upload)
		if err != nil {
			logger.Warn("image upload disabled", "error", err)
		} else {
			uploader = u
		}
	}

	h := api.NewHandler(cfg, composer, resolver, sender, uploader, logger)

	r := gin.Default()
	api.RegisterRoutes(r, h, cfg.CORSEnabled)

	logger.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from LOG_FORMAT and LOG_LEVEL.
func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
