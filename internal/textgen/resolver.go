package textgen

import (
	"context"
	"log/slog"

	"github.com/youruser/allergycard/internal/card"
)

// Provider generates localized card text from a prompt.
type Provider interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Resolver produces the card text: generative backend first, deterministic
// fallback on any failure. A nil provider means the backend is not configured
// and every request takes the fallback path.
type Resolver struct {
	provider Provider
	log      *slog.Logger
}

func NewResolver(provider Provider, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{provider: provider, log: log}
}

// Resolve never fails; backend errors degrade to the fallback text and are
// logged for operators only.
func (r *Resolver) Resolve(ctx context.Context, f card.Fields) string {
	if r.provider != nil {
		text, err := r.provider.GenerateText(ctx, buildCardPrompt(f))
		if err == nil {
			return text
		}
		r.log.Warn("text backend unavailable, using fallback card text", "error", err)
	}
	return FallbackText(f)
}
