package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/youruser/allergycard/internal/mail"
	"github.com/youruser/allergycard/internal/upload"
)

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the config struct.
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

// Config is the full service configuration. Credentials carry no `required`
// tags: a missing transport or backend credential is reported per request
// with a descriptive message instead of preventing startup.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"assets/templates"`
	CORSEnabled bool   `env:"CORS_ENABLED" envDefault:"false"`

	// MailDevDir switches delivery to on-disk files when Postmark is not
	// configured.
	MailDevDir string `env:"MAIL_DEV_DIR"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL"`

	Mail   mail.Config
	Upload upload.Config
}

var loadEnvOnce sync.Once

// Load parses environment variables into the service configuration.
// A .env file, when present, is loaded first.
func Load() (Config, error) {
	loadEnvOnce.Do(func() {
		// the .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
