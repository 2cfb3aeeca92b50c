package config

import (
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config holds everything a single digest run needs. It is loaded once at
// startup and passed into the pipeline; nothing reads the environment after
// Load returns.
type Config struct {
	HNBaseURL      string `env:"HN_BASE_URL"    envDefault:"https://hacker-news.firebaseio.com/v0"`
	StoryCount     int    `env:"STORY_COUNT"    envDefault:"50"`
	RecipientEmail string `env:"RECIPIENT_EMAIL,required,notEmpty"`
	SMTPHost       string `env:"SMTP_HOST,required,notEmpty"`
	SMTPPort       string `env:"SMTP_PORT,required,notEmpty"`
	SMTPFrom       string `env:"SMTP_FROM,required,notEmpty"`
	SMTPPassword   string `env:"SMTP_PASSWORD,required,notEmpty"`
	ProxyURL       string `env:"PROXY_URL"`
	LogLevelRaw    string `env:"LOG_LEVEL"      envDefault:"INFO"`

	LogLevel slog.Level `env:"-"`
}

// Load reads the configuration from the environment. Any missing required
// value or unparseable value is reported here, before any network call.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse environment")
	}

	if cfg.StoryCount <= 0 {
		return Config{}, errors.Errorf("STORY_COUNT must be positive, got %d", cfg.StoryCount)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(cfg.LogLevelRaw)); err != nil {
		return Config{}, errors.Wrapf(err, "invalid LOG_LEVEL %q", cfg.LogLevelRaw)
	}

	return cfg, nil
}
