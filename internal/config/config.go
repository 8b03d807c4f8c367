// Package config builds the immutable process configuration. It is
// constructed once in main and passed by reference into each component;
// nothing outside this package reads the environment.
package config

import (
	"time"

	env "github.com/caarlos0/env/v6"
)

// CaptchaConfig holds the verification-provider settings.
type CaptchaConfig struct {
	Secret string `env:"RECAPTCHA_SECRET,notEmpty"`
	// MinScore rejects scored responses below this threshold. Unscored
	// responses pass regardless (success-only check).
	MinScore float64 `env:"RECAPTCHA_MIN_SCORE" envDefault:"0.5"`
	// ExpectedAction, when set, is compared against the action label the
	// provider returns. Responses without an action label are not checked.
	ExpectedAction string `env:"RECAPTCHA_ACTION"`
}

// MailConfig holds the outbound SMTP settings. From is the server's own
// verified sender identity; To is the fixed operator mailbox.
type MailConfig struct {
	Host     string `env:"MAIL_HOST,notEmpty"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	User     string `env:"MAIL_USER,notEmpty"`
	Password string `env:"MAIL_PASSWORD,notEmpty"`
	From     string `env:"MAIL_FROM,notEmpty"`
	To       string `env:"MAIL_TO,notEmpty"`
	// HTMLBody switches the message body from plain text to an HTML
	// rendering of the submission. Interpolated fields are stripped of
	// markup in HTML mode.
	HTMLBody bool `env:"MAIL_HTML_BODY" envDefault:"false"`
}

// RateLimitConfig bounds admitted submissions per client address.
type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"10m"`
}

// Config is the full server configuration.
type Config struct {
	ListenAddr     string   `env:"LISTEN_ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"INFO"`
	// DatabaseURL, when set, backs the admission limiter with a shared
	// Postgres store so multiple instances count against the same quota.
	// Empty means a per-process in-memory store.
	DatabaseURL string `env:"DATABASE_URL"`

	RateLimit RateLimitConfig
	Captcha   CaptchaConfig
	Mail      MailConfig
}

// Load parses the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
