package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the mail account credentials and endpoint settings.
//
// It is loaded once at process start and treated as immutable afterwards.
// The password is deliberately excluded from Redacted output; never log a
// Config directly.
type Config struct {
	// Account identity and secret.
	EmailUser string `env:"EMAIL_USER,required"`
	EmailPass string `env:"EMAIL_PASS,required"`

	// Read (IMAP) and send (SMTP) endpoints.
	IMAPServer string `env:"IMAP_SERVER" envDefault:"imap.gmail.com"`
	IMAPPort   int    `env:"IMAP_PORT" envDefault:"993"`
	SMTPServer string `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`

	// DialTimeout bounds connecting and negotiating TLS. OpTimeout bounds
	// each protocol command on an established connection.
	DialTimeout time.Duration `env:"EMAIL_DIAL_TIMEOUT" envDefault:"30s"`
	OpTimeout   time.Duration `env:"EMAIL_OP_TIMEOUT" envDefault:"30s"`

	// PreviewLength is the maximum number of runes of body text exposed
	// per message before truncation.
	PreviewLength int `env:"EMAIL_PREVIEW_LENGTH" envDefault:"300"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that env tags cannot express.
func (c *Config) Validate() error {
	if c.IMAPPort <= 0 || c.IMAPPort > 65535 {
		return fmt.Errorf("IMAP_PORT out of range: %d", c.IMAPPort)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT out of range: %d", c.SMTPPort)
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("EMAIL_PREVIEW_LENGTH must be positive, got %d", c.PreviewLength)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("EMAIL_DIAL_TIMEOUT must be positive, got %s", c.DialTimeout)
	}
	if c.OpTimeout <= 0 {
		return fmt.Errorf("EMAIL_OP_TIMEOUT must be positive, got %s", c.OpTimeout)
	}
	return nil
}

// IMAPAddr returns the IMAP endpoint as host:port.
func (c *Config) IMAPAddr() string {
	return fmt.Sprintf("%s:%d", c.IMAPServer, c.IMAPPort)
}

// SMTPAddr returns the SMTP endpoint as host:port.
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPServer, c.SMTPPort)
}

// Redacted returns a loggable description of the account with the secret
// removed.
func (c *Config) Redacted() string {
	return fmt.Sprintf("user=%s imap=%s smtp=%s", c.EmailUser, c.IMAPAddr(), c.SMTPAddr())
}
