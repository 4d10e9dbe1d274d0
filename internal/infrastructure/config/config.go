package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,          default=8080"`
	Env       string `env:"ENV,           default=development"`
	LogLevel  string `env:"LOG_LEVEL,     default=info"`
	SiteName  string `env:"SITE_NAME,     default=Digital Get Services"`
	DBPath    string `env:"DB_PATH,       default=site.sqlite"`
	StaticDir string `env:"STATIC_DIR,    default=static"`
	Templates string `env:"TEMPLATES_DIR, default=templates"`

	Admin AdminConfig
	Mail  MailConfig
	Redis RedisConfig
}

// AdminConfig seeds the first administrator account on an empty database.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@digitalgetservices.local"`
	Password string `env:"ADMIN_PASSWORD, default=Admin12345!"`
	FullName string `env:"ADMIN_NAME,     default=Administrator"`
}

type MailConfig struct {
	Enabled  bool   `env:"MAIL_ENABLED,       default=true"`
	Host     string `env:"MAIL_SMTP_HOST"`
	Port     int    `env:"MAIL_SMTP_PORT,     default=25"`
	From     string `env:"MAIL_FROM_EMAIL,    default=no-reply@localhost"`
	Username string `env:"MAIL_SMTP_USERNAME"`
	Password string `env:"MAIL_SMTP_PASSWORD"`
	UseTLS   bool   `env:"MAIL_SMTP_USE_TLS,  default=true"`
	UseSSL   bool   `env:"MAIL_SMTP_USE_SSL,  default=false"`
	// ContactEmail receives contact-form notifications.
	ContactEmail string `env:"CONTACT_EMAIL, default=contact@digitalgetservices.local"`
}

// RedisConfig selects the shared session store. When Addr is empty the
// server falls back to the in-process store.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
