package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Admin    AdminConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"3000"`
	URL             string        `env:"SERVER_URL"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DBConfig struct {
	// PublicURL wins over URL when both are set (managed platforms expose
	// an internal and a public connection string).
	URL       string `env:"DATABASE_URL"`
	PublicURL string `env:"DATABASE_PUBLIC_URL"`
	DataDir   string `env:"DATA_DIR" envDefault:"data"`
}

// DSN returns the postgres connection string, or "" when the flat-file
// backend should be used instead.
func (c DBConfig) DSN() string {
	if c.PublicURL != "" {
		return c.PublicURL
	}
	return c.URL
}

func (c DBConfig) UsePostgres() bool { return c.DSN() != "" }

type AdminConfig struct {
	Password   string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	TelegramID string `env:"ADMIN_TELEGRAM_ID"`
}

type TelegramConfig struct {
	BotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	AdminChatID string `env:"ADMIN_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	return cfg, nil
}
