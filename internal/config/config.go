package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Strata"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"strata"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Mailer struct {
		BaseURL string `envconfig:"MAILER_BASE_URL" default:"https://api.resend.com"`
		APIKey  string `envconfig:"MAILER_API_KEY"`
		From    string `envconfig:"MAILER_FROM" default:"levies@strata.local"`
	}

	Scheme struct {
		// ID scopes the operator TUI to a single scheme.
		ID string `envconfig:"SCHEME_ID"`
	}

	Dispatch struct {
		// Workers bounds concurrent notice sends; keep it under the email
		// provider's rate limit.
		Workers int `envconfig:"DISPATCH_WORKERS" default:"4"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
