package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every external dependency's coordinates. Clients are
// constructed from it in main and passed down; nothing reads the
// environment after startup.
type Config struct {
	DatabaseURL   string
	AblefyBaseURL string
	AblefyAPIKey  string
	WebhookSecret string
	RabbitMQURL   string
	RedisAddr     string
	Port          string
}

// Load reads an optional .env file and the environment. Missing
// required variables are an error before any network call is made.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AblefyBaseURL: os.Getenv("ABLEFY_BASE_URL"),
		AblefyAPIKey:  os.Getenv("ABLEFY_API_KEY"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

// RequireSource guards modes that fetch from the legacy API; the
// webhook server runs without legacy credentials.
func (c *Config) RequireSource() error {
	return require(map[string]string{
		"ABLEFY_BASE_URL": c.AblefyBaseURL,
		"ABLEFY_API_KEY":  c.AblefyAPIKey,
	})
}

// RequireDatabase guards modes that write to or read from the target
// store; preview runs without target credentials.
func (c *Config) RequireDatabase() error {
	return require(map[string]string{"DATABASE_URL": c.DatabaseURL})
}

func (c *Config) RequireWebhook() error {
	return require(map[string]string{
		"DATABASE_URL":   c.DatabaseURL,
		"WEBHOOK_SECRET": c.WebhookSecret,
	})
}

func require(vars map[string]string) error {
	for key, val := range vars {
		if val == "" {
			return fmt.Errorf("config: missing required environment variable %s", key)
		}
	}
	return nil
}
