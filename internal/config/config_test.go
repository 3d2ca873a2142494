package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBase(t *testing.T) {
	t.Setenv("ABLEFY_BASE_URL", "https://api.ablefy.test")
	t.Setenv("ABLEFY_API_KEY", "key")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("WEBHOOK_SECRET", "")
	t.Setenv("PORT", "")
}

func TestLoad(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "https://api.ablefy.test", cfg.AblefyBaseURL)
	assert.Equal(t, "8080", cfg.Port)
}

func TestRequireSource(t *testing.T) {
	setBase(t)
	t.Setenv("ABLEFY_API_KEY", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.ErrorContains(t, cfg.RequireSource(), "ABLEFY_API_KEY")

	t.Setenv("ABLEFY_API_KEY", "key")
	cfg, err = Load()
	assert.NoError(t, err)
	assert.NoError(t, cfg.RequireSource())
}

func TestRequireDatabase(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.ErrorContains(t, cfg.RequireDatabase(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	cfg, err = Load()
	assert.NoError(t, err)
	assert.NoError(t, cfg.RequireDatabase())
	assert.ErrorContains(t, cfg.RequireWebhook(), "WEBHOOK_SECRET")
}
