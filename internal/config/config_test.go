package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "openai", cfg.VisionBackend)
	assert.NotEmpty(t, cfg.ChatModel)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/coach.db")
	t.Setenv("VISION_BACKEND", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test123")
	t.Setenv("CHAT_MODEL", "gpt-4o-mini")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/coach.db", cfg.DBPath)
	assert.Equal(t, "anthropic", cfg.VisionBackend)
	assert.Equal(t, "sk-ant-test123", cfg.AnthropicAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
}
