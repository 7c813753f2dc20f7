package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime settings, populated from the environment.
// Model API keys are not marked required here: main validates the keys the
// configured backends actually need and fails at startup, which gives a
// clearer message than a blanket required tag.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" env-default:":8000"`
	DBPath     string `env:"DB_PATH" env-default:"gentlegains.db"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	ChatModel     string `env:"CHAT_MODEL" env-default:"gpt-4o"`

	VisionBackend string `env:"VISION_BACKEND" env-default:"openai"`
	VisionModel   string `env:"VISION_MODEL" env-default:"gpt-4o"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-20250514"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `env:"LOG_FILE"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}
