package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/Jason910315/gentle-gains/internal/coach"
	coachopenai "github.com/Jason910315/gentle-gains/internal/coach/openai"
	"github.com/Jason910315/gentle-gains/internal/config"
	"github.com/Jason910315/gentle-gains/internal/db"
	"github.com/Jason910315/gentle-gains/internal/logging"
	"github.com/Jason910315/gentle-gains/internal/nutrition"
	"github.com/Jason910315/gentle-gains/internal/nutrition/anthropic"
	visionopenai "github.com/Jason910315/gentle-gains/internal/nutrition/openai"
	"github.com/Jason910315/gentle-gains/internal/store"
	"github.com/Jason910315/gentle-gains/internal/web"
)

func main() {
	// Local development keeps credentials in a .env file; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	analyzer := newAnalyzer(cfg, logger)
	if analyzer == nil {
		return
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY is required for the coach chat")
		return
	}
	completer := coachopenai.NewCompleter(cfg.OpenAIAPIKey, cfg.ChatModel, cfg.OpenAIBaseURL)
	agent := coach.NewAgent(store.NewChatStore(database), completer, logger)

	server := web.NewServer(analyzer, store.NewFoodStore(database), store.NewWorkoutStore(database), agent, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAnalyzer(cfg *config.Config, logger *slog.Logger) nutrition.Analyzer {
	switch cfg.VisionBackend {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when VISION_BACKEND=anthropic")
			return nil
		}
		logger.Info("using Anthropic vision backend", "model", cfg.AnthropicModel)
		return anthropic.NewAnalyzer(cfg.AnthropicAPIKey, cfg.AnthropicModel, "", logger)
	default:
		if cfg.OpenAIAPIKey == "" {
			logger.Error("OPENAI_API_KEY is required when VISION_BACKEND=openai")
			return nil
		}
		logger.Info("using OpenAI vision backend", "model", cfg.VisionModel)
		return visionopenai.NewAnalyzer(cfg.OpenAIAPIKey, cfg.VisionModel, cfg.OpenAIBaseURL, logger)
	}
}
