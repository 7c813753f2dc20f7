package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Jason910315/gentle-gains/internal/domain"
	"github.com/Jason910315/gentle-gains/internal/nutrition"
)

// verdict is the schema the model is constrained to. It deliberately omits
// is_saved: that field reflects the persistence outcome, which only the
// server knows.
type verdict struct {
	Calories     int     `json:"calories"`
	Protein      int     `json:"protein"`
	Fat          int     `json:"fat"`
	Carbs        int     `json:"carbs"`
	Score        float64 `json:"score"`
	CoachComment string  `json:"coach_comment"`
	Reasoning    string  `json:"reasoning"`
}

type Analyzer struct {
	client *goopenai.Client
	model  string
	logger *slog.Logger
}

// NewAnalyzer builds an OpenAI-backed vision analyzer. baseURL overrides the
// API endpoint when non-empty (proxies, tests).
func NewAnalyzer(apiKey, model, baseURL string, logger *slog.Logger) *Analyzer {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Analyzer{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// AnalyzeFood sends the photo and prompts to the model, constrained to the
// verdict schema, and returns the parsed result. Failures are logged and
// propagated: unlike chat persistence there is no useful degraded answer.
func (a *Analyzer) AnalyzeFood(ctx context.Context, imageBase64, foodName, mealType string) (*domain.FoodAnalysisResult, error) {
	image := nutrition.StripDataURI(imageBase64)

	schema, err := jsonschema.GenerateSchemaForType(verdict{})
	if err != nil {
		return nil, fmt.Errorf("failed to build response schema: %w", err)
	}

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: a.model,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: nutrition.SystemPrompt,
			},
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: nutrition.UserPrompt(foodName, mealType),
					},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + image,
						},
					},
				},
			},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   "food_analysis",
				Schema: schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		a.logger.Error("food analysis failed", "food_name", foodName, "error", err)
		return nil, fmt.Errorf("failed to analyze food image: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	var v verdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &v); err != nil {
		a.logger.Error("food analysis returned malformed JSON", "food_name", foodName, "error", err)
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &domain.FoodAnalysisResult{
		Calories:     v.Calories,
		Protein:      v.Protein,
		Fat:          v.Fat,
		Carbs:        v.Carbs,
		Score:        v.Score,
		CoachComment: v.CoachComment,
		Reasoning:    v.Reasoning,
	}, nil
}
