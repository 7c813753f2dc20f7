package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	goanthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/Jason910315/gentle-gains/internal/domain"
	"github.com/Jason910315/gentle-gains/internal/nutrition"
)

// jsonShapeInstruction is appended to the user prompt because the Messages
// API has no schema-constrained output mode; the JSON contract is enforced by
// instruction and re-validated by parsing on our side.
const jsonShapeInstruction = `Reply with a single JSON object and nothing else, with exactly these keys:
{"calories": int, "protein": int, "fat": int, "carbs": int, "score": float, "coach_comment": string, "reasoning": string}`

// 1024 tokens comfortably covers the verdict JSON plus reasoning text.
const maxTokens = 1024

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
	client *goanthropic.Client
	model  string
	logger *slog.Logger
}

// NewAnalyzer builds an Anthropic-backed vision analyzer. baseURL overrides
// the API endpoint when non-empty (tests).
func NewAnalyzer(apiKey, model, baseURL string, logger *slog.Logger) *Analyzer {
	var opts []goanthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, goanthropic.WithBaseURL(baseURL))
	}
	return &Analyzer{
		client: goanthropic.NewClient(apiKey, opts...),
		model:  model,
		logger: logger,
	}
}

func (a *Analyzer) AnalyzeFood(ctx context.Context, imageBase64, foodName, mealType string) (*domain.FoodAnalysisResult, error) {
	image := nutrition.StripDataURI(imageBase64)

	resp, err := a.client.CreateMessages(ctx, goanthropic.MessagesRequest{
		Model:     goanthropic.Model(a.model),
		MaxTokens: maxTokens,
		System:    nutrition.SystemPrompt,
		Messages: []goanthropic.Message{
			{
				Role: goanthropic.RoleUser,
				Content: []goanthropic.MessageContent{
					goanthropic.NewImageMessageContent(goanthropic.NewMessageContentSource(
						goanthropic.MessagesContentSourceTypeBase64, "image/jpeg", image,
					)),
					goanthropic.NewTextMessageContent(
						nutrition.UserPrompt(foodName, mealType) + "\n\n" + jsonShapeInstruction,
					),
				},
			},
		},
	})
	if err != nil {
		a.logger.Error("food analysis failed", "food_name", foodName, "error", err)
		return nil, fmt.Errorf("failed to analyze food image: %w", err)
	}

	var text string
	for _, c := range resp.Content {
		if t := c.GetText(); t != "" {
			text = t
			break
		}
	}

	v, err := parseVerdict(text)
	if err != nil {
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

// parseVerdict extracts the verdict object from the model's reply. The model
// is instructed to reply with bare JSON, but may still wrap it in prose or a
// code fence, so parsing starts at the first '{' and ends at the last '}'.
func parseVerdict(text string) (*verdict, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var v verdict
	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return nil, err
	}
	return &v, nil
}
