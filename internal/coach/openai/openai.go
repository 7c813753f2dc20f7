package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Jason910315/gentle-gains/internal/domain"
)

const temperature = 0.7

// Completer implements coach.Completer against the OpenAI chat completion
// API. No structured-output constraint here: the coach answers in free text.
type Completer struct {
	client *goopenai.Client
	model  string
}

// NewCompleter builds an OpenAI-backed chat completer. baseURL overrides the
// API endpoint when non-empty (proxies, tests).
func NewCompleter(apiKey, model, baseURL string) *Completer {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Completer{client: goopenai.NewClientWithConfig(cfg), model: model}
}

func (c *Completer) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	payload := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, goopenai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages:    payload,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
