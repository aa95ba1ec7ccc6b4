package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Advisor asks a chat model for a refined overall match score. Callers
// treat every error as advice-unavailable, so this client stays thin
// and never retries.
type Advisor struct {
	client *openai.Client
	model  string
}

// New creates an advisor. model may be empty to use the default.
func New(apiKey, model string) *Advisor {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Advisor{
		client: &client,
		model:  model,
	}
}

// Advise sends the evaluation prompt and returns the raw model reply
func (a *Advisor) Advise(ctx context.Context, prompt string) (string, error) {
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an expert HR professional. Reply with a single number between 0 and 100."),
			openai.UserMessage(prompt),
		},
		Model:       a.model,
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(16),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}
