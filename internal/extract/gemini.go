package extract

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pennywise-fin/pennywise/internal/config"
)

// GeminiGenerator is the concrete Generator backed by the Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
}

func NewGeminiGenerator(cfg *config.Config) *GeminiGenerator {
	return &GeminiGenerator{apiKey: cfg.GeminiAPIKey, model: cfg.GeminiModel}
}

// GenerateText sends the prompt to the model and returns its raw reply.
func (g *GeminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("GenerateText: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenerateText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("GenerateText: empty response from model")
	}
	return text, nil
}
