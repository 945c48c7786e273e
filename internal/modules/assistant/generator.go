package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

// Generator is the provider-agnostic text completion interface. To use
// another provider, wrap its langchaingo llms.Model with NewLLMGenerator.
type Generator interface {
	// Generate sends prompt with a system instruction. A nil temperature
	// leaves the provider default.
	Generate(ctx context.Context, system, prompt string, temperature *float64) (string, error)
}

type llmGenerator struct {
	model llms.Model
}

// NewLLMGenerator adapts any langchaingo model.
func NewLLMGenerator(model llms.Model) Generator {
	return &llmGenerator{model: model}
}

// NewGoogleAIGenerator builds a Gemini backed generator.
func NewGoogleAIGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("googleai client: %w", err)
	}
	return NewLLMGenerator(client), nil
}

func (g *llmGenerator) Generate(ctx context.Context, system, prompt string, temperature *float64) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	var opts []llms.CallOption
	if temperature != nil {
		opts = append(opts, llms.WithTemperature(*temperature))
	}
	resp, err := g.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return resp.Choices[0].Content, nil
}
