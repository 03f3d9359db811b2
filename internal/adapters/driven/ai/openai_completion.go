package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/auslex-labs/auslex-core/internal/core/ports/driven"
)

// Ensure OpenAICompletion implements CompletionService
var _ driven.CompletionService = (*OpenAICompletion)(nil)

// OpenAICompletion implements CompletionService using OpenAI chat
// completions. Temperature stays low: answers must track the supplied
// documents, not improvise.
type OpenAICompletion struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAICompletion creates a new OpenAI completion service
func NewOpenAICompletion(apiKey, model, baseURL string) (driven.CompletionService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAICompletion{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: 0.1,
		maxTokens:   2000,
	}, nil
}

// Complete generates a response for the given system and user prompts
func (c *OpenAICompletion) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the model name being used
func (c *OpenAICompletion) Model() string {
	return c.model
}

// Ping verifies the completion service is available
func (c *OpenAICompletion) Ping(ctx context.Context) error {
	_, err := c.client.ListModels(ctx)
	return err
}

// Close releases resources held by the completion service
func (c *OpenAICompletion) Close() error {
	return nil
}
