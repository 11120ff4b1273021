package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sharma-sugurthi/HealthAI/internal/config"
)

// Client is the raw completion call: one system instruction plus one user
// message in, generated text out.  Retry lives in Retrier, not here.
type Client interface {
	Complete(ctx context.Context, systemInstruction, userMessage string, maxTokens int, temperature float32) (string, error)
}

// OpenAIClient calls an OpenAI-compatible chat completion API.  The base URL
// defaults to OpenRouter so a single client covers both providers.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient constructs a completion client from configuration.
func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete sends the instruction and message to the chat completion API and
// returns the generated text.
func (c *OpenAIClient) Complete(ctx context.Context, systemInstruction, userMessage string, maxTokens int, temperature float32) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("completion returned no content")
	}
	return resp.Choices[0].Message.Content, nil
}
