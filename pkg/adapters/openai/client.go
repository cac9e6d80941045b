// Package openai implements ports.Generator with an OpenAI-compatible chat
// completions endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultMaxTokens bounds the reply; the prompt asks for under 50 words.
const DefaultMaxTokens = 256

var (
	ErrMissingAPIKey = errors.New("openai: missing api key")
	ErrNoChoices     = errors.New("openai: response has no choices")
)

// Client wraps a go-openai client.
type Client struct {
	client    *openai.Client
	maxTokens int
	hasKey    bool
}

// New creates a client. A non-empty baseURL targets a compatible gateway.
func New(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		client:    openai.NewClientWithConfig(cfg),
		maxTokens: DefaultMaxTokens,
		hasKey:    apiKey != "",
	}
}

// Generate implements ports.Generator with one chat completion request.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
