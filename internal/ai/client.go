// Package ai wraps the hosted language-model service behind a narrow
// capability interface so the agents stay testable with deterministic
// stubs.
package ai

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Model constants. Haiku is the default: every prompt in this app is a
// short extraction, classification, or summary, where the cost-efficient
// model is plenty.
const (
	ModelHaiku  = "claude-3-5-haiku-20241022"
	ModelSonnet = "claude-sonnet-4-5-20250929"
)

// DefaultModel returns the model to use, checking SMARTTODO_MODEL first.
func DefaultModel() string {
	if model := os.Getenv("SMARTTODO_MODEL"); model != "" {
		return model
	}
	return ModelHaiku
}

// Client is the single capability the agents need: submit a prompt, get
// text back, may fail. The real implementation talks to the Anthropic API;
// tests substitute stubs.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicClient implements Client against the Anthropic Messages API.
// One blocking request per Complete call; no retries, no cancellation path
// beyond the context.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient creates a client with the given key and model. An
// empty model selects DefaultModel.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	if model == "" {
		model = DefaultModel()
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     model,
		maxTokens: 2048,
	}
}

// Complete sends a single user message and returns the concatenated text
// blocks of the response.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &ServiceUnavailableError{Op: "complete", Err: err}
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	slog.Debug("AI call completed",
		"model", c.model,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"duration", time.Since(start))

	return text.String(), nil
}
