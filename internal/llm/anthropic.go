package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonathan/calendar-agent/internal/budget"
)

// AnthropicClient implements Generator against the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a client for the production endpoint. The API
// key is not validated here; a missing key fails at the first call.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{client: &client}
}

// NewAnthropicClientWithBaseURL points the client at an alternate endpoint.
func NewAnthropicClientWithBaseURL(apiKey, baseURL string) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &AnthropicClient{client: &client}
}

// Generate sends a single-turn message and estimates usage from the literal
// prompt and response text.
func (c *AnthropicClient) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}
	text := resp.Content[0].Text

	inputTokens := budget.EstimateTokens(req.Prompt)
	outputTokens := budget.EstimateTokens(text)

	return &Result{
		Text:          text,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		Elapsed:       time.Since(start),
		EstimatedCost: EstimateCost(inputTokens, outputTokens),
	}, nil
}
