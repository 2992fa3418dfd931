package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMessagesBackend fakes the Messages endpoint, replying with a single text block.
func newMessagesBackend(t *testing.T, replyText string, capture *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/messages"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": replyText},
			},
			"model":       DefaultModel,
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 999, "output_tokens": 999},
		})
	}))
}

func TestAnthropicClient_Generate(t *testing.T) {
	reply := strings.Repeat("Day 1: plan. ", 20)
	var captured map[string]any
	server := newMessagesBackend(t, reply, &captured)
	defer server.Close()

	client := NewAnthropicClientWithBaseURL("test-key", server.URL)
	prompt := strings.Repeat("research text ", 50)

	result, err := client.Generate(context.Background(), DefaultRequest(prompt))
	require.NoError(t, err)
	assert.Equal(t, reply, result.Text)

	// Usage is estimated from the literal text, not the provider's figures.
	assert.Equal(t, len(prompt)/4, result.InputTokens)
	assert.Equal(t, len(reply)/4, result.OutputTokens)
	assert.InDelta(t, EstimateCost(result.InputTokens, result.OutputTokens), result.EstimatedCost, 1e-12)
	assert.Greater(t, result.Elapsed.Nanoseconds(), int64(0))

	// The wire request carries the fixed generation parameters.
	assert.Equal(t, DefaultModel, captured["model"])
	assert.Equal(t, float64(DefaultMaxTokens), captured["max_tokens"])
	assert.Equal(t, DefaultTemperature, captured["temperature"])
}

func TestAnthropicClient_GenerateAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer server.Close()

	client := NewAnthropicClientWithBaseURL("bad-key", server.URL)
	_, err := client.Generate(context.Background(), DefaultRequest("prompt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API error")
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "msg_empty",
			"type":    "message",
			"role":    "assistant",
			"content": []any{},
			"model":   DefaultModel,
		})
	}))
	defer server.Close()

	client := NewAnthropicClientWithBaseURL("test-key", server.URL)
	_, err := client.Generate(context.Background(), DefaultRequest("prompt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestEstimateCost(t *testing.T) {
	// 1M input tokens at $15/MTok plus 1M output tokens at $75/MTok.
	assert.InDelta(t, 90.0, EstimateCost(1_000_000, 1_000_000), 1e-9)
	assert.Equal(t, 0.0, EstimateCost(0, 0))
}
