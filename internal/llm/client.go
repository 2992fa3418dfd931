// Package llm provides the text-generation backend for calendar runs.
package llm

import (
	"context"
	"time"
)

// Request describes a single generation call.
type Request struct {
	Prompt      string
	Model       string
	MaxTokens   int64
	Temperature float64
	System      string
}

// Result carries the generated text plus locally estimated usage metrics.
// Token counts use the same 4-chars-per-token heuristic applied to the
// literal request and response text, never provider-reported usage, so cost
// estimates stay reproducible across saved artifacts.
type Result struct {
	Text          string
	InputTokens   int
	OutputTokens  int
	Elapsed       time.Duration
	EstimatedCost float64
}

// Generator is an abstraction over generation providers.
type Generator interface {
	// Generate performs one synchronous generation call. Failures propagate
	// as errors wrapping the provider message; callers do not retry.
	Generate(ctx context.Context, req Request) (*Result, error)
}
