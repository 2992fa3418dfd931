// Package llm - config.go holds the fixed generation parameters and pricing.
package llm

// Generation defaults. The model, output ceiling, temperature and system
// instructions are fixed for every run.
const (
	DefaultModel       = "claude-3-7-sonnet-20250219"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultSystem      = "You are an expert content marketer who creates strategic, audience-focused content calendars based on industry trends and business goals."
)

// Pricing in USD per million tokens. Approximate by design; estimates are
// "good enough", not billing-accurate.
const (
	InputCostPerMillionTokens  = 15.0
	OutputCostPerMillionTokens = 75.0
)

// DefaultRequest wraps a composed prompt in the fixed generation parameters.
func DefaultRequest(prompt string) Request {
	return Request{
		Prompt:      prompt,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		System:      DefaultSystem,
	}
}

// EstimateCost prices estimated input and output token counts.
func EstimateCost(inputTokens, outputTokens int) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * InputCostPerMillionTokens
	outputCost := float64(outputTokens) / 1_000_000 * OutputCostPerMillionTokens
	return inputCost + outputCost
}
