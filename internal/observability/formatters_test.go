package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

func TestPrintBudgetedResults(t *testing.T) {
	var out strings.Builder
	printer := NewPrinter(&out)

	queries := []string{"kept query", "empty query", "dropped query"}
	results := search.ResultSet{
		"kept query":  {{Title: "First Hit"}, {Title: "Second Hit"}},
		"empty query": {},
	}

	printer.PrintBudgetedResults(queries, results, 420)

	text := out.String()
	assert.Contains(t, text, "Budgeted Research")
	assert.Contains(t, text, "First Hit")
	assert.Contains(t, text, "(no results)")
	assert.Contains(t, text, "(dropped: budget reached)")
	assert.Contains(t, text, "420")
}

func TestPrintBudgetedResults_TruncatesLongLists(t *testing.T) {
	var out strings.Builder
	printer := NewPrinter(&out)

	hits := make([]types.SearchResult, 8)
	for i := range hits {
		hits[i] = types.SearchResult{Title: "Hit"}
	}
	printer.PrintBudgetedResults([]string{"q"}, search.ResultSet{"q": hits}, 0)

	assert.Contains(t, out.String(), "and 3 more")
}

func TestPrintMetrics(t *testing.T) {
	var out strings.Builder
	printer := NewPrinter(&out)

	printer.PrintMetrics(&artifact.Metrics{
		ExecutionTimeSeconds: 3.14,
		Tokens:               artifact.Tokens{Input: 700, Output: 400, Total: 1100},
		EstimatedCostUSD:     0.0405,
	})

	text := out.String()
	assert.Contains(t, text, "3.14")
	assert.Contains(t, text, "1100")
	assert.Contains(t, text, "$0.0405")
}

func TestPrintMetrics_NilIsNoop(t *testing.T) {
	var out strings.Builder
	NewPrinter(&out).PrintMetrics(nil)
	assert.Empty(t, out.String())
}
