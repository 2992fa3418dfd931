package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 0, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("x", 100)))
}

// result builds a search result whose formatted footprint is close to n tokens.
func result(n int) types.SearchResult {
	// Formatting overhead is "\n\nSource: \n\n" (12 chars = 3 tokens).
	return types.SearchResult{Title: strings.Repeat("t", (n-3)*4), Link: "", Snippet: ""}
}

func countKept(set search.ResultSet) int {
	total := 0
	for _, results := range set {
		total += len(results)
	}
	return total
}

func TestFilter_RespectsCeiling(t *testing.T) {
	queries := []string{"q1", "q2"}
	results := search.ResultSet{
		"q1": {result(100), result(100), result(100)},
		"q2": {result(100), result(100)},
	}

	filtered, used := Filter(queries, results, 250)
	assert.LessOrEqual(t, used, 250)
	assert.Equal(t, 2, countKept(filtered))
}

func TestFilter_Monotonic(t *testing.T) {
	queries := []string{"q1", "q2"}
	results := search.ResultSet{
		"q1": {result(50), result(50), result(50)},
		"q2": {result(50), result(50), result(50)},
	}

	prev := -1
	for _, maxTokens := range []int{0, 50, 100, 150, 200, 300, 1000} {
		filtered, _ := Filter(queries, results, maxTokens)
		kept := countKept(filtered)
		assert.GreaterOrEqual(t, kept, prev, "maxTokens=%d", maxTokens)
		prev = kept
	}
}

func TestFilter_StopsWithinQueryOnFirstRejection(t *testing.T) {
	// The second result overflows; the smaller third result must not be
	// pulled in ahead of it.
	queries := []string{"q1"}
	results := search.ResultSet{
		"q1": {result(60), result(60), result(10)},
	}

	filtered, used := Filter(queries, results, 70)
	assert.Len(t, filtered["q1"], 1)
	assert.Equal(t, 60, used)
}

func TestFilter_DropsLaterQueriesWhenBudgetFilled(t *testing.T) {
	queries := []string{"q1", "q2", "q3"}
	results := search.ResultSet{
		"q1": {result(100)},
		"q2": {result(10)},
		"q3": {result(10)},
	}

	filtered, used := Filter(queries, results, 100)
	assert.Equal(t, 100, used)
	assert.Len(t, filtered["q1"], 1)

	// q2 and q3 were never evaluated.
	_, ok := filtered["q2"]
	assert.False(t, ok)
	_, ok = filtered["q3"]
	assert.False(t, ok)
}

func TestFilter_ZeroBudget(t *testing.T) {
	queries := []string{"q1", "q2", "q3"}
	results := search.ResultSet{
		"q1": {result(10)},
		"q2": {result(10)},
		"q3": {result(10)},
	}

	filtered, used := Filter(queries, results, 0)
	assert.Equal(t, 0, used)
	assert.Equal(t, 0, countKept(filtered))
}

func TestFilter_EmptyInput(t *testing.T) {
	filtered, used := Filter(nil, search.ResultSet{}, DefaultMaxTokens)
	assert.Empty(t, filtered)
	assert.Equal(t, 0, used)
}
