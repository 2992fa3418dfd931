// Package budget truncates search results to fit an approximate token window.
package budget

import (
	"fmt"

	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

// DefaultMaxTokens is the research token window reserved inside the prompt.
const DefaultMaxTokens = 800

// EstimateTokens approximates the token count of text at 4 characters per
// token. This is a rough heuristic, not a tokenizer; cost estimates downstream
// depend on it staying as-is.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// resultText is the formatted footprint a result occupies in the prompt.
func resultText(r types.SearchResult) string {
	return fmt.Sprintf("%s\n%s\nSource: %s\n\n", r.Title, r.Snippet, r.Link)
}

// Filter walks queries in order, keeping each result while the running
// estimate stays within maxTokens. The first rejected result ends that query;
// once the budget is reached no later query is considered, so queries after
// the one that filled the window get no entry at all. Returns the filtered
// set and the tokens consumed.
func Filter(queries []string, results search.ResultSet, maxTokens int) (search.ResultSet, int) {
	filtered := make(search.ResultSet, len(queries))
	current := 0

	for _, q := range queries {
		kept := []types.SearchResult{}
		for _, r := range results[q] {
			estimate := EstimateTokens(resultText(r))
			if current+estimate > maxTokens {
				break
			}
			kept = append(kept, r)
			current += estimate
		}
		filtered[q] = kept

		if current >= maxTokens {
			break
		}
	}

	return filtered, current
}
