// Package prompt builds the fixed research queries and the generation prompt
// for a calendar run.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

// snippetPreviewLen caps how much of each snippet makes it into the prompt.
const snippetPreviewLen = 150

// IndustryQuery is the fixed research query for industry trends.
func IndustryQuery(industry string, year int) string {
	return fmt.Sprintf("latest trends in %s industry %d", industry, year)
}

// AudienceQuery is the fixed research query for audience marketing.
func AudienceQuery(targetAudience string, year int) string {
	return fmt.Sprintf("content marketing for %s %d", targetAudience, year)
}

// GoalsQuery is the fixed research query for content strategy.
func GoalsQuery(contentGoals string, year int) string {
	return fmt.Sprintf("%s content strategy examples %d", contentGoals, year)
}

// Queries returns the three research queries, in the order they are budgeted
// and rendered.
func Queries(industry, targetAudience, contentGoals string, year int) []string {
	return []string{
		IndustryQuery(industry, year),
		AudienceQuery(targetAudience, year),
		GoalsQuery(contentGoals, year),
	}
}

// FormatResults renders the budgeted results into the research block. Each of
// the three fixed categories is looked up by exact query text; categories with
// no results are omitted without error.
func FormatResults(results search.ResultSet, industry, targetAudience, contentGoals string, year int) string {
	var sb strings.Builder
	sb.WriteString("RECENT WEB SEARCH RESULTS:\n\n")

	if hits := results[IndustryQuery(industry, year)]; len(hits) > 0 {
		sb.WriteString(fmt.Sprintf("INDUSTRY TRENDS FOR %s:\n", strings.ToUpper(industry)))
		writeHits(&sb, hits)
	}

	if hits := results[AudienceQuery(targetAudience, year)]; len(hits) > 0 {
		sb.WriteString(fmt.Sprintf("\nCONTENT FOR %s:\n", strings.ToUpper(targetAudience)))
		writeHits(&sb, hits)
	}

	if hits := results[GoalsQuery(contentGoals, year)]; len(hits) > 0 {
		sb.WriteString(fmt.Sprintf("\nSTRATEGIES FOR %s:\n", strings.ToUpper(contentGoals)))
		writeHits(&sb, hits)
	}

	return sb.String()
}

func writeHits(sb *strings.Builder, hits []types.SearchResult) {
	for i, hit := range hits {
		snippet := hit.Snippet
		if len(snippet) > snippetPreviewLen {
			snippet = snippet[:snippetPreviewLen]
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n   %s...\n\n", i+1, hit.Title, snippet))
	}
}

// Compose embeds the research block in the full instructional template. The
// composer has no budget awareness; that is enforced upstream.
func Compose(industry, targetAudience, contentGoals, research string) string {
	return fmt.Sprintf(`Generate a complete 7-day content calendar for the %[1]s industry targeting %[2]s with goals to %[3]s.

Use this real-time research data to inform your response:

%[4]s

Please structure your response in these three distinct sections:

SECTION 1: RESEARCH INSIGHTS
Identify current trends in the %[1]s industry relevant to %[2]s.
- Top content formats (video, blog, etc.)
- Trending topics and hashtags
- Upcoming events in the next 2 weeks
- 5-7 potential content topics that align with: %[3]s

SECTION 2: 7-DAY CONTENT CALENDAR
Create a strategic 7-day content plan.
- Mix of content types (educational, promotional, etc.)
- One main topic per day
- Brief rationale for each day
Format as Day 1: [Topic] - [Type] - [Brief rationale]

SECTION 3: CONTENT BRIEFS
For each day, provide:
- Headline
- Brief hook
- 3-5 key points
- Call-to-action

Keep your response concise and actionable, focused on practical implementation.
`, industry, targetAudience, contentGoals, research)
}
