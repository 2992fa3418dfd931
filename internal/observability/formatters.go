// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/search"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxResultsToShow is the default number of results to display per query
	maxResultsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBudgetedResults outputs a summary of the research kept for the prompt.
func (p *Printer) PrintBudgetedResults(queries []string, results search.ResultSet, tokensUsed int) {
	var sb strings.Builder

	for _, q := range queries {
		hits, ok := results[q]
		if !ok {
			sb.WriteString(fmt.Sprintf("%s\n  (dropped: budget reached)\n", q))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s\n", q))
		if len(hits) == 0 {
			sb.WriteString("  (no results)\n")
			continue
		}
		for i, hit := range hits {
			if i >= maxResultsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(hits)-maxResultsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  - %s\n", hit.Title))
		}
	}
	sb.WriteString(fmt.Sprintf("\nResearch tokens used: %d", tokensUsed))

	p.printBox("Budgeted Research", sb.String())
}

// PrintMetrics outputs the performance summary of a completed run.
func (p *Printer) PrintMetrics(metrics *artifact.Metrics) {
	if metrics == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Execution Time: %.2f seconds\n", metrics.ExecutionTimeSeconds))
	sb.WriteString(fmt.Sprintf("Tokens:         %d input / %d output / %d total\n",
		metrics.Tokens.Input, metrics.Tokens.Output, metrics.Tokens.Total))
	sb.WriteString(fmt.Sprintf("Estimated Cost: $%.4f", metrics.EstimatedCostUSD))

	p.printBox("Performance Metrics", sb.String())
}
