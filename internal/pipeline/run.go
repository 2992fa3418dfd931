// Package pipeline provides the high-level orchestration for calendar generation.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/budget"
	"github.com/jonathan/calendar-agent/internal/db"
	"github.com/jonathan/calendar-agent/internal/llm"
	"github.com/jonathan/calendar-agent/internal/observability"
	"github.com/jonathan/calendar-agent/internal/prompt"
	"github.com/jonathan/calendar-agent/internal/search"
	"github.com/jonathan/calendar-agent/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution.
// Events are observational only; they never affect control flow.
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressCallback is invoked synchronously at each pipeline checkpoint
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Industry       string
	TargetAudience string
	ContentGoals   string

	ResultsPerQuery int // defaults to search.DefaultResultsPerQuery
	MaxTokens       int // defaults to budget.DefaultMaxTokens

	Search    *search.Client
	Generator llm.Generator
	Artifacts *artifact.Store

	DatabaseURL string
	Verbose     bool
	OnProgress  ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, percent int, message string) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Percent: percent, Message: message})
	}
}

// Run orchestrates one calendar generation: search, budgeting, composition,
// generation, persistence. Any generation or persistence failure aborts the
// run with no partial artifact; per-query search failures only degrade the
// research. There is no retry and no mid-run cancellation beyond ctx itself.
func Run(ctx context.Context, opts RunOptions) (*artifact.Calendar, error) {
	request := &types.CalendarRequest{
		Industry:       opts.Industry,
		TargetAudience: opts.TargetAudience,
		ContentGoals:   opts.ContentGoals,
	}
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run inputs: %w", err)
	}

	if opts.MaxTokens == 0 {
		opts.MaxTokens = budget.DefaultMaxTokens
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured. Persistence is an
	// add-on; a missing or broken database never blocks the run.
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
			runID, err = database.CreateRun(ctx, opts.Industry, opts.TargetAudience, opts.ContentGoals)
			if err != nil {
				fmt.Printf("Warning: Failed to create database run: %v\n", err)
			}
		}
	}

	start := time.Now()
	year := time.Now().Year()
	queries := prompt.Queries(opts.Industry, opts.TargetAudience, opts.ContentGoals, year)

	fmt.Printf("Step 1/4: Searching for current trends...\n")
	emitProgress(&opts, 10, "Searching for current trends...")
	results := opts.Search.Search(ctx, queries, opts.ResultsPerQuery)

	fmt.Printf("Step 2/4: Processing search results...\n")
	emitProgress(&opts, 40, "Processing search results...")
	filtered, tokensUsed := budget.Filter(queries, results, opts.MaxTokens)
	if opts.Verbose {
		printer.PrintBudgetedResults(queries, filtered, tokensUsed)
	}

	research := prompt.FormatResults(filtered, opts.Industry, opts.TargetAudience, opts.ContentGoals, year)
	composed := prompt.Compose(opts.Industry, opts.TargetAudience, opts.ContentGoals, research)

	fmt.Printf("Step 3/4: Generating content calendar...\n")
	emitProgress(&opts, 60, "Generating content calendar...")
	generated, err := opts.Generator.Generate(ctx, llm.DefaultRequest(composed))
	if err != nil {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, "failed")
		}
		return nil, fmt.Errorf("generating calendar failed: %w", err)
	}
	emitProgress(&opts, 100, "Content calendar completed!")

	executionTime := time.Since(start).Seconds()
	metrics := &artifact.Metrics{
		ExecutionTimeSeconds: executionTime,
		Tokens: artifact.Tokens{
			Input:  generated.InputTokens,
			Output: generated.OutputTokens,
			Total:  generated.InputTokens + generated.OutputTokens,
		},
		EstimatedCostUSD: generated.EstimatedCost,
	}

	cal := &artifact.Calendar{
		Industry:           opts.Industry,
		TargetAudience:     opts.TargetAudience,
		ContentGoals:       opts.ContentGoals,
		ContentCalendar:    generated.Text,
		PerformanceMetrics: metrics,
	}

	fmt.Printf("Step 4/4: Saving content calendar...\n")
	path, err := opts.Artifacts.Save(cal)
	if err != nil {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, "failed")
		}
		return nil, fmt.Errorf("saving calendar failed: %w", err)
	}

	if database != nil && runID != uuid.Nil {
		_ = database.SaveCalendar(ctx, runID, cal)
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	if opts.Verbose {
		printer.PrintMetrics(metrics)
	}
	fmt.Printf("Done! Calendar saved to %s\n", path)

	return cal, nil
}
