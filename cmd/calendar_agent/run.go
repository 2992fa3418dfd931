package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/calendar-agent/internal/artifact"
	"github.com/jonathan/calendar-agent/internal/cache"
	"github.com/jonathan/calendar-agent/internal/config"
	"github.com/jonathan/calendar-agent/internal/llm"
	"github.com/jonathan/calendar-agent/internal/pipeline"
	"github.com/jonathan/calendar-agent/internal/search"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Generate a content calendar end-to-end",
	Long: `Runs the full generation pipeline: web search -> token budgeting -> prompt composition -> calendar generation -> artifact persistence.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath      string
	runIndustry        string
	runAudience        string
	runGoals           string
	runResultsPerQuery int
	runMaxTokens       int
	runCacheDir        string
	runOutputDir       string
	runSerpAPIKey      string
	runAnthropicKey    string
	runDatabaseURL     string
	runVerbose         bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runIndustry, "industry", "i", "", "Industry or niche to plan content for")
	runCommand.Flags().StringVarP(&runAudience, "audience", "a", "", "Target audience description")
	runCommand.Flags().StringVarP(&runGoals, "goals", "g", "", "Content goals (e.g. engagement, lead generation)")
	runCommand.Flags().IntVar(&runResultsPerQuery, "results-per-query", 0, "Search results fetched per query")
	runCommand.Flags().IntVar(&runMaxTokens, "max-tokens", 0, "Token budget for research context")
	runCommand.Flags().StringVar(&runCacheDir, "cache-dir", "", "Directory for cached search results")
	runCommand.Flags().StringVar(&runOutputDir, "output-dir", "", "Directory for saved calendar artifacts")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API keys can be passed as flags, or read from env vars
	runCommand.Flags().StringVar(&runSerpAPIKey, "serpapi-key", "", "SerpAPI key (optional, defaults to SERPAPI_API_KEY env var)")
	runCommand.Flags().StringVar(&runAnthropicKey, "anthropic-key", "", "Anthropic API key (optional, defaults to ANTHROPIC_API_KEY env var)")

	// Database URL for run history persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("results-per-query") {
		cfg.ResultsPerQuery = runResultsPerQuery
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxTokens = runMaxTokens
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir = runCacheDir
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("serpapi-key") {
		cfg.SerpAPIKey = runSerpAPIKey
	}
	if cmd.Flags().Changed("anthropic-key") {
		cfg.AnthropicKey = runAnthropicKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		CacheDir:        "cache",
		OutputDir:       ".",
		ResultsPerQuery: search.DefaultResultsPerQuery,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if runIndustry == "" || runAudience == "" || runGoals == "" {
		return fmt.Errorf("--industry, --audience and --goals are all required")
	}

	// Step 5: API key handling
	if cfg.SerpAPIKey == "" {
		cfg.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	}
	if cfg.AnthropicKey == "" {
		cfg.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.AnthropicKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY environment variable or --anthropic-key flag is required")
	}

	// Step 6: Database URL handling (optional; run history only)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.RunOptions{
		Industry:        runIndustry,
		TargetAudience:  runAudience,
		ContentGoals:    runGoals,
		ResultsPerQuery: cfg.ResultsPerQuery,
		MaxTokens:       cfg.MaxTokens,
		Search:          search.NewClient(cfg.SerpAPIKey, cache.NewStore(cfg.CacheDir)),
		Generator:       llm.NewAnthropicClient(cfg.AnthropicKey),
		Artifacts:       artifact.NewStore(cfg.OutputDir),
		DatabaseURL:     cfg.DatabaseURL,
		Verbose:         cfg.Verbose,
	}

	_, err := pipeline.Run(ctx, opts)
	return err
}
