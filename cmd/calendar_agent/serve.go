package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/calendar-agent/internal/server"
)

var (
	servePort      int
	serveCacheDir  string
	serveOutputDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating content calendars.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCacheDir, "cache-dir", "cache", "Directory for cached search results")
	serveCmd.Flags().StringVar(&serveOutputDir, "output-dir", "calendars", "Directory for saved calendar artifacts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// API keys are read from the environment; a missing key fails the first
	// request that needs it rather than server startup.
	cfg := server.Config{
		Port:         servePort,
		CacheDir:     serveCacheDir,
		OutputDir:    serveOutputDir,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SerpAPIKey:   os.Getenv("SERPAPI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
