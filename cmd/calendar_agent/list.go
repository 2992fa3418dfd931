package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/calendar-agent/internal/artifact"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved calendar artifacts",
	Long:  "Lists saved calendar artifact files in the output directory, newest first.",
	RunE:  runList,
}

var listOutputDir string

func init() {
	listCmd.Flags().StringVar(&listOutputDir, "output-dir", ".", "Directory holding saved calendar artifacts")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	names, err := artifact.NewStore(listOutputDir).List()
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}

	if len(names) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No saved calendars in %s\n", listOutputDir)
		return nil
	}

	for _, name := range names {
		_, _ = fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
