package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/calendar-agent/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a calendar artifact against its schema",
	Long:  "Validates a saved calendar artifact JSON file against the published content calendar schema.",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to calendar artifact JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateInput); os.IsNotExist(err) {
		return fmt.Errorf("artifact file not found: %s", validateInput)
	}

	if err := schemas.ValidateArtifact(validateInput); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(os.Stdout, "Validation found %d violation(s)\n", len(validationErr.Errors))
			return err
		}
		return fmt.Errorf("failed to validate artifact: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateInput)
	return nil
}
