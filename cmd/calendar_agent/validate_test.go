package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidArtifact(t *testing.T) {
	binaryPath := getBinaryPath(t)

	artifactJSON := `{
    "industry": "Fitness",
    "target_audience": "busy professionals",
    "content_goals": "increase engagement",
    "timestamp": "20260830_120000",
    "content_calendar": "Day 1: Topic - Type - Rationale"
}`
	path := filepath.Join(t.TempDir(), "content_calendar_20260830_120000.json")
	require.NoError(t, os.WriteFile(path, []byte(artifactJSON), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", path)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Validation passed")
}

func TestValidateCommand_InvalidArtifact(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := filepath.Join(t.TempDir(), "content_calendar_20260830_120000.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"industry": "Fitness"}`), 0644))

	cmd := exec.Command(binaryPath, "validate", "--in", path)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "violation")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--in", "does-not-exist.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "not found")
}
