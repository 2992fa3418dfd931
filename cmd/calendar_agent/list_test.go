package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_EmptyDir(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "list", "--output-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "No saved calendars")
}

func TestListCommand_ShowsArtifacts(t *testing.T) {
	binaryPath := getBinaryPath(t)

	dir := t.TempDir()
	name := "content_calendar_20260830_120000.json"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))

	cmd := exec.Command(binaryPath, "list", "--output-dir", dir)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), name)
}
