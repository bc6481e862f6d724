package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// An HCL file with a syntax error is guaranteed to panic inside
	// app.NewApp during the loading phase.
	invalidHCL := `
		module "broken" {
			requires = [
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0o600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}
	runErr := run(out, []string{filePath})

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	errStr := runErr.Error()
	assert.True(t, strings.Contains(errStr, "application startup panicked"), "the error should indicate a recovered panic")
	assert.True(t, strings.Contains(errStr, "failed to parse"), "the error should carry the underlying reason")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" flag makes cli.Parse report a clean exit.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:", "expected help text on the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	manifest := `
module "env" {
  factory = "EnvVars"
}

module "out" {
  requires = ["env"]
  factory  = "Print"
  params = {
    label = "env"
  }
}

entrypoint "main" {
  module = "out"
}
`
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(manifest), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "debug", "-log-format", "text", filePath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Resolution finished")
}

func TestRun_CheckMode(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	manifest := `
module "a" {
  requires = ["b"]
  factory  = "Print"
}

module "b" {
  requires = ["a"]
  factory  = "Print"
}
`
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(manifest), 0o600))

	err := run(&bytes.Buffer{}, []string{"-check", filePath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle detected")
}
