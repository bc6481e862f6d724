package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse([]string{
			"-modules", "grids",
			"-entry", "main",
			"-check",
			"-healthcheck-port", "8080",
			"-log-format", "text",
			"-log-level", "debug",
		}, out)

		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "grids", cfg.ModulesPath)
		assert.Equal(t, "main", cfg.Entry)
		assert.True(t, cfg.Check)
		assert.Equal(t, 8080, cfg.HealthcheckPort)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("positional path and defaults", func(t *testing.T) {
		cfg, shouldExit, err := Parse([]string{"grids/main.hcl"}, &bytes.Buffer{})

		require.NoError(t, err)
		require.False(t, shouldExit)
		assert.Equal(t, "grids/main.hcl", cfg.ModulesPath)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.Check)
		assert.Zero(t, cfg.HealthcheckPort)
	})

	t.Run("shorthand -m", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-m", "grids"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "grids", cfg.ModulesPath)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)

		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		_, shouldExit, err := Parse([]string{"-h"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, shouldExit)
	})

	t.Run("unknown flag is an ExitError", func(t *testing.T) {
		_, _, err := Parse([]string{"--bogus"}, &bytes.Buffer{})

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log format is rejected", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-format", "xml", "grids"}, &bytes.Buffer{})

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log format")
	})

	t.Run("invalid log level is rejected", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "loud", "grids"}, &bytes.Buffer{})

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid log level")
	})
}
