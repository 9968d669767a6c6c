package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nearby.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://file.test/api/gemini\nreveal_delay: 3s\nmap_swap_delay: 250ms\n"), 0o600))

	cmd := rootCmd
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "--reveal-delay", "1s"}))
	t.Cleanup(func() {
		configPath, revealDelay = "", 0
		cmd.Flags().Lookup("reveal-delay").Changed = false
		cmd.Flags().Lookup("config").Changed = false
	})

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://file.test/api/gemini", cfg.Endpoint)
	assert.Equal(t, time.Second, cfg.RevealDelay)
	assert.Equal(t, 250*time.Millisecond, cfg.MapSwapDelay)
}

func TestBuildLogger(t *testing.T) {
	logger, err := buildLogger("")
	require.NoError(t, err)
	logger.Info("discarded")

	path := filepath.Join(t.TempDir(), "nearby.log")
	logger, err = buildLogger(path)
	require.NoError(t, err)
	logger.Info("kept")
	require.NoError(t, logger.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "kept")
}
