package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandel/app"
)

func TestLoadConfigFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandel.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 320\nstrips = 8\nlimit = 500\n"), 0o644))

	cfg := app.DefaultConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.IntVar(&cfg.Width, "width", cfg.Width, "")
	flags.IntVar(&cfg.Strips, "strips", cfg.Strips, "")
	flags.IntVar(&cfg.Limit, "limit", cfg.Limit, "")
	require.NoError(t, flags.Parse([]string{"--strips", "24"}))

	require.NoError(t, loadConfig(flags, path, &cfg))
	assert.Equal(t, 320, cfg.Width, "file overrides default")
	assert.Equal(t, 24, cfg.Strips, "flag overrides file")
	assert.Equal(t, 500, cfg.Limit)
	assert.Equal(t, 600, cfg.Height, "default kept")
}
