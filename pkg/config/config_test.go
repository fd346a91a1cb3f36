package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFileMissingReturnsDefault(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 132\nheight: 43\ntitle: custom\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 132, cfg.Width)
	require.Equal(t, 43, cfg.Height)
	require.Equal(t, "custom", cfg.Title)
	require.Equal(t, ":5900", cfg.RFBBindAddr)
}

func TestValidateRejectsBadSize(t *testing.T) {
	cfg := Default()
	cfg.Width = 0
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresBindAddr(t *testing.T) {
	cfg := Default()
	cfg.RFBBindAddr = ""
	require.Error(t, cfg.Validate())
}

func TestLoadPasswordFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passwd")
	require.NoError(t, os.WriteFile(path, []byte("hunter2\n"), 0600))

	cfg := Default()
	cfg.PasswordFile = path
	require.NoError(t, cfg.LoadPassword(-1))
	require.Equal(t, "hunter2", cfg.Password)
}

func TestLoadPasswordSkipsPromptWhenNotATTY(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.LoadPassword(-1))
	require.Empty(t, cfg.Password)
}
