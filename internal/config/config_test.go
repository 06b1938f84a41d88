package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	require.False(t, cfg.Debug)
	require.Equal(t, "debug.log", cfg.LogFile)
	require.Empty(t, cfg.Archive.Path)
	require.Empty(t, cfg.Gemini.APIKey)
	require.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DETECTIVE_DEBUG", "true")
	t.Setenv("DETECTIVE_ARCHIVE_PATH", "verdicts.db")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	require.True(t, cfg.Debug)
	require.Equal(t, "verdicts.db", cfg.Archive.Path)
	require.Equal(t, "secret", cfg.Gemini.APIKey)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "")
	doc := "log_file: game.log\narchive:\n  path: archive.db\ngemini:\n  model: gemini-pro\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "detective.yaml"), []byte(doc), 0o644))

	cfg, err := load(viper.New())
	require.NoError(t, err)
	require.Equal(t, "game.log", cfg.LogFile)
	require.Equal(t, "archive.db", cfg.Archive.Path)
	require.Equal(t, "gemini-pro", cfg.Gemini.Model)
}

func TestLoadConfigWithDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DETECTIVE_LOG_FILE=from-dotenv.log\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DETECTIVE_LOG_FILE") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv.log", cfg.LogFile)
}
