package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, envFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveEnvFile(t *testing.T) {
	t.Run("working directory wins", func(t *testing.T) {
		cwd, home := t.TempDir(), t.TempDir()
		want := writeEnvFile(t, cwd, "A=1\n")
		writeEnvFile(t, home, "A=2\n")

		got, ok := ResolveEnvFile(cwd, home)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("falls back to home", func(t *testing.T) {
		cwd, home := t.TempDir(), t.TempDir()
		want := writeEnvFile(t, home, "A=2\n")

		got, ok := ResolveEnvFile(cwd, home)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("none found", func(t *testing.T) {
		got, ok := ResolveEnvFile(t.TempDir(), t.TempDir())
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("directory named .env is ignored", func(t *testing.T) {
		cwd := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(cwd, envFileName), 0o700))

		_, ok := ResolveEnvFile(cwd, "")
		assert.False(t, ok)
	})
}

func TestLoadEnvFile(t *testing.T) {
	cwd, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	home := t.TempDir()
	writeEnvFile(t, cwd, "RESEARCH_DOTENV_TEST=from-cwd\nRESEARCH_DOTENV_KEEP=from-file\n")
	writeEnvFile(t, home, "RESEARCH_DOTENV_HOME_ONLY=from-home\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(cwd))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("HOME", home)
	t.Setenv("RESEARCH_DOTENV_KEEP", "from-env")
	// Registered so t.Setenv restores them; Unsetenv lets the file supply them.
	t.Setenv("RESEARCH_DOTENV_TEST", "")
	t.Setenv("RESEARCH_DOTENV_HOME_ONLY", "")
	require.NoError(t, os.Unsetenv("RESEARCH_DOTENV_TEST"))
	require.NoError(t, os.Unsetenv("RESEARCH_DOTENV_HOME_ONLY"))

	path, err := LoadEnvFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, envFileName), path)

	assert.Equal(t, "from-cwd", os.Getenv("RESEARCH_DOTENV_TEST"))
	assert.Equal(t, "from-env", os.Getenv("RESEARCH_DOTENV_KEEP"))
	_, found := os.LookupEnv("RESEARCH_DOTENV_HOME_ONLY")
	assert.False(t, found, "home .env must not be merged when the working directory has one")
}
