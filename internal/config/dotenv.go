package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const envFileName = ".env"

// ResolveEnvFile returns the first .env file found in dir, then in home.
// An empty directory argument is skipped.
func ResolveEnvFile(dir, home string) (string, bool) {
	for _, base := range []string{dir, home} {
		if base == "" {
			continue
		}
		path := filepath.Join(base, envFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadEnvFile loads the .env file discovered from the working directory and
// the user's home directory. Variables already present in the environment
// are left untouched. It returns the loaded path, or "" when none was found.
func LoadEnvFile() (string, error) {
	// Either lookup may fail (e.g. no HOME); the other location is still searched.
	cwd, _ := os.Getwd()
	home, _ := os.UserHomeDir()

	path, ok := ResolveEnvFile(cwd, home)
	if !ok {
		log.Debug().Msg("No .env file found")
		return "", nil
	}

	if err := godotenv.Load(path); err != nil {
		return path, fmt.Errorf("failed to load %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded environment file")
	return path, nil
}
