package config

import (
	"os"

	"github.com/rs/zerolog/log"
)

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultValue string) string {
	return lookupOrDefault(os.Getenv, key, defaultValue)
}

func lookupOrDefault(getenv func(string) string, key, defaultValue string) string {
	value := getenv(key)
	if value == "" && defaultValue == "" {
		log.Trace().Str("key", key).Msg("Empty value and default for environment variable")
	}
	if value == "" {
		return defaultValue
	}
	return value
}
