package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	ErrNoAPIKey = errors.New("No API key found.\n\n" +
		"Set " + APIKeyEnv + " in your environment:\n" +
		"  export " + APIKeyEnv + "=\"sk-or-v1-...\"\n\n" +
		"Get a key at https://openrouter.ai/keys")

	ErrNoQuery = errors.New("No query provided.\n\n" +
		"Usage: research-tool \"your question here\"\n" +
		"Help:  research-tool --help")
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// Env looks up an environment variable, returning "" when unset. A nil Env
// reads the process environment.
type Env func(string) string

// OSEnv reads from the process environment.
var OSEnv Env = os.Getenv

// Flags holds the command-line values. A nil pointer means the flag was not
// given, so the environment or the built-in default applies.
type Flags struct {
	Query          []string
	Stdin          bool
	Model          *string
	Effort         *string
	System         *string
	MaxTokens      *uint32
	TimeoutSeconds *uint64
	APIKey         *string
}

// QueryConfig is the fully resolved configuration for one query.
type QueryConfig struct {
	Model        string `validate:"required"`
	Effort       string
	SystemPrompt string
	Query        string `validate:"required"`
	MaxTokens    uint32
	// Timeout bounds the whole HTTP exchange; nil means no deadline.
	Timeout *time.Duration `validate:"omitempty,gt=0"`
	APIKey  string         `validate:"required"`
}

// Resolve builds a QueryConfig from flags, the environment and stdin.
// The API key is checked first so nothing is read from stdin without one.
func Resolve(flags Flags, env Env, stdin io.Reader) (*QueryConfig, error) {
	apiKey := pick(flags.APIKey, env, APIKeyEnv, "")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	query, err := resolveQuery(flags, stdin)
	if err != nil {
		return nil, err
	}

	cfg := &QueryConfig{
		Model:        pick(flags.Model, env, ModelEnv, DefaultModel),
		Effort:       pick(flags.Effort, env, EffortEnv, DefaultEffort),
		SystemPrompt: DefaultSystemPrompt,
		Query:        query,
		MaxTokens:    DefaultMaxTokens,
		APIKey:       apiKey,
	}
	if flags.System != nil {
		cfg.SystemPrompt = *flags.System
	}
	if flags.MaxTokens != nil {
		cfg.MaxTokens = *flags.MaxTokens
	}
	if flags.TimeoutSeconds != nil {
		timeout := time.Duration(*flags.TimeoutSeconds) * time.Second
		cfg.Timeout = &timeout
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, validationError(err)
	}

	return cfg, nil
}

func resolveQuery(flags Flags, stdin io.Reader) (string, error) {
	var query string
	if flags.Stdin {
		if stdin == nil {
			return "", ErrNoQuery
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read query from stdin: %w", err)
		}
		query = strings.TrimSpace(string(data))
	} else {
		query = strings.Join(flags.Query, " ")
	}

	if strings.TrimSpace(query) == "" {
		return "", ErrNoQuery
	}
	return query, nil
}

// pick applies flag > environment > default precedence for one field.
func pick(flag *string, env Env, key, defaultValue string) string {
	if flag != nil {
		return *flag
	}
	if env == nil {
		return GetEnvOrDefault(key, defaultValue)
	}
	return lookupOrDefault(env, key, defaultValue)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch fe := verrs[0]; fe.Field() {
	case "APIKey":
		return ErrNoAPIKey
	case "Query":
		return ErrNoQuery
	case "Timeout":
		return fmt.Errorf("invalid --timeout: must be at least 1 second")
	default:
		return fmt.Errorf("invalid %s: failed %q check", strings.ToLower(fe.Field()), fe.Tag())
	}
}

// MarshalZerologObject logs the configuration without the API key.
func (c *QueryConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Str("model", c.Model).
		Str("effort", c.Effort).
		Int("system_prompt_len", len(c.SystemPrompt)).
		Int("query_len", len(c.Query)).
		Uint32("max_tokens", c.MaxTokens).
		Bool("api_key_set", c.APIKey != "")
	if c.Timeout != nil {
		e.Dur("timeout", *c.Timeout)
	}
}

// String redacts the API key so the config is safe to print.
func (c *QueryConfig) String() string {
	timeout := "none"
	if c.Timeout != nil {
		timeout = c.Timeout.String()
	}
	return fmt.Sprintf("model=%s effort=%s max_tokens=%d timeout=%s api_key=[redacted]",
		c.Model, c.Effort, c.MaxTokens, timeout)
}
