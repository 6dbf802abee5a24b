package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aaronn/openclaw-research-tool/internal/config"
	"github.com/aaronn/openclaw-research-tool/internal/infrastructure/openrouter"
	"github.com/aaronn/openclaw-research-tool/internal/logger"
	"github.com/aaronn/openclaw-research-tool/internal/services/research"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

const afterHelp = `
OUTPUT:
  stdout: Model response text (pipe-friendly)
  stderr: Progress indicator, reasoning trace, token usage stats

COST:
  ~$0.01-0.05 per query depending on response length and reasoning effort.
  Token usage is printed to stderr after each query.

AUTHENTICATION:
  Set OPENROUTER_API_KEY in your environment or .env file.
  Get a key at https://openrouter.ai/keys`

const examples = `  # Simple research query
  research-tool "What is the current population of Tokyo?"

  # Multi-word queries (no quotes needed)
  research-tool what are the best rust async patterns

  # Deep analysis with maximum reasoning
  research-tool --effort xhigh "Compare Next.js vs Remix for full-stack web applications"

  # Custom persona for domain-specific research
  research-tool -s "You are a Rust systems programmer" "Best async patterns for WebSocket servers"

  # Pipe from stdin
  cat question.txt | research-tool --stdin

  # Save output to a file (only response, no metadata)
  research-tool "Summarize recent changes to the OpenAI API in 2026" > summary.md

  # Longer timeout for complex web research
  research-tool --timeout 180 "What are the most popular Rust web frameworks in 2026?"`

// app carries the process collaborators so tests can swap them.
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	env     config.Env
	loadEnv func() (string, error)
	restURL string
}

func main() {
	a := &app{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		env:     config.OSEnv,
		loadEnv: config.LoadEnvFile,
		restURL: openrouter.DefaultRestURL,
	}

	// Exit explicitly once output is written; idle keep-alive connections
	// must not hold the process open.
	os.Exit(a.execute(os.Args[1:]))
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string) int {
	logger.Init(a.stderr, a.env("LOG_LEVEL"))

	// The .env file may provide OPENROUTER_API_KEY, so it is loaded before
	// any flag or environment lookup.
	if path, err := a.loadEnv(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable .env file")
	}

	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(a.stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	var (
		stdin          bool
		model          string
		effort         string
		system         string
		maxTokens      uint32
		timeoutSeconds uint64
		apiKey         string
	)

	cmd := &cobra.Command{
		Use:   "research-tool [flags] [query...]",
		Short: "Query GPT-5.2:online for research via OpenRouter",
		Long: `Sends your question to OpenAI's GPT-5.2 model through OpenRouter with
web search enabled and chain-of-thought reasoning. The model can access
live web data, cite sources, and perform deep analysis.

Response text is printed to stdout. Reasoning traces, progress indicators,
and token usage stats are printed to stderr (pipe-friendly).

Requires OPENROUTER_API_KEY environment variable to be set.` + "\n" + afterHelp,
		Example:       examples,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := config.Flags{Query: args, Stdin: stdin}
			if cmd.Flags().Changed("model") {
				flags.Model = &model
			}
			if cmd.Flags().Changed("effort") {
				flags.Effort = &effort
			}
			if cmd.Flags().Changed("system") {
				flags.System = &system
			}
			if cmd.Flags().Changed("max-tokens") {
				flags.MaxTokens = &maxTokens
			}
			if cmd.Flags().Changed("timeout") {
				flags.TimeoutSeconds = &timeoutSeconds
			}
			if cmd.Flags().Changed("api-key") {
				flags.APIKey = &apiKey
			}

			cfg, err := config.Resolve(flags, a.env, a.stdin)
			if err != nil {
				return err
			}

			transport := openrouter.NewService(cfg.APIKey, cfg.Timeout).SetRestURL(a.restURL)
			return research.NewService(transport, a.stdout, a.stderr).Run(cmd.Context(), cfg)
		},
	}

	// Flags end at the first positional argument so queries may contain dashes.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the query from stdin instead of command-line arguments")
	cmd.Flags().StringVarP(&model, "model", "m", config.DefaultModel,
		"AI model to use; the \":online\" suffix enables live web search (env "+config.ModelEnv+")")
	cmd.Flags().StringVarP(&effort, "effort", "e", config.DefaultEffort,
		"Reasoning effort: low, medium, high or xhigh (env "+config.EffortEnv+")")
	cmd.Flags().StringVarP(&system, "system", "s", "",
		"Override the system prompt (default: research assistant that cites sources)")
	cmd.Flags().Uint32Var(&maxTokens, "max-tokens", config.DefaultMaxTokens, "Maximum number of tokens in the response")
	cmd.Flags().Uint64Var(&timeoutSeconds, "timeout", 0, "Request timeout in seconds (default: no timeout)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "OpenRouter API key (overrides "+config.APIKeyEnv+")")
	_ = cmd.Flags().MarkHidden("api-key")

	return cmd
}
