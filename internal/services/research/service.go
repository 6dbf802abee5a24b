package research

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aaronn/openclaw-research-tool/internal/config"
	"github.com/aaronn/openclaw-research-tool/internal/infrastructure/openrouter"
	"github.com/aaronn/openclaw-research-tool/internal/services/research/models"
	"github.com/rs/zerolog/log"
)

// Transport performs the single HTTP exchange for a query.
type Transport interface {
	Send(ctx context.Context, body []byte, onConnected func()) (*openrouter.Response, error)
}

// Service runs one query. The answer goes to stdout; progress, reasoning,
// warnings and usage go to stderr.
type Service struct {
	transport        Transport
	stdout           io.Writer
	stderr           io.Writer
	progressInterval time.Duration
}

func NewService(transport Transport, stdout, stderr io.Writer) *Service {
	return &Service{
		transport:        transport,
		stdout:           stdout,
		stderr:           &lockedWriter{w: stderr},
		progressInterval: ProgressInterval,
	}
}

// SetProgressInterval overrides the ticker period.
func (s *Service) SetProgressInterval(interval time.Duration) *Service {
	s.progressInterval = interval
	return s
}

// Run sends cfg's query and reports the outcome. A nil error means the
// response was usable, even when it carried no choices or no content.
func (s *Service) Run(ctx context.Context, cfg *config.QueryConfig) error {
	log.Debug().Object("config", cfg).Msg("Starting research query")

	body, err := EncodeRequest(BuildRequest(cfg))
	if err != nil {
		return err
	}

	fmt.Fprintf(s.stderr, "🔍 Researching with %s (effort: %s)...\n", cfg.Model, cfg.Effort)

	start := time.Now()
	progress := StartProgress(ctx, s.stderr, start, s.progressInterval)
	resp, err := s.transport.Send(ctx, body, func() {
		fmt.Fprintln(s.stderr, "✅ Connected, waiting for response...")
	})
	progress.Stop()

	if err != nil {
		log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("Transport failed")
		return err
	}

	chat, err := Interpret(resp)
	if err != nil {
		log.Debug().Err(err).Int("status", resp.StatusCode).Str("request_id", resp.RequestID).Msg("Response rejected")
		return err
	}

	if err := s.report(chat, time.Since(start)); err != nil {
		return err
	}

	log.Debug().Str("request_id", resp.RequestID).Dur("elapsed", time.Since(start)).Msg("Research query complete")
	return nil
}

func (s *Service) report(chat *models.ChatResponse, elapsed time.Duration) error {
	if len(chat.Choices) == 0 {
		fmt.Fprintln(s.stderr, "⚠️ No choices in response")
	} else {
		msg := chat.FirstMessage()

		if reasoning := msg.ReasoningTrace(); reasoning != "" {
			fmt.Fprintf(s.stderr, "\n💭 Reasoning:\n%s\n---\n", reasoning)
		}

		if msg != nil && msg.Content != nil {
			if _, err := fmt.Fprintln(s.stdout, *msg.Content); err != nil {
				return fmt.Errorf("failed to write response: %w", err)
			}
		} else {
			fmt.Fprintln(s.stderr, "⚠️ No content in response")
		}
	}

	seconds := int(elapsed.Seconds())
	if usage := chat.Usage; usage != nil {
		fmt.Fprintf(s.stderr, "\n📊 Tokens: %d prompt + %d completion = %d total | ⏱ %ds\n",
			usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, seconds)
	} else {
		fmt.Fprintf(s.stderr, "\n⏱ %ds\n", seconds)
	}

	return nil
}

// lockedWriter serializes writes from the progress ticker and the main path.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
