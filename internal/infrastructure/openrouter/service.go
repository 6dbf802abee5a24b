package openrouter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRestURL  = "https://openrouter.ai/api/v1"
	CompletionsPath = "/chat/completions"

	// Attribution headers shown on the OpenRouter dashboard.
	Referer = "https://github.com/aaronn/openclaw-search-tool"
	Title   = "OpenClaw Research Tool"
)

type Service struct {
	Client  *http.Client `json:"-"`
	RestURL string       `json:"rest_url"`
	Headers http.Header  `json:"-"`
}

// Response is a fully read HTTP response. The body is not interpreted.
type Response struct {
	StatusCode int
	Body       []byte
	RequestID  string
}

// NewService returns a client for the OpenRouter REST API. A nil timeout
// leaves the exchange unbounded.
func NewService(apiKey string, timeout *time.Duration) *Service {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+apiKey)
	headers.Set("HTTP-Referer", Referer)
	headers.Set("X-Title", Title)
	headers.Set("Content-Type", "application/json")

	client := &http.Client{}
	if timeout != nil {
		client.Timeout = *timeout
	}

	s := &Service{
		Client:  client,
		RestURL: DefaultRestURL,
		Headers: headers,
	}

	log.Debug().
		Str("rest_url", s.RestURL).
		Dur("timeout", client.Timeout).
		Msg("OpenRouter service initialized")

	return s
}

// SetRestURL sets the REST URL for the service
func (s *Service) SetRestURL(url string) *Service {
	s.RestURL = url
	return s
}

// Send POSTs body to the chat completions endpoint and reads the whole
// response. onConnected, if set, runs once the response headers arrive.
// Any network failure, including timeout expiry, is a *TransportError.
func (s *Service) Send(ctx context.Context, body []byte, onConnected func()) (*Response, error) {
	url := s.RestURL + CompletionsPath
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = s.Headers.Clone()
	req.Header.Set("X-Request-Id", requestID)

	logger := log.With().Str("request_id", requestID).Logger()
	logger.Debug().Str("url", url).Int("body_bytes", len(body)).Msg("Sending chat completion request")

	start := time.Now()
	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("latency", time.Since(start)).Msg("Request failed before a response arrived")
		return nil, &TransportError{Phase: PhaseConnect, Err: err}
	}
	defer resp.Body.Close()

	if onConnected != nil {
		onConnected()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug().Err(err).Int("status", resp.StatusCode).Msg("Response body read failed")
		return nil, &TransportError{Phase: PhaseReceive, Err: err}
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Int("body_bytes", len(data)).
		Dur("latency", time.Since(start)).
		Msg("Received chat completion response")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		RequestID:  requestID,
	}, nil
}

type Phase int

const (
	// PhaseConnect covers DNS, dial, TLS, sending and waiting for headers.
	PhaseConnect Phase = iota
	// PhaseReceive covers reading the response body.
	PhaseReceive
)

// TransportError is a failure to complete the HTTP exchange.
type TransportError struct {
	Phase Phase
	Err   error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("Request to OpenRouter timed out: %v\nRaise --timeout or omit it to wait for the model to finish.", e.Err)
	}
	if e.Phase == PhaseReceive {
		return fmt.Sprintf("Connection to OpenRouter lost while waiting for response. Retry?\n%v", e.Err)
	}
	return fmt.Sprintf("Connection to OpenRouter failed, check your network and retry?\n%v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the exchange was cut off by a deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
