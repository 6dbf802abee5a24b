package models

import (
	"github.com/sashabaranov/go-openai"
)

// ChatRequest is the request body sent to the chat completions endpoint.
type ChatRequest struct {
	Model    string                         `json:"model"`
	Messages []openai.ChatCompletionMessage `json:"messages"`
	// MaxTokens caps the completion length, reasoning tokens included.
	MaxTokens *uint32    `json:"max_tokens,omitempty"`
	Reasoning *Reasoning `json:"reasoning,omitempty"`
}

// Reasoning asks the model to think before answering. Effort is passed
// through as given (low, medium, high, xhigh); the server rejects bad values.
type Reasoning struct {
	Effort string `json:"effort"`
}

// ChatResponse is the subset of the completion response the tool reads.
// Every field is optional since upstream providers differ in what they send.
type ChatResponse struct {
	Choices []Choice         `json:"choices,omitempty"`
	Usage   *openai.Usage    `json:"usage,omitempty"`
	Error   *openai.APIError `json:"error,omitempty"`
}

type Choice struct {
	Message *Message `json:"message,omitempty"`
}

// Message carries the answer and an optional reasoning trace. Providers
// report the trace as either "reasoning" or "reasoning_content".
type Message struct {
	Content          *string `json:"content,omitempty"`
	Reasoning        *string `json:"reasoning,omitempty"`
	ReasoningContent *string `json:"reasoning_content,omitempty"`
}

// ReasoningTrace returns the first non-empty reasoning field.
func (m *Message) ReasoningTrace() string {
	if m == nil {
		return ""
	}
	for _, r := range []*string{m.Reasoning, m.ReasoningContent} {
		if r != nil && *r != "" {
			return *r
		}
	}
	return ""
}

// FirstMessage returns the message of the first choice, or nil.
func (r *ChatResponse) FirstMessage() *Message {
	if r == nil || len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message
}
