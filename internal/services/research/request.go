package research

import (
	"encoding/json"
	"fmt"

	"github.com/aaronn/openclaw-research-tool/internal/config"
	"github.com/aaronn/openclaw-research-tool/internal/services/research/models"
	"github.com/sashabaranov/go-openai"
)

// BuildRequest converts a resolved configuration into the request body:
// the system persona first, then the user's query.
func BuildRequest(cfg *config.QueryConfig) models.ChatRequest {
	maxTokens := cfg.MaxTokens

	return models.ChatRequest{
		Model: cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: cfg.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: cfg.Query},
		},
		MaxTokens: &maxTokens,
		Reasoning: &models.Reasoning{Effort: cfg.Effort},
	}
}

// EncodeRequest serializes req. The output is deterministic for equal inputs.
func EncodeRequest(req models.ChatRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return body, nil
}
