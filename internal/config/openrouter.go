package config

const (
	APIKeyEnv = "OPENROUTER_API_KEY"
	ModelEnv  = "RESEARCH_MODEL"
	EffortEnv = "RESEARCH_EFFORT"

	// DefaultModel has live web search enabled through the ":online" suffix.
	DefaultModel     = "openai/gpt-5.2:online"
	DefaultEffort    = "low"
	DefaultMaxTokens = 12800

	DefaultSystemPrompt = "You are a research assistant. Provide detailed, accurate answers with " +
		"sources and citations where possible. Focus on factual, verifiable " +
		"information. When citing web sources, include URLs."
)
