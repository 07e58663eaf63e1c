package llmservice

import (
	"context"
	"fmt"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/config"
)

// Message roles accepted by chat providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat exchange.
type Message struct {
	Role    string
	Content string
}

// Params tune a single generation call.
type Params struct {
	Temperature float32
	MaxTokens   int
}

// Client produces text from prompts. Implementations wrap one provider.
type Client interface {
	// Generate answers a single standalone prompt.
	Generate(ctx context.Context, prompt string, params Params) (string, error)
	// Chat answers the latest user message given the exchange so far.
	Chat(ctx context.Context, messages []Message, params Params) (string, error)
	// Model reports the underlying model name.
	Model() string
}

// NewClient builds the provider selected in the config.
func NewClient(ctx context.Context, cfg *config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg)
	case "gemini":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
