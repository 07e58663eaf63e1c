package llmservice

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/config"
)

// Gemini generates through the Google genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, cfg *config.LLMConfig) (*Gemini, error) {
	apiKey := os.Getenv(cfg.GeminiAPIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set, export %s", cfg.GeminiAPIKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: cfg.GeminiModel}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	return g.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, params)
}

func (g *Gemini) Chat(ctx context.Context, messages []Message, params Params) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(params.Temperature),
	}
	if params.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(params.MaxTokens)
	}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			genCfg.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &GenerationError{Provider: "gemini", Kind: kindForStatus(apiErr.Code), Err: err}
		}
		return "", &GenerationError{Provider: "gemini", Kind: KindNetwork, Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &GenerationError{Provider: "gemini", Kind: KindMalformedResponse, Err: fmt.Errorf("empty response")}
	}
	return text, nil
}

func (g *Gemini) Model() string { return g.model }
