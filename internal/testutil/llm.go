package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/llmservice"
)

// LLM provides deterministic text generation for tests.
//
// It matches the last user message against registered patterns and
// returns the corresponding response, falling back to a fixed string
// when nothing matches.
//
// Thread-safe for concurrent use.
type LLM struct {
	mu       sync.Mutex
	rules    []llmRule
	fallback string
	err      error
	model    string
	calls    []LLMCall
}

type llmRule struct {
	pattern  string // substring match in the last user message
	response string
}

// LLMCall records a single request to the fake client.
type LLMCall struct {
	Prompt   string               // last user message text
	Messages []llmservice.Message // full thread as received
	Response string               // response text returned
}

// NewLLM creates a fake client with the given fallback response.
// The fallback is returned when no pattern matches.
func NewLLM(fallback string) *LLM {
	return &LLM{fallback: fallback, model: "fake-model"}
}

// AddResponse registers a pattern-response pair. Patterns are checked
// in registration order.
func (l *LLM) AddResponse(pattern, response string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rules = append(l.rules, llmRule{pattern: pattern, response: response})
}

// FailWith makes every subsequent call return err.
func (l *LLM) FailWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// Generate implements llmservice.Client.
func (l *LLM) Generate(_ context.Context, prompt string, _ llmservice.Params) (string, error) {
	return l.respond([]llmservice.Message{{Role: llmservice.RoleUser, Content: prompt}})
}

// Chat implements llmservice.Client.
func (l *LLM) Chat(_ context.Context, messages []llmservice.Message, _ llmservice.Params) (string, error) {
	return l.respond(messages)
}

// Model implements llmservice.Client.
func (l *LLM) Model() string { return l.model }

func (l *LLM) respond(messages []llmservice.Message) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.err != nil {
		return "", l.err
	}

	prompt := lastUserMessage(messages)
	response := l.fallback
	for _, rule := range l.rules {
		if strings.Contains(prompt, rule.pattern) {
			response = rule.response
			break
		}
	}

	l.calls = append(l.calls, LLMCall{
		Prompt:   prompt,
		Messages: append([]llmservice.Message(nil), messages...),
		Response: response,
	})
	return response, nil
}

// Calls returns a copy of all recorded calls.
func (l *LLM) Calls() []LLMCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LLMCall(nil), l.calls...)
}

// Reset clears recorded calls.
func (l *LLM) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

func lastUserMessage(messages []llmservice.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == llmservice.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
