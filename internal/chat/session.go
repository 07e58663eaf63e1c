package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/helper"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/llmservice"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/prompt"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/rag"
)

// State tells whether a session has accumulated history.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

// Session answers employer questions about one indexed resume, carrying
// conversation history across questions.
type Session struct {
	mu             sync.Mutex
	id             string
	retriever      *rag.Retriever
	llm            llmservice.Client
	params         llmservice.Params
	candidateName  string
	maxTurns       int
	jobContext     string
	jobDescription string
	history        []models.Turn
}

// NewSession creates an empty session. maxTurns bounds how many past
// exchanges are retained and replayed to the model, oldest fall off first.
func NewSession(retriever *rag.Retriever, llm llmservice.Client, params llmservice.Params, candidateName string, maxTurns int) (*Session, error) {
	if candidateName == "" {
		return nil, fmt.Errorf("candidate name must not be empty")
	}
	if maxTurns < 1 {
		maxTurns = 1
	}
	id, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	return &Session{
		id:            id,
		retriever:     retriever,
		llm:           llm,
		params:        params,
		candidateName: candidateName,
		maxTurns:      maxTurns,
	}, nil
}

func (s *Session) ID() string { return s.id }

// SetJobContext scopes answers to a specific position.
func (s *Session) SetJobContext(jobContext, jobDescription string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobContext = jobContext
	s.jobDescription = jobDescription
	log.Info().Str("job_context", jobContext).Msg("Job context set")
}

// ClearJobContext removes the position scope.
func (s *Session) ClearJobContext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobContext = ""
	s.jobDescription = ""
	log.Info().Msg("Job context cleared")
}

// Ask retrieves resume context for the question and asks the LLM, replaying
// the retained history. The exchange is recorded only when generation
// succeeds, a failed call leaves the history untouched.
func (s *Session) Ask(ctx context.Context, question string) (models.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return models.Answer{}, fmt.Errorf("question must not be empty")
	}

	log.Debug().Str("session", s.id).Str("question", question).Msg("Processing employer question")

	chunks, err := s.retriever.Retrieve(ctx, question)
	if err != nil {
		return models.Answer{}, err
	}

	s.mu.Lock()
	messages := s.assembleLocked(rag.CombineContext(chunks), question)
	s.mu.Unlock()

	answer, err := s.llm.Chat(ctx, messages, s.params)
	if err != nil {
		return models.Answer{}, err
	}

	s.mu.Lock()
	s.history = append(s.history, models.Turn{Question: question, Answer: answer})
	if len(s.history) > s.maxTurns {
		s.history = s.history[len(s.history)-s.maxTurns:]
	}
	s.mu.Unlock()

	return models.Answer{Question: question, Content: answer, Sources: chunks}, nil
}

// assembleLocked builds the provider message list: system prompt, retained
// history as plain exchanges, then the current question wrapped with its
// retrieved context. Callers hold mu.
func (s *Session) assembleLocked(contextText, question string) []llmservice.Message {
	messages := make([]llmservice.Message, 0, 2*len(s.history)+2)
	messages = append(messages, llmservice.Message{
		Role:    llmservice.RoleSystem,
		Content: prompt.EmployerQASystem(s.candidateName, s.jobContext, s.jobDescription),
	})
	for _, turn := range s.history {
		messages = append(messages,
			llmservice.Message{Role: llmservice.RoleUser, Content: turn.Question},
			llmservice.Message{Role: llmservice.RoleAssistant, Content: turn.Answer},
		)
	}
	messages = append(messages, llmservice.Message{
		Role:    llmservice.RoleUser,
		Content: prompt.EmployerQAQuestion(contextText, question),
	})
	return messages
}

// State is Idle until the first exchange is recorded and Idle again after
// ClearHistory.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return StateIdle
	}
	return StateActive
}

// History returns a copy of the retained exchanges, oldest first.
func (s *Session) History() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory forgets the conversation so far.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	log.Info().Str("session", s.id).Msg("Chat history cleared")
}
