package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/llmservice"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/prompt"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/rag"
)

// Generator drafts personalized cover letters from indexed resume chunks.
type Generator struct {
	retriever *rag.Retriever
	llm       llmservice.Client
	examples  []models.StyleExample
	params    llmservice.Params
}

func New(retriever *rag.Retriever, llm llmservice.Client, examples []models.StyleExample, params llmservice.Params) *Generator {
	return &Generator{retriever: retriever, llm: llm, examples: examples, params: params}
}

// Generate retrieves resume context for the job description, assembles the
// letter prompt and asks the LLM for a draft. It returns the letter along
// with the chunks that grounded it.
func (g *Generator) Generate(ctx context.Context, req models.CoverLetterRequest) (string, []models.ScoredChunk, error) {
	if req.JobDescription == "" {
		return "", nil, fmt.Errorf("job description must not be empty")
	}
	if req.CandidateName == "" {
		return "", nil, fmt.Errorf("candidate name must not be empty")
	}
	if req.MaxWords <= 0 {
		return "", nil, fmt.Errorf("max words must be positive, got %d", req.MaxWords)
	}

	log.Info().Str("company", req.CompanyName).Str("job_title", req.JobTitle).Msg("Generating cover letter")

	chunks, err := g.retriever.Retrieve(ctx, req.JobDescription)
	if err != nil {
		return "", nil, err
	}

	promptText := prompt.CoverLetter(rag.CombineContext(chunks), req, g.examples)
	letter, err := g.llm.Generate(ctx, promptText, g.params)
	if err != nil {
		return "", nil, err
	}

	log.Info().Int("chunks", len(chunks)).Int("letter_chars", len(letter)).Msg("Cover letter generated")
	return letter, chunks, nil
}
