package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
)

// CombineExamples merges style examples into one reference block, keeping
// the order they were loaded in.
func CombineExamples(examples []models.StyleExample) string {
	if len(examples) == 0 {
		return noExamplesText
	}
	parts := make([]string, len(examples))
	for i, ex := range examples {
		parts[i] = fmt.Sprintf("Example from %s:\n%s", ex.Filename, ex.Content)
	}
	return strings.Join(parts, exampleSeparator)
}

// CoverLetter renders the full generation prompt. Substitution is a single
// pass over the template, so placeholder-looking text inside the inputs is
// emitted verbatim.
func CoverLetter(contextText string, req models.CoverLetterRequest, examples []models.StyleExample) string {
	return strings.NewReplacer(
		"{context}", contextText,
		"{job_description}", req.JobDescription,
		"{company_name}", req.CompanyName,
		"{job_title}", req.JobTitle,
		"{example_style}", CombineExamples(examples),
		"{candidate_name}", req.CandidateName,
		"{max_words}", strconv.Itoa(req.MaxWords),
	).Replace(coverLetterTemplate)
}

// EmployerQASystem renders the chat system prompt, optionally scoped to a
// specific position.
func EmployerQASystem(candidateName, jobContext, jobDescription string) string {
	sys := strings.ReplaceAll(employerQASystemTemplate, "{candidate_name}", candidateName)
	if jobContext != "" {
		sys += fmt.Sprintf("\n\n**Current Job Context:**\n%s", jobContext)
	}
	if jobDescription != "" {
		sys += fmt.Sprintf("\n\n**Job Description:**\n%s", jobDescription)
	}
	return sys
}

// EmployerQAQuestion wraps one question with its retrieved resume context.
func EmployerQAQuestion(contextText, question string) string {
	return strings.NewReplacer(
		"{context}", contextText,
		"{question}", question,
	).Replace(employerQAUserTemplate)
}
