package models

// Chunk represents one contiguous span of text cut from a parsed resume.
// Ordinal is the chunk's insertion position within its index and ties into
// the deterministic ordering of search results.
type Chunk struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Ordinal  int               `json:"ordinal"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ScoredChunk pairs a retrieved chunk with its cosine similarity.
type ScoredChunk struct {
	Chunk
	Similarity float32
}

// StyleExample is a finished cover letter loaded as a tone reference.
type StyleExample struct {
	Filename string
	Content  string
}

// Turn is one employer question together with the generated answer.
type Turn struct {
	Question string
	Answer   string
}

// CoverLetterRequest carries everything needed to draft one letter.
type CoverLetterRequest struct {
	CandidateName  string
	CompanyName    string
	JobTitle       string
	JobDescription string
	MaxWords       int
}

// Answer is a generated reply plus the chunks that grounded it.
type Answer struct {
	Question string
	Content  string
	Sources  []ScoredChunk
}
