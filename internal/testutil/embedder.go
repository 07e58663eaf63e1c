package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sync"
)

// Embedder produces deterministic embedding vectors for tests.
//
// By default a vector derives from the text through SHA-256, so the
// same text always embeds to the same unit vector. Explicit mappings
// can be registered for precise cosine similarity control.
//
// Thread-safe for concurrent use.
type Embedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	dim     int
	err     error
	queries []string
}

// NewEmbedder creates a fake embedder with the given vector dimensions.
func NewEmbedder(dim int) *Embedder {
	return &Embedder{
		vectors: make(map[string][]float32),
		dim:     dim,
	}
}

// SetVector registers an explicit vector for a given text.
// Use this to control exact cosine similarity between test inputs.
func (e *Embedder) SetVector(text string, vec []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vectors[text] = vec
}

// FailWith makes every subsequent call return err.
func (e *Embedder) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// EmbedDocuments embeds a batch of texts.
func (e *Embedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vectorForLocked(text)
	}
	return out, nil
}

// EmbedQuery embeds a single text.
func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	e.queries = append(e.queries, text)
	return e.vectorForLocked(text), nil
}

// Queries returns a copy of all texts passed to EmbedQuery.
func (e *Embedder) Queries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queries...)
}

// vectorForLocked returns the registered vector for the text, or a
// hash-derived one. Callers must hold e.mu.
func (e *Embedder) vectorForLocked(text string) []float32 {
	if v, ok := e.vectors[text]; ok {
		return v
	}
	return deterministicVector(text, e.dim)
}

// deterministicVector generates a normalized vector from text using
// SHA-256. The same text always produces the same vector.
func deterministicVector(text string, dim int) []float32 {
	hash := sha256.Sum256([]byte(text))
	vec := make([]float32, dim)

	for i := range vec {
		idx := (i * 4) % len(hash)
		bits := binary.LittleEndian.Uint32([]byte{
			hash[idx%32],
			hash[(idx+1)%32],
			hash[(idx+2)%32],
			hash[(idx+3)%32],
		})
		// Map to [-1, 1] range
		vec[i] = (float32(bits)/float32(math.MaxUint32))*2 - 1
	}

	// Normalize to unit vector
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	norm = float32(math.Sqrt(float64(norm)))
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}
