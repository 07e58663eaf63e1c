package rag

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/embedding"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
)

// maxTopK caps retrieval regardless of configuration.
const maxTopK = 20

// Searcher is any chunk index that answers embedding similarity queries.
// Both the local chromem store and the Postgres mirror satisfy it.
type Searcher interface {
	Query(ctx context.Context, queryEmbedding []float32, k int) ([]models.ScoredChunk, error)
}

// Retriever embeds a query and runs it against a searcher at a fixed k.
type Retriever struct {
	searcher Searcher
	embedder embedding.Embedder
	topK     int
}

func NewRetriever(searcher Searcher, embedder embedding.Embedder, topK int) *Retriever {
	if topK < 1 {
		topK = 1
	}
	if topK > maxTopK {
		log.Warn().Int("top_k", topK).Int("max", maxTopK).Msg("Clamping top k")
		topK = maxTopK
	}
	return &Retriever{searcher: searcher, embedder: embedder, topK: topK}
}

// Retrieve returns the chunks most similar to query, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.ScoredChunk, error) {
	queryEmbedding, err := embedding.EmbedQuery(ctx, r.embedder, query)
	if err != nil {
		return nil, err
	}
	return r.searcher.Query(ctx, queryEmbedding, r.topK)
}

// CombineContext joins retrieved chunk contents into the context block fed
// to prompt assembly.
func CombineContext(chunks []models.ScoredChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Chunk.Content
	}
	return strings.Join(parts, "\n\n")
}
