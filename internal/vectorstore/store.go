package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/embedding"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/helper"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/parser"
)

const (
	compress = false

	// maxTopK caps how many chunks a single query may return.
	maxTopK = 20
)

var (
	// ErrIndexNotFound means no saved index exists for the requested resume type.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexCorrupt means an on-disk index exists but cannot be trusted.
	ErrIndexCorrupt = errors.New("vector index corrupt")
)

// Store is an embedded vector index over one resume's chunks.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	chunks     []models.Chunk
	byID       map[string]models.Chunk
}

// manifest is the JSON sidecar persisted next to the chromem export. It
// preserves chunk ordinals and metadata across save/load cycles.
type manifest struct {
	Name   string         `json:"name"`
	Chunks []models.Chunk `json:"chunks"`
}

// Build embeds chunks and assembles a fresh in-memory index named after the
// resume type. The input slice is not mutated.
func Build(ctx context.Context, name string, chunks []models.Chunk, embedder embedding.Embedder) (*Store, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("cannot build index %q from zero chunks", name)
	}

	vectors, err := embedding.EmbedChunks(ctx, embedder, chunks)
	if err != nil {
		return nil, err
	}
	return BuildFromVectors(ctx, name, chunks, vectors)
}

// LoadOrBuild loads the saved index for name, building and saving a fresh
// one from the resume file when none has been persisted yet. A corrupt
// index is never rebuilt silently.
func LoadOrBuild(ctx context.Context, dir, name, resumePath string, chunkSize, chunkOverlap int, embedder embedding.Embedder) (*Store, error) {
	store, err := Load(dir, name)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, ErrIndexNotFound) {
		return nil, err
	}

	log.Info().Msgf("No saved index for %s, building one from %s", name, resumePath)
	chunks, err := parser.ChunkFile(resumePath, chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}
	store, err = Build(ctx, name, chunks, embedder)
	if err != nil {
		return nil, err
	}
	if err := store.Save(dir); err != nil {
		return nil, err
	}
	return store, nil
}

// BuildFromVectors assembles an index from chunks whose embeddings were
// already computed, one vector per chunk in order.
func BuildFromVectors(ctx context.Context, name string, chunks []models.Chunk, vectors [][]float32) (*Store, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("cannot build index %q from zero chunks", name)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count %d does not match chunk count %d", len(vectors), len(chunks))
	}

	docID, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	stored := make([]models.Chunk, len(chunks))
	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		chunk.ID = fmt.Sprintf("%s-%s-%d", name, docID, chunk.Ordinal)
		metadata := map[string]string{"ordinal": strconv.Itoa(chunk.Ordinal)}
		for k, v := range chunk.Metadata {
			metadata[k] = v
		}
		chunk.Metadata = metadata
		stored[i] = chunk
		docs[i] = chromem.Document{
			ID:        chunk.ID,
			Content:   chunk.Content,
			Metadata:  metadata,
			Embedding: vectors[i],
		}
	}

	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %v", err)
	}

	log.Debug().Str("collection", name).Int("chunks", len(stored)).Msg("Built vector index")
	return newStore(db, collection, name, stored), nil
}

// Save exports the index and its chunk manifest into dir. Load treats a
// partial pair as corrupt, so both files always travel together.
func (s *Store) Save(dir string) error {
	if err := helper.EnsureDir(dir); err != nil {
		return err
	}

	indexPath := filepath.Join(dir, s.name+".chromem")
	if err := s.db.ExportToFile(indexPath, compress, "", s.name); err != nil {
		return fmt.Errorf("failed to export database: %v", err)
	}

	data, err := json.MarshalIndent(manifest{Name: s.name, Chunks: s.chunks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chunk manifest: %v", err)
	}
	manifestPath := filepath.Join(dir, s.name+".chunks.json")
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write chunk manifest: %v", err)
	}

	log.Info().Str("index", indexPath).Int("chunks", len(s.chunks)).Msg("Saved vector index")
	return nil
}

// Load restores the saved index for name from dir.
func Load(dir, name string) (*Store, error) {
	indexPath := filepath.Join(dir, name+".chromem")
	manifestPath := filepath.Join(dir, name+".chunks.json")

	indexExists := fileExists(indexPath)
	manifestExists := fileExists(manifestPath)
	switch {
	case !indexExists && !manifestExists:
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, indexPath)
	case !indexExists || !manifestExists:
		return nil, fmt.Errorf("%w: index %q is missing half its file pair", ErrIndexCorrupt, name)
	}

	db := chromem.NewDB()
	if err := db.ImportFromFile(indexPath, ""); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	collection := db.GetCollection(name, nil)
	if collection == nil {
		return nil, fmt.Errorf("%w: collection %q missing from export", ErrIndexCorrupt, name)
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	if m.Name != name {
		return nil, fmt.Errorf("%w: manifest names %q, want %q", ErrIndexCorrupt, m.Name, name)
	}
	if collection.Count() != len(m.Chunks) {
		return nil, fmt.Errorf("%w: collection has %d documents, manifest has %d chunks", ErrIndexCorrupt, collection.Count(), len(m.Chunks))
	}

	log.Debug().Str("collection", name).Int("chunks", len(m.Chunks)).Msg("Loaded vector index")
	return newStore(db, collection, name, m.Chunks), nil
}

// Query returns the k most similar chunks. k is clamped to the collection
// size and a hard cap of 20. Equal similarities break toward the lower
// chunk ordinal so results are deterministic.
func (s *Store) Query(ctx context.Context, queryEmbedding []float32, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("top k must be positive, got %d", k)
	}
	if len(queryEmbedding) == 0 {
		return nil, fmt.Errorf("query embedding must be provided")
	}

	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > maxTopK {
		log.Warn().Int("k", k).Int("max", maxTopK).Msg("Clamping top k")
		k = maxTopK
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	scored := make([]models.ScoredChunk, 0, len(results))
	for _, result := range results {
		chunk, ok := s.byID[result.ID]
		if !ok {
			return nil, fmt.Errorf("%w: result %s not present in manifest", ErrIndexCorrupt, result.ID)
		}
		scored = append(scored, models.ScoredChunk{Chunk: chunk, Similarity: result.Similarity})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].Chunk.Ordinal < scored[j].Chunk.Ordinal
	})
	return scored, nil
}

// Count reports how many chunks the index holds.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Name reports the resume type this index was built for.
func (s *Store) Name() string {
	return s.name
}

// Chunks returns a copy of the indexed chunks in insertion order.
func (s *Store) Chunks() []models.Chunk {
	out := make([]models.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

func newStore(db *chromem.DB, collection *chromem.Collection, name string, chunks []models.Chunk) *Store {
	byID := make(map[string]models.Chunk, len(chunks))
	for _, chunk := range chunks {
		byID[chunk.ID] = chunk
	}
	return &Store{db: db, collection: collection, name: name, chunks: chunks, byID: byID}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
