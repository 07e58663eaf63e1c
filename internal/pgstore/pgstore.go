package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/config"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
)

// ResumeChunk mirrors an indexed chunk into Postgres with pgvector so an
// index built on one machine can be queried from another.
type ResumeChunk struct {
	bun.BaseModel `bun:"table:resume_chunks,alias:rc"`
	ID            int64     `bun:"id,pk,autoincrement"`
	ChunkID       string    `bun:"chunk_id,notnull,unique"`
	ResumeType    string    `bun:"resume_type,notnull"`
	Ordinal       int       `bun:"ordinal,notnull"`
	Content       string    `bun:"content,notnull"`
	Embedding     []float32 `bun:"embedding,notnull,type:vector(1536)"`
	Similarity    float64   `bun:"similarity,scanonly"`
}

// Connect opens the configured Postgres database through bun.
func Connect(cfg *config.PgStoreConfig) *bun.DB {
	password := os.Getenv(cfg.PasswordEnv)
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN), pgdriver.WithPassword(password)))
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	return db
}

// Init creates the mirror table if it does not exist yet.
func Init(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*ResumeChunk)(nil)).IfNotExists().Exec(ctx)
	return err
}

// StoreChunks replaces the mirrored rows for one resume type.
func StoreChunks(ctx context.Context, db *bun.DB, resumeType string, chunks []models.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("got %d embeddings for %d chunks", len(embeddings), len(chunks))
	}
	if len(chunks) == 0 {
		return nil
	}

	if _, err := db.NewDelete().Model((*ResumeChunk)(nil)).Where("resume_type = ?", resumeType).Exec(ctx); err != nil {
		return err
	}

	rows := make([]ResumeChunk, len(chunks))
	for i, chunk := range chunks {
		rows[i] = ResumeChunk{
			ChunkID:    chunk.ID,
			ResumeType: resumeType,
			Ordinal:    chunk.Ordinal,
			Content:    chunk.Content,
			Embedding:  embeddings[i],
		}
	}
	_, err := db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

// SearchChunks runs a cosine similarity search over one resume type's
// mirrored chunks, nearest first.
func SearchChunks(ctx context.Context, db *bun.DB, resumeType string, queryEmbedding []float32, limit int) ([]models.ScoredChunk, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("top k must be positive, got %d", limit)
	}

	var rows []ResumeChunk
	err := db.NewSelect().
		Model(&rows).
		Column("chunk_id", "resume_type", "ordinal", "content").
		ColumnExpr("1 - (embedding <=> ?) AS similarity", queryEmbedding).
		Where("resume_type = ?", resumeType).
		OrderExpr("embedding <=> ?", queryEmbedding).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredChunk, 0, len(rows))
	for _, row := range rows {
		scored = append(scored, models.ScoredChunk{
			Chunk: models.Chunk{
				ID:      row.ChunkID,
				Content: row.Content,
				Ordinal: row.Ordinal,
				Metadata: map[string]string{
					"resume_type": row.ResumeType,
				},
			},
			Similarity: float32(row.Similarity),
		})
	}
	return scored, nil
}

// Drop removes the mirror table entirely.
func Drop(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().Model((*ResumeChunk)(nil)).IfExists().Exec(ctx)
	return err
}

// Searcher binds one resume type's mirrored rows to the retrieval interface.
type Searcher struct {
	db         *bun.DB
	resumeType string
}

func NewSearcher(db *bun.DB, resumeType string) *Searcher {
	return &Searcher{db: db, resumeType: resumeType}
}

func (s *Searcher) Query(ctx context.Context, queryEmbedding []float32, k int) ([]models.ScoredChunk, error) {
	return SearchChunks(ctx, s.db, s.resumeType, queryEmbedding, k)
}
