package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// validConfig returns a fully populated config that passes Validate.
func validConfig() Config {
	return Config{
		Resumes:     map[string]string{"ai_engineer": "data/resumes/ai.pdf"},
		Chunking:    ChunkingConfig{ChunkSize: 350, ChunkOverlap: 50},
		Retrieval:   RetrievalConfig{TopK: 3},
		Embedding:   EmbeddingConfig{Provider: "openai", Model: "text-embedding-3-small"},
		LLM:         LLMConfig{Provider: "openai", Model: "gpt-4.1-mini"},
		Generation:  GenerationConfig{CandidateName: "Test Candidate", MaxWords: 500},
		Chat:        ChatConfig{MaxHistoryTurns: 20},
		VectorStore: VectorStoreConfig{Dir: "data/vector_stores"},
		Output:      OutputConfig{Dir: "output", Format: "txt"},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "resumes:\n  ai_engineer: data/resumes/ai.pdf\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 350, cfg.Chunking.ChunkSize)
	assert.Equal(t, 50, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedding.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedding.APIKeyEnv)
	assert.Equal(t, "http://localhost:11434", cfg.Embedding.OllamaURL)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, "GEMINI_API_KEY", cfg.LLM.GeminiAPIKeyEnv)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.Equal(t, 500, cfg.Generation.MaxWords)
	assert.Equal(t, "data/examples", cfg.Generation.ExamplesDir)
	assert.Equal(t, 20, cfg.Chat.MaxHistoryTurns)
	assert.Equal(t, "data/vector_stores", cfg.VectorStore.Dir)
	assert.Equal(t, "resume_chunks", cfg.PgStore.Table)
	assert.False(t, cfg.PgStore.Enabled)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "txt", cfg.Output.Format)
	assert.Equal(t, "output/applications.xlsx", cfg.Output.ApplicationsLog)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfig(t, `
resumes:
  data_related: data/resumes/data.pdf
chunking:
  chunk_size: 200
  chunk_overlap: 25
retrieval:
  top_k: 5
llm:
  provider: gemini
  temperature: 0.2
generation:
  candidate_name: Jane Doe
  max_words: 300
output:
  format: html
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Chunking.ChunkSize)
	assert.Equal(t, 25, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "Jane Doe", cfg.Generation.CandidateName)
	assert.Equal(t, 300, cfg.Generation.MaxWords)
	assert.Equal(t, "html", cfg.Output.Format)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "resumes: [unclosed\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigRejectsBadOverlap(t *testing.T) {
	path := writeConfig(t, `
resumes:
  ai_engineer: data/resumes/ai.pdf
chunking:
  chunk_size: 100
  chunk_overlap: 100
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_overlap")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no resumes",
			mutate:  func(c *Config) { c.Resumes = nil },
			wantErr: "no resumes",
		},
		{
			name:    "empty resume path",
			mutate:  func(c *Config) { c.Resumes = map[string]string{"ai_engineer": ""} },
			wantErr: "empty path",
		},
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.Chunking.ChunkSize = 0 },
			wantErr: "chunk_size",
		},
		{
			name:    "negative overlap",
			mutate:  func(c *Config) { c.Chunking.ChunkOverlap = -1 },
			wantErr: "chunk_overlap",
		},
		{
			name:    "overlap equals chunk size",
			mutate:  func(c *Config) { c.Chunking.ChunkOverlap = c.Chunking.ChunkSize },
			wantErr: "chunk_overlap",
		},
		{
			name:    "zero top_k",
			mutate:  func(c *Config) { c.Retrieval.TopK = 0 },
			wantErr: "top_k",
		},
		{
			name:    "unknown embedding provider",
			mutate:  func(c *Config) { c.Embedding.Provider = "cohere" },
			wantErr: "embedding provider",
		},
		{
			name:    "unknown llm provider",
			mutate:  func(c *Config) { c.LLM.Provider = "llama" },
			wantErr: "llm provider",
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Output.Format = "pdf" },
			wantErr: "output format",
		},
		{
			name: "pg store enabled without dsn",
			mutate: func(c *Config) {
				c.PgStore.Enabled = true
				c.PgStore.DSN = ""
			},
			wantErr: "dsn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestResumePath(t *testing.T) {
	cfg := validConfig()

	path, err := cfg.ResumePath("ai_engineer")
	require.NoError(t, err)
	assert.Equal(t, "data/resumes/ai.pdf", path)

	_, err = cfg.ResumePath("devops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai_engineer")
}

func TestResumeTypesSorted(t *testing.T) {
	cfg := validConfig()
	cfg.Resumes = map[string]string{
		"data_related": "b.pdf",
		"ai_engineer":  "a.pdf",
		"backend":      "c.pdf",
	}

	assert.Equal(t, []string{"ai_engineer", "backend", "data_related"}, cfg.ResumeTypes())
}
