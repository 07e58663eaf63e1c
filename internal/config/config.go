package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ChunkingConfig controls how parsed resume text is split.
type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// RetrievalConfig controls similarity search.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // openai | ollama
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	OllamaURL string `yaml:"ollama_url"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	Provider        string  `yaml:"provider"` // openai | gemini
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	GeminiModel     string  `yaml:"gemini_model"`
	GeminiAPIKeyEnv string  `yaml:"gemini_api_key_env"`
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
}

// GenerationConfig controls cover letter drafting.
type GenerationConfig struct {
	CandidateName string `yaml:"candidate_name"`
	MaxWords      int    `yaml:"max_words"`
	ExamplesDir   string `yaml:"examples_dir"`
}

// ChatConfig controls the employer Q&A session.
type ChatConfig struct {
	MaxHistoryTurns int `yaml:"max_history_turns"`
}

// VectorStoreConfig locates the on-disk indexes.
type VectorStoreConfig struct {
	Dir string `yaml:"dir"`
}

// PgStoreConfig configures the optional remote pgvector backend.
type PgStoreConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DSN         string `yaml:"dsn"`
	PasswordEnv string `yaml:"password_env"`
	Table       string `yaml:"table"`
}

// OutputConfig controls where and how letters are written.
type OutputConfig struct {
	Dir             string `yaml:"dir"`
	Format          string `yaml:"format"` // txt | html
	ApplicationsLog string `yaml:"applications_log"`
}

type Config struct {
	Resumes     map[string]string `yaml:"resumes"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Generation  GenerationConfig  `yaml:"generation"`
	Chat        ChatConfig        `yaml:"chat"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	PgStore     PgStoreConfig     `yaml:"pg_store"`
	Output      OutputConfig      `yaml:"output"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = 350
	}
	if cfg.Chunking.ChunkOverlap == 0 {
		cfg.Chunking.ChunkOverlap = 50
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.OllamaURL == "" {
		cfg.Embedding.OllamaURL = "http://localhost:11434"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4.1-mini"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.GeminiModel == "" {
		cfg.LLM.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.LLM.GeminiAPIKeyEnv == "" {
		cfg.LLM.GeminiAPIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1500
	}
	if cfg.Generation.MaxWords == 0 {
		cfg.Generation.MaxWords = 500
	}
	if cfg.Generation.ExamplesDir == "" {
		cfg.Generation.ExamplesDir = "data/examples"
	}
	if cfg.Chat.MaxHistoryTurns == 0 {
		cfg.Chat.MaxHistoryTurns = 20
	}
	if cfg.VectorStore.Dir == "" {
		cfg.VectorStore.Dir = "data/vector_stores"
	}
	if cfg.PgStore.Table == "" {
		cfg.PgStore.Table = "resume_chunks"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "txt"
	}
	if cfg.Output.ApplicationsLog == "" {
		cfg.Output.ApplicationsLog = "output/applications.xlsx"
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Resumes) == 0 {
		return fmt.Errorf("config: no resumes configured")
	}
	for name, path := range c.Resumes {
		if path == "" {
			return fmt.Errorf("config: resume %q has an empty path", name)
		}
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk_size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.ChunkOverlap < 0 || c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("config: chunk_overlap %d must be in [0, chunk_size)", c.Chunking.ChunkOverlap)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("config: top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	switch c.Embedding.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("config: unknown embedding provider %q", c.Embedding.Provider)
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	switch c.Output.Format {
	case "txt", "html":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.PgStore.Enabled && c.PgStore.DSN == "" {
		return fmt.Errorf("config: pg_store enabled but dsn is empty")
	}
	return nil
}

// ResumePath resolves a configured resume type to its file path.
func (c *Config) ResumePath(resumeType string) (string, error) {
	path, ok := c.Resumes[resumeType]
	if !ok {
		return "", fmt.Errorf("unknown resume type %q, available: %v", resumeType, c.ResumeTypes())
	}
	return path, nil
}

// ResumeTypes lists the configured resume types in sorted order.
func (c *Config) ResumeTypes() []string {
	types := make([]string, 0, len(c.Resumes))
	for name := range c.Resumes {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
