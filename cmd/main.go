package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/chat"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/config"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/embedding"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/generator"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/helper"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/llmservice"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/output"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/parser"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/pgstore"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/rag"
	"github.com/mcikalmerdeka/personalized-CL-generation/internal/vectorstore"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	resumeType := flag.String("resume", "", "Resume type to use (see -list)")
	index := flag.Bool("index", false, "Build vector indexes for the configured resumes")
	list := flag.Bool("list", false, "List the configured resume types")
	dryRun := flag.Bool("dry-run", false, "Parse the selected resume and print its chunks without indexing")
	chatMode := flag.Bool("chat", false, "Start an interactive employer Q&A session")
	company := flag.String("company", "", "Company name for the cover letter")
	title := flag.String("title", "", "Job title for the cover letter")
	desc := flag.String("desc", "", "Job description text")
	descFile := flag.String("desc-file", "", "Path to a file containing the job description")
	format := flag.String("format", "", "Output format override: txt or html")
	provider := flag.String("provider", "", "LLM provider override: openai or gemini")
	candidate := flag.String("candidate", "", "Candidate name override")
	maxWords := flag.Int("max-words", 0, "Word target override for the cover letter")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	applyOverrides(cfg, *provider, *format, *candidate, *maxWords)

	ctx := context.Background()

	if *list {
		listResumes(cfg)
		return
	}

	if *dryRun {
		dryRunChunks(cfg, *resumeType)
		return
	}

	if *index {
		buildIndexes(ctx, cfg, *resumeType)
		return
	}

	if *chatMode {
		runChat(ctx, cfg, *resumeType, *company, *title, jobDescription(*desc, *descFile))
		return
	}

	if *company != "" || *title != "" || *desc != "" || *descFile != "" {
		generateLetter(ctx, cfg, *resumeType, *company, *title, jobDescription(*desc, *descFile))
		return
	}

	flag.Usage()
}

// applyOverrides folds flag values into the loaded config and re-validates,
// so a bad -provider or -format aborts before any network call.
func applyOverrides(cfg *config.Config, provider, format, candidate string, maxWords int) {
	if provider != "" {
		cfg.LLM.Provider = provider
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if candidate != "" {
		cfg.Generation.CandidateName = candidate
	}
	if maxWords > 0 {
		cfg.Generation.MaxWords = maxWords
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
}

func jobDescription(desc, descFile string) string {
	if desc != "" {
		return desc
	}
	if descFile == "" {
		return ""
	}
	data, err := os.ReadFile(descFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Error reading job description file")
	}
	return string(data)
}

func resolveResume(cfg *config.Config, resumeType string) string {
	if resumeType == "" {
		log.Fatal().Msgf("Please provide a resume type using the -resume flag, available: %v", cfg.ResumeTypes())
	}
	path, err := cfg.ResumePath(resumeType)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown resume type")
	}
	return path
}

func listResumes(cfg *config.Config) {
	log.Info().Msg("Configured resumes: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	for _, name := range cfg.ResumeTypes() {
		fmt.Printf("%s\t%s\n", name, cfg.Resumes[name])
	}
}

func dryRunChunks(cfg *config.Config, resumeType string) {
	path := resolveResume(cfg, resumeType)

	chunks, err := parser.ChunkFile(path, cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		log.Fatal().Err(err).Msg("Error parsing resume")
	}

	log.Info().Msgf("Parsed %d chunks from %s", len(chunks), path)
	helper.PrettyPrint(chunks)
}

func buildIndexes(ctx context.Context, cfg *config.Config, resumeType string) {
	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	types := cfg.ResumeTypes()
	if resumeType != "" {
		resolveResume(cfg, resumeType)
		types = []string{resumeType}
	}

	var pg *bun.DB
	if cfg.PgStore.Enabled {
		pg = pgstore.Connect(&cfg.PgStore)
		defer pg.Close()
		if err := pgstore.Init(ctx, pg); err != nil {
			log.Fatal().Err(err).Msg("Error initializing pg store")
		}
	}

	for _, name := range types {
		path, err := cfg.ResumePath(name)
		if err != nil {
			log.Fatal().Err(err).Msg("Unknown resume type")
		}

		chunks, err := parser.ChunkFile(path, cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
		if err != nil {
			log.Fatal().Err(err).Msg("Error parsing resume")
		}

		vectors, err := embedding.EmbedChunks(ctx, embedder, chunks)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating embeddings")
		}

		store, err := vectorstore.BuildFromVectors(ctx, name, chunks, vectors)
		if err != nil {
			log.Fatal().Err(err).Msg("Error building vector index")
		}
		if err := store.Save(cfg.VectorStore.Dir); err != nil {
			log.Fatal().Err(err).Msg("Error saving vector index")
		}
		log.Info().Msgf("Indexed %d chunks for %s", store.Count(), name)

		if pg != nil {
			if err := pgstore.StoreChunks(ctx, pg, name, store.Chunks(), vectors); err != nil {
				log.Fatal().Err(err).Msg("Error mirroring chunks to pg store")
			}
			log.Info().Msgf("Mirrored %s to table %s", name, cfg.PgStore.Table)
		}
	}
}

// newRetriever wires the configured search backend. The Postgres searcher is
// used when pg_store is enabled, otherwise the on-disk chromem index.
func newRetriever(ctx context.Context, cfg *config.Config, resumeType, resumePath string, embedder embedding.Embedder) (*rag.Retriever, func()) {
	if cfg.PgStore.Enabled {
		db := pgstore.Connect(&cfg.PgStore)
		searcher := pgstore.NewSearcher(db, resumeType)
		return rag.NewRetriever(searcher, embedder, cfg.Retrieval.TopK), func() { _ = db.Close() }
	}

	store, err := vectorstore.LoadOrBuild(ctx, cfg.VectorStore.Dir, resumeType, resumePath,
		cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading vector index")
	}
	return rag.NewRetriever(store, embedder, cfg.Retrieval.TopK), func() {}
}

func generateLetter(ctx context.Context, cfg *config.Config, resumeType, company, title, desc string) {
	resumePath := resolveResume(cfg, resumeType)
	if company == "" || title == "" {
		log.Fatal().Msg("Please provide the company and job title using the -company and -title flags")
	}
	if desc == "" {
		log.Fatal().Msg("Please provide the job description using the -desc or -desc-file flag")
	}

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	retriever, cleanup := newRetriever(ctx, cfg, resumeType, resumePath, embedder)
	defer cleanup()

	llm, err := llmservice.NewClient(ctx, &cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing llm client")
	}

	examples, err := parser.LoadStyleExamples(cfg.Generation.ExamplesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading style examples")
	}

	params := llmservice.Params{
		Temperature: float32(cfg.LLM.Temperature),
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	gen := generator.New(retriever, llm, examples, params)

	req := models.CoverLetterRequest{
		CandidateName:  cfg.Generation.CandidateName,
		CompanyName:    company,
		JobTitle:       title,
		JobDescription: desc,
		MaxWords:       cfg.Generation.MaxWords,
	}
	letter, sources, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating cover letter")
	}

	path, err := output.WriteLetter(cfg.Output.Dir, cfg.Output.Format, req.CandidateName, company, title, letter)
	if err != nil {
		log.Fatal().Err(err).Msg("Error writing cover letter")
	}

	entry := output.ApplicationEntry{
		CreatedAt:  time.Now(),
		Company:    company,
		JobTitle:   title,
		ResumeType: resumeType,
		Model:      llm.Model(),
		OutputPath: path,
	}
	if err := output.AppendApplication(cfg.Output.ApplicationsLog, entry); err != nil {
		log.Error().Err(err).Msg("Error updating applications log")
	}

	log.Info().Msg("Sources: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	for _, src := range sources {
		fmt.Printf("%.4f\t%s\n", src.Similarity, src.ID)
	}
	fmt.Println()

	log.Info().Msg("Letter: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
	fmt.Printf("%s\n\n", letter)

	log.Info().Msgf("Saved cover letter to %s", path)
}

func runChat(ctx context.Context, cfg *config.Config, resumeType, company, title, desc string) {
	resumePath := resolveResume(cfg, resumeType)

	embedder, err := embedding.NewEmbedder(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	retriever, cleanup := newRetriever(ctx, cfg, resumeType, resumePath, embedder)
	defer cleanup()

	llm, err := llmservice.NewClient(ctx, &cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing llm client")
	}

	params := llmservice.Params{
		Temperature: float32(cfg.LLM.Temperature),
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	session, err := chat.NewSession(retriever, llm, params, cfg.Generation.CandidateName, cfg.Chat.MaxHistoryTurns)
	if err != nil {
		log.Fatal().Err(err).Msg("Error starting chat session")
	}
	if company != "" || title != "" || desc != "" {
		session.SetJobContext(jobContextLine(company, title), desc)
	}

	log.Info().Msgf("Chat session %s started for %s", session.ID(), resumeType)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEmployer question (type 'bye' to quit, 'clear' to reset): ")

		if !scanner.Scan() {
			fmt.Println("\nExiting...")
			break
		}
		question := strings.TrimSpace(scanner.Text())

		if strings.EqualFold(question, "bye") {
			fmt.Println("Goodbye!")
			break
		}
		if strings.EqualFold(question, "clear") {
			session.ClearHistory()
			fmt.Println("History cleared.")
			continue
		}
		if question == "" {
			continue
		}

		answer, err := session.Ask(ctx, question)
		if err != nil {
			fmt.Printf("Error getting answer: %v\n", err)
			continue
		}

		fmt.Printf("\n%s\n", answer.Content)
	}
}

func jobContextLine(company, title string) string {
	switch {
	case company != "" && title != "":
		return fmt.Sprintf("%s at %s", title, company)
	case title != "":
		return title
	default:
		return company
	}
}
