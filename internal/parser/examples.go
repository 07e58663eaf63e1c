package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"

	"github.com/rs/zerolog/log"
)

// LoadStyleExamples reads previously written cover letters from dir to use
// as tone references. Files come back in lexical filename order so prompt
// assembly is reproducible run to run. A missing directory is not an
// error, generation simply proceeds without examples.
func LoadStyleExamples(dir string) ([]models.StyleExample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Msg("No example cover letters found")
			return nil, nil
		}
		return nil, err
	}

	var examples []models.StyleExample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		var content string
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			content = string(data)
		case ".pdf", ".docx":
			pages, err := extractPages(path)
			if err != nil {
				return nil, err
			}
			var parts []string
			for _, p := range pages {
				parts = append(parts, p.Text)
			}
			content = strings.Join(parts, "\n\n")
		default:
			continue
		}

		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		examples = append(examples, models.StyleExample{Filename: entry.Name(), Content: content})
	}

	log.Debug().Int("count", len(examples)).Str("dir", dir).Msg("Loaded style examples")
	return examples, nil
}
