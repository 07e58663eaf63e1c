package output

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/helper"
)

// ErrOutputWrite marks failures persisting a generated letter.
var ErrOutputWrite = errors.New("failed to write output")

// WriteLetter persists a letter under dir as txt or html and returns the
// path written. Existing files are never overwritten, a UTC timestamp
// suffix disambiguates collisions.
func WriteLetter(dir, format, candidateName, companyName, jobTitle, letter string) (string, error) {
	if err := helper.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	base := letterFilename(candidateName, companyName, jobTitle)
	ext := "." + format

	path := filepath.Join(dir, base+ext)
	if fileExists(path) {
		stamped := fmt.Sprintf("%s-%s", base, time.Now().UTC().Format("20060102-150405"))
		path = filepath.Join(dir, stamped+ext)
	}

	content := letter
	if format == "html" {
		rendered, err := renderHTML(letter, companyName, jobTitle)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		content = rendered
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	log.Info().Str("path", path).Msg("Cover letter saved")
	return path, nil
}

// letterFilename builds Cover_Letter_<name>_<company>_<job> with path
// separators and dots replaced, then spaces underscored.
func letterFilename(candidateName, companyName, jobTitle string) string {
	name := fmt.Sprintf("Cover_Letter_%s_%s_%s", candidateName, sanitize(companyName), sanitize(jobTitle))
	return strings.ReplaceAll(name, " ", "_")
}

func sanitize(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ".", "_").Replace(s)
}

func renderHTML(letter, companyName, jobTitle string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			ghtml.WithHardWraps(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(letter), &buf); err != nil {
		return "", err
	}
	title := fmt.Sprintf("Cover Letter - %s - %s", companyName, jobTitle)
	return fmt.Sprintf(htmlShell, html.EscapeString(title), buf.String()), nil
}

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
