package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/models"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"github.com/tmc/langchaingo/textsplitter"
)

// page is one extractable unit of a source document. PDFs map pages to
// pages, workbooks map sheets to pages, flat text is a single page.
type page struct {
	Number int
	Text   string
}

// ChunkFile parses a resume document and splits it into overlapping chunks
// sized for embedding. Ordinals record insertion order across the whole
// document and metadata carries the source filename and page.
func ChunkFile(filePath string, chunkSize, chunkOverlap int) ([]models.Chunk, error) {
	pages, err := extractPages(filePath)
	if err != nil {
		return nil, err
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	source := filepath.Base(filePath)
	var chunks []models.Chunk
	for _, pg := range pages {
		parts, err := splitter.SplitText(pg.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split %s page %d: %w", source, pg.Number, err)
		}
		// Overlapping parts appear in page order, so each one starts at or
		// after the previous part's start.
		searchFrom := 0
		for _, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			offset := searchFrom
			if idx := strings.Index(pg.Text[searchFrom:], part); idx >= 0 {
				offset = searchFrom + idx
				searchFrom = offset + 1
			}
			chunks = append(chunks, models.Chunk{
				Content: part,
				Ordinal: len(chunks),
				Metadata: map[string]string{
					"source": source,
					"page":   strconv.Itoa(pg.Number),
					"offset": strconv.Itoa(offset),
				},
			})
		}
	}

	log.Debug().Str("file", source).Int("pages", len(pages)).Int("chunks", len(chunks)).Msg("Parsed document")
	return chunks, nil
}

func extractPages(filePath string) ([]page, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return parsePDF(filePath)
	case ".docx":
		return parseDOCX(filePath)
	case ".xlsx":
		return parseXLSX(filePath)
	case ".txt", ".md":
		return parseText(filePath)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parsePDF(filePath string) ([]page, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Get file size for reader initialization
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadablePDF, filePath, err)
	}

	var pages []page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		pageText, err := reader.Page(i).GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %v", ErrUnreadablePDF, filePath, i, err)
		}
		pages = append(pages, page{Number: i, Text: pageText})
	}
	return pages, nil
}

func parseDOCX(filePath string) ([]page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return []page{{Number: 1, Text: extractDocxText(content)}}, nil
}

func parseXLSX(filePath string) ([]page, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var pages []page
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, page{Number: sheetNum + 1, Text: text.String()})
	}
	return pages, nil
}

func parseText(filePath string) ([]page, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return []page{{Number: 1, Text: string(data)}}, nil
}

// docx content arrives as raw WordprocessingML, text lives in <w:t> runs
// separated into paragraphs by </w:p>
func extractDocxText(xmlContent string) string {
	var text strings.Builder
	for _, para := range strings.Split(xmlContent, "</w:p>") {
		runs := strings.Split(para, "<w:t")
		for i, run := range runs {
			if i == 0 {
				continue
			}
			// skip other w:t-prefixed tags like <w:tbl> or <w:tab/>
			if run == "" || (run[0] != '>' && run[0] != ' ') {
				continue
			}
			start := strings.Index(run, ">")
			if start < 0 {
				continue
			}
			end := strings.Index(run[start+1:], "</w:t>")
			if end >= 0 {
				text.WriteString(run[start+1 : start+1+end])
			}
		}
		text.WriteString("\n")
	}
	return text.String()
}
