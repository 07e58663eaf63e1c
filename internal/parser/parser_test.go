package parser

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tealeg/xlsx"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestChunkFileText(t *testing.T) {
	text := strings.Repeat("Built data pipelines in Go and Python for a retail analytics platform. ", 12)
	path := writeFile(t, "resume.txt", text)

	chunks, err := ChunkFile(path, 100, 20)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1, "long input should split into several chunks")

	lastOffset := -1
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Ordinal)
		assert.NotEmpty(t, strings.TrimSpace(chunk.Content))
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk.Content), 100)
		assert.Equal(t, "resume.txt", chunk.Metadata["source"])
		assert.Equal(t, "1", chunk.Metadata["page"])

		offset, err := strconv.Atoi(chunk.Metadata["offset"])
		require.NoError(t, err)
		assert.Greater(t, offset, lastOffset, "offsets advance through the source")
		assert.Equal(t, chunk.Content, text[offset:offset+len(chunk.Content)])
		lastOffset = offset
	}
}

func TestChunkFileMarkdown(t *testing.T) {
	path := writeFile(t, "resume.md", "# Experience\n\nData Engineer at Acme since 2021.\n")

	chunks, err := ChunkFile(path, 350, 50)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "Data Engineer at Acme")
	assert.Equal(t, "resume.md", chunks[0].Metadata["source"])
}

func TestChunkFileEmpty(t *testing.T) {
	path := writeFile(t, "blank.txt", "   \n\n  ")

	chunks, err := ChunkFile(path, 350, 50)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkFileUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "resume.pptx", "whatever")

	_, err := ChunkFile(path, 350, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".pptx")
}

func TestChunkFileUnreadablePDF(t *testing.T) {
	path := writeFile(t, "broken.pdf", "this is not a pdf")

	_, err := ChunkFile(path, 350, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}

func TestChunkFileMissing(t *testing.T) {
	_, err := ChunkFile(filepath.Join(t.TempDir(), "absent.txt"), 350, 50)
	require.Error(t, err)
}

func TestChunkFileXLSX(t *testing.T) {
	file := xlsx.NewFile()
	skills, err := file.AddSheet("Skills")
	require.NoError(t, err)
	row := skills.AddRow()
	row.AddCell().Value = "Python"
	row.AddCell().Value = "SQL"
	row = skills.AddRow()
	row.AddCell().Value = "Go"
	row.AddCell().Value = "Postgres"

	experience, err := file.AddSheet("Experience")
	require.NoError(t, err)
	experience.AddRow().AddCell().Value = "Data Engineer at Acme"

	path := filepath.Join(t.TempDir(), "resume.xlsx")
	require.NoError(t, file.Save(path))

	chunks, err := ChunkFile(path, 500, 50)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Contains(t, chunks[0].Content, "## Sheet: Skills")
	assert.Contains(t, chunks[0].Content, "Python\tSQL")
	assert.Equal(t, "1", chunks[0].Metadata["page"])

	last := chunks[len(chunks)-1]
	assert.Contains(t, last.Content, "## Sheet: Experience")
	assert.Contains(t, last.Content, "Data Engineer at Acme")
	assert.Equal(t, "2", last.Metadata["page"])
}

func TestExtractDocxText(t *testing.T) {
	content := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Muhammad Cikal Merdeka</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Data Scientist </w:t></w:r><w:r><w:t>at Acme</w:t></w:r></w:p>` +
		`<w:p><w:r><w:tab/><w:t>Table cell</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text := extractDocxText(content)

	assert.Contains(t, text, "Muhammad Cikal Merdeka")
	assert.Contains(t, text, "Data Scientist at Acme")
	assert.Contains(t, text, "Table cell")
	assert.NotContains(t, text, "<w:")
	assert.NotContains(t, text, "preserve")
}
