package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLetter(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteLetter(dir, "txt", "Muhammad Cikal Merdeka", "Acme Inc.", "Data Scientist / ML", "letter body")
	require.NoError(t, err)

	assert.Equal(t, "Cover_Letter_Muhammad_Cikal_Merdeka_Acme_Inc__Data_Scientist___ML.txt", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "letter body", string(data))
}

func TestWriteLetterCollision(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteLetter(dir, "txt", "Jane Doe", "Acme", "Engineer", "first letter")
	require.NoError(t, err)
	second, err := WriteLetter(dir, "txt", "Jane Doe", "Acme", "Engineer", "second letter")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(filepath.Base(second), "Cover_Letter_Jane_Doe_Acme_Engineer-"),
		"collision should suffix the base name, got %s", filepath.Base(second))

	// the original stays untouched
	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "first letter", string(data))

	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second letter", string(data))
}

func TestWriteLetterHTML(t *testing.T) {
	dir := t.TempDir()
	letter := "# Greeting\n\nDear **Hiring Manager**,\n"

	path, err := WriteLetter(dir, "html", "Jane Doe", "Acme & Co", "Data Scientist", letter)
	require.NoError(t, err)
	assert.Equal(t, ".html", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Cover Letter - Acme &amp; Co - Data Scientist</title>")
	assert.Contains(t, doc, "<h1>Greeting</h1>")
	assert.Contains(t, doc, "<strong>Hiring Manager</strong>")
}

func TestWriteLetterBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := WriteLetter(blocker, "txt", "Jane Doe", "Acme", "Engineer", "letter")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputWrite)
}
