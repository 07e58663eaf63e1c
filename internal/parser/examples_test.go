package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyleExamples(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("Second example\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("First example\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.log"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("   \n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	examples, err := LoadStyleExamples(dir)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	// lexical filename order keeps prompts reproducible
	assert.Equal(t, "a.md", examples[0].Filename)
	assert.Equal(t, "First example", examples[0].Content)
	assert.Equal(t, "b.txt", examples[1].Filename)
	assert.Equal(t, "Second example", examples[1].Content)
}

func TestLoadStyleExamplesMissingDir(t *testing.T) {
	examples, err := LoadStyleExamples(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Nil(t, examples)
}

func TestLoadStyleExamplesUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old_letter.pdf"), []byte("not a pdf"), 0o644))

	_, err := LoadStyleExamples(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadablePDF)
}
