package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAppendApplication(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "applications.xlsx")
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	first := ApplicationEntry{
		CreatedAt:  created,
		Company:    "Acme",
		JobTitle:   "Data Scientist",
		ResumeType: "ai_engineer",
		Model:      "gpt-4.1-mini",
		OutputPath: "output/Cover_Letter_A.txt",
	}
	require.NoError(t, AppendApplication(path, first))

	second := first
	second.Company = "Globex"
	second.OutputPath = "output/Cover_Letter_B.txt"
	require.NoError(t, AppendApplication(path, second))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Timestamp", "Company", "Job Title", "Resume Type", "Model", "Output File"}, rows[0])

	require.Len(t, rows[1], 6)
	assert.Equal(t, "2025-03-14T09:30:00Z", rows[1][0])
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "Data Scientist", rows[1][2])
	assert.Equal(t, "ai_engineer", rows[1][3])
	assert.Equal(t, "gpt-4.1-mini", rows[1][4])
	assert.Equal(t, "output/Cover_Letter_A.txt", rows[1][5])

	assert.Equal(t, "Globex", rows[2][1])
	assert.Equal(t, "output/Cover_Letter_B.txt", rows[2][5])
}

func TestAppendApplicationBadPath(t *testing.T) {
	occupied := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0o644))

	err := AppendApplication(filepath.Join(occupied, "applications.xlsx"), ApplicationEntry{CreatedAt: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputWrite)
}
