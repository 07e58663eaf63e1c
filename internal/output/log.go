package output

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/mcikalmerdeka/personalized-CL-generation/internal/helper"
)

const applicationsSheet = "Applications"

// ApplicationEntry is one row of the applications workbook.
type ApplicationEntry struct {
	CreatedAt  time.Time
	Company    string
	JobTitle   string
	ResumeType string
	Model      string
	OutputPath string
}

// AppendApplication records a generated letter in the applications log,
// creating the workbook on first use.
func AppendApplication(path string, entry ApplicationEntry) error {
	if err := helper.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	f, err := openApplicationsLog(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	defer f.Close()

	rows, err := f.GetRows(applicationsSheet)
	if err != nil {
		return fmt.Errorf("%w: failed to read applications log: %v", ErrOutputWrite, err)
	}
	row := len(rows) + 1

	values := []interface{}{
		entry.CreatedAt.UTC().Format(time.RFC3339),
		entry.Company,
		entry.JobTitle,
		entry.ResumeType,
		entry.Model,
		entry.OutputPath,
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		if err := f.SetCellValue(applicationsSheet, cell, value); err != nil {
			return fmt.Errorf("%w: failed to write applications log cell: %v", ErrOutputWrite, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: failed to save applications log: %v", ErrOutputWrite, err)
	}

	log.Debug().Str("path", path).Int("row", row).Msg("Application logged")
	return nil
}

func openApplicationsLog(path string) (*excelize.File, error) {
	if fileExists(path) {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open applications log: %v", err)
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", applicationsSheet); err != nil {
		return nil, err
	}
	headers := []string{"Timestamp", "Company", "Job Title", "Resume Type", "Model", "Output File"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(applicationsSheet, cell, header); err != nil {
			return nil, err
		}
	}
	return f, nil
}
