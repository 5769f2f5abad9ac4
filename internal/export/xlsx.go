// Package export writes the students table to an .xlsx workbook.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aanand-mishra/students-cli/internal/types"
)

// SheetName is the worksheet that holds the students.
const SheetName = "Students"

var header = []any{"ID", "Name", "Email", "Age", "Course"}

// Lister is the slice of storage.Storage the export needs.
type Lister interface {
	FindAll(ctx context.Context) []types.Student
}

// WriteXLSX writes every student (ordered by id) to a new workbook at
// path, one row per student under a header row. It returns the number
// of students written.
func WriteXLSX(ctx context.Context, store Lister, path string) (int, error) {
	students := store.FindAll(ctx)

	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it rather than leave it empty.
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return 0, fmt.Errorf("export: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return 0, fmt.Errorf("export: write header: %w", err)
	}

	for i, s := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, fmt.Errorf("export: cell name: %w", err)
		}

		row := []any{s.ID, s.Name, s.Email, s.Age, s.Course}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("export: write student %d: %w", s.ID, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return 0, fmt.Errorf("export: freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("export: save %s: %w", path, err)
	}

	return len(students), nil
}
