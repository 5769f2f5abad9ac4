package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aanand-mishra/students-cli/internal/types"
)

type staticLister []types.Student

func (l staticLister) FindAll(context.Context) []types.Student { return l }

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")
	students := staticLister{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Age: 20, Course: "CS"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Age: 22, Course: "Math"},
	}

	n, err := WriteXLSX(context.Background(), students, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "Name", "Email", "Age", "Course"},
		{"1", "Alice", "alice@example.com", "20", "CS"},
		{"2", "Bob", "bob@example.com", "22", "Math"},
	}, rows)
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	n, err := WriteXLSX(context.Background(), staticLister{}, path)
	require.NoError(t, err)
	assert.Zero(t, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestWriteXLSXBadPath(t *testing.T) {
	_, err := WriteXLSX(context.Background(), staticLister{}, filepath.Join(t.TempDir(), "missing", "x.xlsx"))
	assert.Error(t, err)
}
