package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-cli/internal/types"
)

func TestValidationMessage(t *testing.T) {
	err := types.Student{}.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))

	assert.Equal(t,
		"Name cannot be empty! Please enter a valid email address! "+
			"Please enter a valid age (1-150)! Course cannot be empty!",
		ValidationMessage(errs))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))

	err := types.Student{Name: "Bob", Email: "bob@example.com", Age: 200, Course: "CS"}.Validate()
	assert.Equal(t, "Please enter a valid age (1-150)!", ErrorMessage(err))
}

func TestMessages(t *testing.T) {
	var out bytes.Buffer

	Success(&out, "Student added successfully! (ID: %d)", 3)
	Failure(&out, "Student not found with ID: %d", 9)
	Warning(&out, "careful")
	Title(&out, "ALL STUDENTS")
	Students(&out, []types.Student{{ID: 1, Name: "Alice", Email: "alice@example.com", Age: 20, Course: "CS"}})

	assert.Contains(t, out.String(), "✓ Student added successfully! (ID: 3)")
	assert.Contains(t, out.String(), "✗ Student not found with ID: 9")
	assert.Contains(t, out.String(), "careful")
	assert.Contains(t, out.String(), "=== ALL STUDENTS ===")
	assert.Contains(t, out.String(), "ID: 1 | Name: Alice | Email: alice@example.com | Age: 20 | Course: CS\n")
}
