package types

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() Student {
	return Student{
		ID:     7,
		Name:   "Alice",
		Email:  "alice@example.com",
		Age:    20,
		Course: "CS",
	}
}

func TestStudentString(t *testing.T) {
	s := validStudent()
	assert.Equal(t,
		"ID: 7 | Name: Alice | Email: alice@example.com | Age: 20 | Course: CS",
		s.String())
}

func TestStudentEqualUsesIDOnly(t *testing.T) {
	a := validStudent()
	b := Student{ID: 7, Name: "Someone Else", Email: "other@example.com", Age: 99, Course: "Math"}
	c := validStudent()
	c.ID = 8

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.Equal(t, a.Key(), b.Key())

	set := map[int64]Student{}
	set[a.Key()] = a
	set[b.Key()] = b
	assert.Len(t, set, 1)
}

func TestStudentIsNew(t *testing.T) {
	assert.True(t, Student{Name: "x"}.IsNew())
	assert.False(t, validStudent().IsNew())
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a@b.co", true},
		{"a@b.c", false}, // exactly 5 characters
		{"alice.example.com", false},
		{"alice@examplecom", false},
		{"@example.com", false},
		{"alice.com@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestStudentValidate(t *testing.T) {
	require.NoError(t, validStudent().Validate())

	tests := []struct {
		name   string
		mutate func(*Student)
		field  string
		tag    string
	}{
		{"empty name", func(s *Student) { s.Name = "" }, "Name", "required"},
		{"empty course", func(s *Student) { s.Course = "" }, "Course", "required"},
		{"bad email", func(s *Student) { s.Email = "nope" }, "Email", EmailTag},
		{"age zero", func(s *Student) { s.Age = 0 }, "Age", "min"},
		{"age too old", func(s *Student) { s.Age = 151 }, "Age", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field())
			assert.Equal(t, tt.tag, errs[0].Tag())
		})
	}
}

func TestStudentValidateFields(t *testing.T) {
	s := Student{Name: "Bob"}

	assert.NoError(t, s.ValidateFields("Name"))
	assert.Error(t, s.ValidateFields("Email"))
	assert.Error(t, s.ValidateFields("Name", "Age"))

	s.Age = 150
	assert.NoError(t, s.ValidateFields("Name", "Age"))
}
