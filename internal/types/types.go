// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the console handlers, storage, and export packages can all import
// types without depending on each other.
package types

import "fmt"

// Student represents one row of the students table.
//
// Struct tags serve two purposes:
//
//  1. json:"...": controls how the field appears when encoded to JSON.
//
//  2. validate:"...": rules checked by the go-playground/validator
//     package (see validate.go). "student_email" is a custom tag
//     registered by this package.
//
// ID is assigned by storage on insert; an ID of 0 means the student has
// not been persisted yet.
type Student struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required,student_email"`
	Age    int    `json:"age"    validate:"min=1,max=150"`
	Course string `json:"course" validate:"required"`
}

// String renders the student on a single line, the way every console
// listing prints it.
func (s Student) String() string {
	return fmt.Sprintf("ID: %d | Name: %s | Email: %s | Age: %d | Course: %s",
		s.ID, s.Name, s.Email, s.Age, s.Course)
}

// Equal reports whether two students are the same record.
//
// Identity is the ID alone: two values with the same ID are equal even
// if their other fields differ (e.g. a stale copy and a freshly read row).
// Do not compare Student values with == when identity is what you mean.
func (s Student) Equal(other Student) bool {
	return s.ID == other.ID
}

// Key returns the value to use when a Student identifies an entry in a
// map or set. It is consistent with Equal.
func (s Student) Key() int64 {
	return s.ID
}

// IsNew reports whether the student has not been stored yet.
func (s Student) IsNew() bool {
	return s.ID == 0
}
