// Package storage defines the Storage interface, the contract between
// the console handlers and whatever database backs the students table.
//
// Handlers depend only on this interface, so tests can pass a fake and
// the SQL dialect stays an implementation detail of sqlstore.
//
// Every method contains its own failures: connectivity and constraint
// errors are logged by the implementation and surface here only as
// false / empty / zero results. "Not found" is the second (ok) return
// value of the Find methods, never an error.
package storage

import (
	"context"

	"github.com/aanand-mishra/students-cli/internal/types"
)

// Storage is the data-access contract.
type Storage interface {
	// EnsureSchema creates the database (if absent) and the students
	// table (if absent). Safe to call on every startup. A non-nil error
	// has already been logged; callers may carry on.
	EnsureSchema(ctx context.Context) error

	// Insert stores a new student and sets student.ID to the id assigned
	// by the database. Returns true iff exactly one row was inserted;
	// false on duplicate e-mail or any database error.
	Insert(ctx context.Context, student *types.Student) bool

	// FindAll returns every student ordered by ascending id.
	// Returns an empty slice (not nil) when there are none.
	FindAll(ctx context.Context) []types.Student

	// FindByID returns the student with the given id, or ok=false.
	FindByID(ctx context.Context, id int64) (student types.Student, ok bool)

	// FindByEmail returns the student with exactly this e-mail, or ok=false.
	FindByEmail(ctx context.Context, email string) (student types.Student, ok bool)

	// Update rewrites name, email, age and course of the row matching
	// student.ID. Returns true iff exactly one row was affected.
	Update(ctx context.Context, student types.Student) bool

	// Delete removes the row matching id. Returns true iff exactly one
	// row was removed.
	Delete(ctx context.Context, id int64) bool

	// Count returns the number of students, 0 on error.
	Count(ctx context.Context) int

	// SearchByName returns students whose name contains fragment,
	// case-insensitively, ordered by name.
	SearchByName(ctx context.Context, fragment string) []types.Student

	// TestConnection opens and releases a connection.
	TestConnection(ctx context.Context) bool
}
