// Package student contains the menu actions for the Student resource.
//
// HANDLER PATTERN: THE CLOSURE / FACTORY PATTERN
// ───────────────────────────────────────────────
// The menu expects actions with the signature menu.ActionFunc:
//
//	func(ctx context.Context, s *prompt.Session) error
//
// That signature has no room for the storage dependency, so each
// factory below accepts the storage and returns the action, which
// closes over it:
//
//	m.Handle("Add New Student", student.New(store))
//
// New(store) runs once at start-up; the returned func runs every time
// the user picks the entry.
//
// Actions print every outcome themselves. The only error they return is
// an input error from the session (io.EOF when stdin is closed).
package student

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aanand-mishra/students-cli/internal/console/menu"
	"github.com/aanand-mishra/students-cli/internal/console/prompt"
	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"
	"github.com/aanand-mishra/students-cli/internal/utils/output"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles "Add New Student".
//
// Fields are collected in order and checked as soon as they are entered;
// the first invalid field aborts the action:
//
//	name  : non-empty after trimming
//	email : format rule, and not already used by another student
//	age   : re-prompted until numeric, then 1..150
//	course: non-empty after trimming
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		output.Title(s.Out(), "ADD NEW STUDENT")

		var student types.Student
		var err error

		if student.Name, err = s.Line("Enter student name: "); err != nil {
			return err
		}
		if !checkFields(s, student, "Name") {
			return nil
		}

		if student.Email, err = s.Line("Enter student email: "); err != nil {
			return err
		}
		if !checkFields(s, student, "Email") {
			return nil
		}

		// Pre-check uniqueness so the user gets a clear message; the
		// UNIQUE constraint remains the real guarantee.
		if _, taken := store.FindByEmail(ctx, student.Email); taken {
			s.Println("Email already exists! Please use a different email.")
			return nil
		}

		if student.Age, err = s.Int("Enter student age: "); err != nil {
			return err
		}
		if !checkFields(s, student, "Age") {
			return nil
		}

		if student.Course, err = s.Line("Enter course: "); err != nil {
			return err
		}
		if !checkFields(s, student, "Course") {
			return nil
		}

		if !store.Insert(ctx, &student) {
			output.Failure(s.Out(), "Failed to add student. Please try again.")
			return nil
		}

		slog.Info("student created", slog.Int64("id", student.ID))
		output.Success(s.Out(), "Student added successfully! (ID: %d)", student.ID)
		return nil
	}
}

// checkFields validates the named fields of student and prints the
// problem when there is one.
func checkFields(s *prompt.Session, student types.Student, fields ...string) bool {
	if err := student.ValidateFields(fields...); err != nil {
		s.Println(output.ErrorMessage(err))
		return false
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles "View All Students": every student ordered by id.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		students := store.FindAll(ctx)

		output.Title(s.Out(), "ALL STUDENTS")
		s.Println(output.Rule)

		if len(students) == 0 {
			s.Println("No students found in database.")
		} else {
			output.Students(s.Out(), students)
			s.Println()
			s.Println("Total Students: " + strconv.Itoa(len(students)))
		}

		s.Println(output.Rule)
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles "View Student by ID".
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		id, err := s.ID("\nEnter student ID: ")
		if err != nil {
			return err
		}

		student, ok := store.FindByID(ctx, id)
		if !ok {
			output.Failure(s.Out(), "Student not found with ID: %d", id)
			return nil
		}

		output.Title(s.Out(), "STUDENT DETAILS")
		s.Println(student.String())
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles "Update Student".
//
// Each field is offered with its current value; a blank answer keeps it.
// An invalid answer also keeps the current value, with a message.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		id, err := s.ID("\nEnter student ID to update: ")
		if err != nil {
			return err
		}

		student, ok := store.FindByID(ctx, id)
		if !ok {
			output.Failure(s.Out(), "Student not found with ID: %d", id)
			return nil
		}

		s.Println("Current details: " + student.String())
		s.Println("\nEnter new details (press Enter to keep current value):")

		// Name
		name, err := s.Line("Name [" + student.Name + "]: ")
		if err != nil {
			return err
		}
		if name != "" {
			student.Name = name
		}

		// Email
		email, err := s.Line("Email [" + student.Email + "]: ")
		if err != nil {
			return err
		}
		if email != "" {
			switch {
			case !types.ValidEmail(email):
				s.Println("Invalid email format. Keeping current value.")
			case emailTakenByOther(ctx, store, email, student.ID):
				s.Println("Email already exists. Keeping current value.")
			default:
				student.Email = email
			}
		}

		// Age
		ageInput, err := s.Line("Age [" + strconv.Itoa(student.Age) + "]: ")
		if err != nil {
			return err
		}
		if ageInput != "" {
			if age, convErr := strconv.Atoi(ageInput); convErr != nil {
				s.Println("Invalid age format. Keeping current value.")
			} else if (types.Student{Age: age}).ValidateFields("Age") != nil {
				s.Println("Invalid age. Keeping current value.")
			} else {
				student.Age = age
			}
		}

		// Course
		course, err := s.Line("Course [" + student.Course + "]: ")
		if err != nil {
			return err
		}
		if course != "" {
			student.Course = course
		}

		if !store.Update(ctx, student) {
			output.Failure(s.Out(), "Failed to update student.")
			return nil
		}

		slog.Info("student updated", slog.Int64("id", student.ID))
		output.Success(s.Out(), "Student updated successfully!")
		return nil
	}
}

// emailTakenByOther reports whether email belongs to a student other than id.
func emailTakenByOther(ctx context.Context, store storage.Storage, email string, id int64) bool {
	owner, ok := store.FindByEmail(ctx, email)
	return ok && owner.ID != id
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles "Delete Student". Nothing is removed without an
// explicit "y" or "yes".
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		id, err := s.ID("\nEnter student ID to delete: ")
		if err != nil {
			return err
		}

		student, ok := store.FindByID(ctx, id)
		if !ok {
			output.Failure(s.Out(), "Student not found with ID: %d", id)
			return nil
		}

		s.Println("Student to delete: " + student.String())
		confirmed, err := s.Confirm("Are you sure you want to delete this student? (y/N): ")
		if err != nil {
			return err
		}
		if !confirmed {
			s.Println("Deletion cancelled.")
			return nil
		}

		if !store.Delete(ctx, id) {
			output.Failure(s.Out(), "Failed to delete student.")
			return nil
		}

		slog.Info("student deleted", slog.Int64("id", id))
		output.Success(s.Out(), "Student deleted successfully!")
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles "Search Students" (case-insensitive name fragment).
// ─────────────────────────────────────────────────────────────────────────────
func Search(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		term, err := s.Line("\nEnter student name to search: ")
		if err != nil {
			return err
		}
		if term == "" {
			s.Println("Search term cannot be empty!")
			return nil
		}

		students := store.SearchByName(ctx, term)

		output.Title(s.Out(), "SEARCH RESULTS")
		s.Println(output.Rule)

		if len(students) == 0 {
			s.Printf("No students found matching '%s'\n", term)
		} else {
			s.Printf("Found %d student(s) matching '%s':\n", len(students), term)
			output.Students(s.Out(), students)
		}

		s.Println(output.Rule)
		return nil
	}
}

// Stats handles "Show Statistics".
func Stats(store storage.Storage) menu.ActionFunc {
	return func(ctx context.Context, s *prompt.Session) error {
		total := store.Count(ctx)

		output.Title(s.Out(), "DATABASE STATISTICS")
		s.Println("Total Students: " + strconv.Itoa(total))
		s.Println("===========================")
		return nil
	}
}

// Register adds every student action to m in menu order.
func Register(m *menu.Menu, store storage.Storage) {
	m.Handle("Add New Student", New(store))
	m.Handle("View All Students", GetList(store))
	m.Handle("View Student by ID", GetByID(store))
	m.Handle("Update Student", Update(store))
	m.Handle("Delete Student", Delete(store))
	m.Handle("Search Students", Search(store))
	m.Handle("Show Statistics", Stats(store))
}
