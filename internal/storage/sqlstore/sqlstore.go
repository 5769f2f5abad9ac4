// Package sqlstore provides a database/sql implementation of the
// storage.Storage interface for SQLite, MySQL and PostgreSQL.
//
// CONNECTION LIFECYCLE
// ────────────────────
// There is no long-lived pool. Every operation opens its own handle
// (capped at a single connection), runs one statement and closes the
// handle before returning, whatever the outcome.
//
// ERROR POLICY
// ────────────
// Errors never leave this package. Each exported method logs the failure
// with slog and returns the documented empty result (false, nil slice
// replaced by an empty one, zero). Internally errors are wrapped with %w
// so the log line carries the whole chain.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/storage"
	"github.com/aanand-mishra/students-cli/internal/types"
)

// Explicitly list columns, never SELECT *. Scan order depends on it.
const (
	selectColumns = "SELECT id, name, email, age, course FROM students"

	insertQuery        = "INSERT INTO students (name, email, age, course) VALUES (?, ?, ?, ?)"
	selectAllQuery     = selectColumns + " ORDER BY id"
	selectByIDQuery    = selectColumns + " WHERE id = ?"
	selectByEmailQuery = selectColumns + " WHERE email = ?"
	searchByNameQuery  = selectColumns + " WHERE LOWER(name) LIKE LOWER(?) ORDER BY LOWER(name), name"
	updateQuery        = "UPDATE students SET name = ?, email = ?, age = ?, course = ? WHERE id = ?"
	deleteQuery        = "DELETE FROM students WHERE id = ?"
	countQuery         = "SELECT COUNT(*) FROM students"
)

var _ storage.Storage = (*Store)(nil)

// Store is the concrete implementation of storage.Storage.
// It holds connection parameters only; see the package doc for the
// connection lifecycle.
type Store struct {
	cfg     config.Database
	dialect dialect
	log     *slog.Logger
}

// New returns a Store for cfg. It does not connect: a database that is
// down at start-up is reported by the first operation, not here.
func New(cfg config.Database, log *slog.Logger) (*Store, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.New: %w", err)
	}
	if d.network && (cfg.Host == "" || cfg.Port == 0) {
		return nil, fmt.Errorf("sqlstore.New: driver %s needs host and port", cfg.Driver)
	}
	if cfg.Name == "" {
		return nil, errors.New("sqlstore.New: database name is empty")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		cfg:     cfg,
		dialect: d,
		log:     log.With(slog.String("component", "sqlstore"), slog.String("driver", cfg.Driver)),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scoped acquisition
// ─────────────────────────────────────────────────────────────────────────────

// withDSN opens a handle for dsn, verifies it with a ping, runs fn and
// closes the handle on every path.
func (s *Store) withDSN(ctx context.Context, dsn string, fn func(db *sql.DB) error) error {
	// sql.Open only validates its arguments; PingContext makes the
	// actual connection.
	db, err := sql.Open(s.dialect.driver, dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer s.release(db)

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	return fn(db)
}

func (s *Store) withDB(ctx context.Context, fn func(db *sql.DB) error) error {
	return s.withDSN(ctx, s.dialect.dsn(s.cfg), fn)
}

func (s *Store) release(db *sql.DB) {
	if err := db.Close(); err != nil {
		s.log.Error("error closing db", slog.String("error", err.Error()))
	}
}

func (s *Store) prepare(ctx context.Context, db *sql.DB, query string) (*sql.Stmt, error) {
	stmt, err := db.PrepareContext(ctx, s.dialect.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return stmt, nil
}

func (s *Store) fail(op string, err error) {
	s.log.Error("database operation failed",
		slog.String("op", op),
		slog.String("error", err.Error()))
}

// ─────────────────────────────────────────────────────────────────────────────
// Row mapping
// ─────────────────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.Course,
	)
	return student, err
}

// queryStudents runs a multi-row SELECT and maps every row.
func (s *Store) queryStudents(ctx context.Context, query string, args ...any) ([]types.Student, error) {
	students := make([]types.Student, 0)

	err := s.withDB(ctx, func(db *sql.DB) error {
		stmt, err := s.prepare(ctx, db, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
			students = append(students, student)
		}

		// rows.Err() reports errors hit during iteration, separate from Scan.
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}
		return nil
	})
	if err != nil {
		return make([]types.Student, 0), err
	}

	return students, nil
}

// queryStudent runs a single-row SELECT. sql.ErrNoRows becomes ok=false.
func (s *Store) queryStudent(ctx context.Context, query string, arg any) (types.Student, bool, error) {
	var (
		student types.Student
		found   bool
	)

	err := s.withDB(ctx, func(db *sql.DB) error {
		stmt, err := s.prepare(ctx, db, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		student, err = scanStudent(stmt.QueryRowContext(ctx, arg))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return types.Student{}, false, err
	}

	return student, true, nil
}

// exec runs a write statement and returns the number of affected rows.
func (s *Store) exec(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64

	err := s.withDB(ctx, func(db *sql.DB) error {
		stmt, err := s.prepare(ctx, db, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})

	return affected, err
}

// ─────────────────────────────────────────────────────────────────────────────
// storage.Storage
// ─────────────────────────────────────────────────────────────────────────────

// EnsureSchema creates the database and the students table when they do
// not exist yet. Both statements are idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.dialect.createDatabase(ctx, s); err != nil {
		err = fmt.Errorf("create database %s: %w", s.cfg.Name, err)
		s.fail("ensure schema", err)
		return err
	}

	err := s.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, s.dialect.createTable)
		return err
	})
	if err != nil {
		err = fmt.Errorf("create table students: %w", err)
		s.fail("ensure schema", err)
		return err
	}

	s.log.Info("schema ready", slog.String("database", s.cfg.Name))
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert adds a row and copies the generated id back into student.
//
// Values travel as bound parameters, never spliced into the SQL text:
// the driver sends the statement and the values separately, so a name
// like "'; DROP TABLE students; --" is stored as plain data.
// ─────────────────────────────────────────────────────────────────────────────
func (s *Store) Insert(ctx context.Context, student *types.Student) bool {
	id, err := s.insert(ctx, *student)
	if err != nil {
		s.fail("insert", err)
		return false
	}

	student.ID = id
	s.log.Debug("student inserted", slog.Int64("id", id))
	return true
}

func (s *Store) insert(ctx context.Context, student types.Student) (int64, error) {
	args := []any{student.Name, student.Email, student.Age, student.Course}
	var id int64

	err := s.withDB(ctx, func(db *sql.DB) error {
		if s.dialect.returning {
			stmt, err := s.prepare(ctx, db, insertQuery+" RETURNING id")
			if err != nil {
				return err
			}
			defer stmt.Close()

			if err := stmt.QueryRowContext(ctx, args...).Scan(&id); err != nil {
				return fmt.Errorf("exec: %w", err)
			}
			return nil
		}

		stmt, err := s.prepare(ctx, db, insertQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected != 1 {
			return fmt.Errorf("insert affected %d rows", affected)
		}

		// LastInsertId returns the auto-generated primary key of the new row.
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})

	return id, err
}

// FindAll returns every student ordered by id.
func (s *Store) FindAll(ctx context.Context) []types.Student {
	students, err := s.queryStudents(ctx, selectAllQuery)
	if err != nil {
		s.fail("find all", err)
	}
	return students
}

// FindByID fetches the student whose primary key is id.
func (s *Store) FindByID(ctx context.Context, id int64) (types.Student, bool) {
	student, ok, err := s.queryStudent(ctx, selectByIDQuery, id)
	if err != nil {
		s.fail("find by id", err)
	}
	return student, ok
}

// FindByEmail fetches the student with exactly this e-mail address.
func (s *Store) FindByEmail(ctx context.Context, email string) (types.Student, bool) {
	student, ok, err := s.queryStudent(ctx, selectByEmailQuery, email)
	if err != nil {
		s.fail("find by email", err)
	}
	return student, ok
}

// Update rewrites every mutable column of the row matching student.ID.
func (s *Store) Update(ctx context.Context, student types.Student) bool {
	// Argument order matches the ? order in the SQL: name, email, age, course, id.
	affected, err := s.exec(ctx, updateQuery,
		student.Name, student.Email, student.Age, student.Course, student.ID)
	if err != nil {
		s.fail("update", err)
		return false
	}
	if affected != 1 {
		s.log.Debug("update matched no student", slog.Int64("id", student.ID))
		return false
	}
	return true
}

// Delete removes the row matching id. Deletion is physical.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	affected, err := s.exec(ctx, deleteQuery, id)
	if err != nil {
		s.fail("delete", err)
		return false
	}
	if affected != 1 {
		s.log.Debug("delete matched no student", slog.Int64("id", id))
		return false
	}
	return true
}

// Count returns the total number of students.
func (s *Store) Count(ctx context.Context) int {
	var count int

	err := s.withDB(ctx, func(db *sql.DB) error {
		stmt, err := s.prepare(ctx, db, countQuery)
		if err != nil {
			return err
		}
		defer stmt.Close()

		if err := stmt.QueryRowContext(ctx).Scan(&count); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		return nil
	})
	if err != nil {
		s.fail("count", err)
		return 0
	}

	return count
}

// SearchByName returns students whose name contains fragment, ignoring
// case, ordered alphabetically by name.
func (s *Store) SearchByName(ctx context.Context, fragment string) []types.Student {
	students, err := s.queryStudents(ctx, searchByNameQuery, "%"+fragment+"%")
	if err != nil {
		s.fail("search by name", err)
	}
	return students
}

// TestConnection opens a connection and releases it straight away.
func (s *Store) TestConnection(ctx context.Context) bool {
	err := s.withDB(ctx, func(*sql.DB) error { return nil })
	if err != nil {
		s.fail("test connection", err)
		return false
	}

	s.log.Info("database connection successful")
	return true
}
