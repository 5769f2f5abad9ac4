package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"

	"github.com/aanand-mishra/students-cli/internal/config"

	// Blank imports: side-effect only (each registers a database/sql driver).
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx"
	_ "github.com/mattn/go-sqlite3"    // "sqlite3" (cgo)
	_ "modernc.org/sqlite"             // "sqlite" (pure Go)
)

// dialect captures everything that differs between the supported
// databases. Queries in this package are written with "?" placeholders
// and passed through rebind before they are prepared.
type dialect struct {
	// driver is the database/sql driver name.
	driver string

	// network dialects need Host and Port.
	network bool

	// returning dialects report the new id through INSERT ... RETURNING id
	// instead of LastInsertId.
	returning bool

	createTable string

	dsn func(cfg config.Database) string

	// createDatabase makes sure the database named by cfg.Name exists.
	createDatabase func(ctx context.Context, s *Store) error

	rebind func(query string) string
}

var dialects = map[string]dialect{
	"sqlite3":  sqliteDialect("sqlite3"),
	"sqlite":   sqliteDialect("sqlite"),
	"mysql":    mysqlDialect(),
	"postgres": postgresDialect(),
}

func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
	return d, nil
}

func keepPlaceholders(query string) string { return query }

// ── SQLite ──────────────────────────────────────────────────────────────────

// sqliteDialect serves both SQLite drivers. The database is a single file
// named by cfg.Name; "creating the database" means making sure its
// directory exists, the driver creates the file on first open.
func sqliteDialect(driver string) dialect {
	return dialect{
		driver: driver,
		createTable: `
			CREATE TABLE IF NOT EXISTS students (
				id     INTEGER PRIMARY KEY AUTOINCREMENT,
				name   TEXT    NOT NULL,
				email  TEXT    NOT NULL UNIQUE,
				age    INTEGER NOT NULL,
				course TEXT    NOT NULL
			)`,
		dsn: func(cfg config.Database) string { return cfg.Name },
		createDatabase: func(_ context.Context, s *Store) error {
			dir := filepath.Dir(s.cfg.Name)
			if dir == "." || strings.HasPrefix(s.cfg.Name, ":memory:") {
				return nil
			}
			return os.MkdirAll(dir, 0o755)
		},
		rebind: keepPlaceholders,
	}
}

// ── MySQL ───────────────────────────────────────────────────────────────────

func mysqlDialect() dialect {
	return dialect{
		driver:  "mysql",
		network: true,
		createTable: `
			CREATE TABLE IF NOT EXISTS students (
				id     INT AUTO_INCREMENT PRIMARY KEY,
				name   VARCHAR(100) NOT NULL,
				email  VARCHAR(150) NOT NULL UNIQUE,
				age    INT          NOT NULL,
				course VARCHAR(100) NOT NULL
			)`,
		dsn: func(cfg config.Database) string { return mysqlDSN(cfg, cfg.Name) },
		createDatabase: func(ctx context.Context, s *Store) error {
			// Connect to the server without selecting a schema: the schema
			// may not exist yet.
			return s.withDSN(ctx, mysqlDSN(s.cfg, ""), func(db *sql.DB) error {
				_, err := db.ExecContext(ctx,
					"CREATE DATABASE IF NOT EXISTS "+mysqlQuoteIdent(s.cfg.Name))
				return err
			})
		},
		rebind: keepPlaceholders,
	}
}

func mysqlDSN(cfg config.Database, dbName string) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = dbName
	// Report matched rather than changed rows, so an UPDATE that writes
	// identical values still counts as one affected row.
	c.ClientFoundRows = true
	return c.FormatDSN()
}

func mysqlQuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// ── PostgreSQL ──────────────────────────────────────────────────────────────

func postgresDialect() dialect {
	return dialect{
		driver:    "pgx",
		network:   true,
		returning: true,
		createTable: `
			CREATE TABLE IF NOT EXISTS students (
				id     SERIAL  PRIMARY KEY,
				name   TEXT    NOT NULL,
				email  TEXT    NOT NULL UNIQUE,
				age    INTEGER NOT NULL,
				course TEXT    NOT NULL
			)`,
		dsn: func(cfg config.Database) string { return postgresDSN(cfg, cfg.Name) },
		createDatabase: func(ctx context.Context, s *Store) error {
			// PostgreSQL has no CREATE DATABASE IF NOT EXISTS; look it up
			// from the maintenance database first.
			return s.withDSN(ctx, postgresDSN(s.cfg, "postgres"), func(db *sql.DB) error {
				var one int
				err := db.QueryRowContext(ctx,
					"SELECT 1 FROM pg_database WHERE datname = $1", s.cfg.Name).Scan(&one)
				if err == nil {
					return nil
				}
				if !errors.Is(err, sql.ErrNoRows) {
					return err
				}
				_, err = db.ExecContext(ctx,
					"CREATE DATABASE "+pgx.Identifier{s.cfg.Name}.Sanitize())
				return err
			})
		},
		rebind: postgresRebind,
	}
}

func postgresDSN(cfg config.Database, dbName string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + dbName,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}

// postgresRebind turns "?" placeholders into "$1", "$2", ...
func postgresRebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
