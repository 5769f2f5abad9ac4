package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/logging"
)

func TestPostgresRebind(t *testing.T) {
	assert.Equal(t,
		"UPDATE students SET name = $1, email = $2, age = $3, course = $4 WHERE id = $5",
		postgresRebind(updateQuery))
	assert.Equal(t, countQuery, postgresRebind(countQuery))
}

func TestEveryQueryUsesPlaceholders(t *testing.T) {
	// Each value-carrying query must bind its values rather than format them.
	queries := map[string]int{
		insertQuery:        4,
		selectByIDQuery:    1,
		selectByEmailQuery: 1,
		searchByNameQuery:  1,
		updateQuery:        5,
		deleteQuery:        1,
	}
	for q, want := range queries {
		got := 0
		for _, r := range q {
			if r == '?' {
				got++
			}
		}
		assert.Equal(t, want, got, q)
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := config.Database{
		Driver:   "mysql",
		Host:     "db.local",
		Port:     3306,
		Name:     "student_db",
		User:     "root",
		Password: "p@ss",
	}

	parsed, err := mysql.ParseDSN(mysqlDSN(cfg, cfg.Name))
	require.NoError(t, err)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3306", parsed.Addr)
	assert.Equal(t, "student_db", parsed.DBName)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.True(t, parsed.ClientFoundRows)

	server, err := mysql.ParseDSN(mysqlDSN(cfg, ""))
	require.NoError(t, err)
	assert.Empty(t, server.DBName)
}

func TestMySQLQuoteIdent(t *testing.T) {
	assert.Equal(t, "`student_db`", mysqlQuoteIdent("student_db"))
	assert.Equal(t, "`we``ird`", mysqlQuoteIdent("we`ird"))
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.Database{Host: "pg", Port: 5432, Name: "students", User: "app", Password: "s3cret"}
	assert.Equal(t, "postgres://app:s3cret@pg:5432/students", postgresDSN(cfg, cfg.Name))

	cfg.User = ""
	assert.Equal(t, "postgres://pg:5432/postgres", postgresDSN(cfg, "postgres"))
}

func TestSQLiteCreateDatabaseMakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	store, err := New(config.Database{Driver: "sqlite3", Name: filepath.Join(dir, "s.db")}, logging.Discard())
	require.NoError(t, err)

	require.NoError(t, store.dialect.createDatabase(context.Background(), store))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLookupDialect(t *testing.T) {
	for driver, want := range map[string]string{
		"sqlite3":  "sqlite3",
		"sqlite":   "sqlite",
		"mysql":    "mysql",
		"postgres": "pgx",
	} {
		d, err := lookupDialect(driver)
		require.NoError(t, err)
		assert.Equal(t, want, d.driver)
	}

	_, err := lookupDialect("mssql")
	assert.Error(t, err)
}
