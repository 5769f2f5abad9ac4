package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
database:
  driver: mysql
  host: db.local
  port: 3306
  name: student_db
  user: root
  password: secret
log:
  path: /tmp/students.log
  max_backups: 7
console:
  clear_screen: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, Database{
		Driver:   "mysql",
		Host:     "db.local",
		Port:     3306,
		Name:     "student_db",
		User:     "root",
		Password: "secret",
	}, cfg.Database)
	assert.Equal(t, "/tmp/students.log", cfg.Log.Path)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB, "unset values fall back to env-default")
	assert.True(t, cfg.Console.ClearScreen)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
env: dev
database:
  driver: sqlite3
  name: a.db
`)
	t.Setenv("DB_NAME", "b.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.db", cfg.Database.Name)
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("ENV", "staging")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "students")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.Console.ClearScreen)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
env: dev
database:
  driver: oracle
  name: x
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresDatabaseName(t *testing.T) {
	path := writeConfig(t, `
env: dev
database:
  driver: sqlite3
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "from-env.yaml")

	assert.Equal(t, "from-flag.yaml", ResolvePath("from-flag.yaml"))
	assert.Equal(t, "from-env.yaml", ResolvePath(""))
}
