package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.local"
port = 5433
user = "svc"
password = "secret"
dbname = "appointments"

[logs]
level = "debug"

[metrics]
enabled = true

[events]
enabled = true
brokers = "kafka-1:9092,kafka-2:9092"

[catalog_service]
url = "http://catalog:8081"
timeout = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Events.Brokers)
	assert.Equal(t, "http://catalog:8081", cfg.CatalogService.URL)

	// Незаданные значения берутся из дефолтов
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "timeline-events", cfg.Events.Topic)
	assert.Equal(t, 50, cfg.Events.BatchSize)
}

func TestLoad_MissingDatabaseName(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db.local"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:          "db.local",
		Port:          5432,
		User:          "svc",
		Password:      "secret",
		DBName:        "appointments",
		SSLMode:       "disable",
		LockTimeoutMS: 3000,
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.local")
	assert.Contains(t, dsn, "dbname=appointments")
	assert.Contains(t, dsn, "lock_timeout=3000")

	// Без lock_timeout опции нет
	cfg.LockTimeoutMS = 0
	assert.NotContains(t, cfg.DSN(), "options=")
}
