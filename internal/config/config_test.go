package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	config := LoadConfig()

	assert.Equal(t, "5000", config.API.Port)
	assert.Equal(t, "local", config.Storage.Backend)
	assert.Equal(t, "/tmp/files_manager", config.Storage.Path)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 4, config.Worker.Concurrency)
}

func TestLoadConfig_File(t *testing.T) {
	content := `
storage:
  backend: s3
  path: /data/files
  database: /data/files.db
  s3:
    endpoint: http://localhost:9000
    bucket: uploads
redis:
  addr: redis:6379
api:
  port: "8080"
worker:
  concurrency: 8
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	t.Setenv("CONFIG_PATH", configPath)

	config := LoadConfig()

	assert.Equal(t, "s3", config.Storage.Backend)
	assert.Equal(t, "/data/files", config.Storage.Path)
	assert.Equal(t, "/data/files.db", config.Storage.Database)
	assert.Equal(t, "http://localhost:9000", config.Storage.S3.Endpoint)
	assert.Equal(t, "uploads", config.Storage.S3.Bucket)
	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "8080", config.API.Port)
	assert.Equal(t, 8, config.Worker.Concurrency)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "9999")
	t.Setenv("FOLDER_PATH", "/tmp/override")
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("REDIS_ADDR", "10.0.0.1:6379")
	t.Setenv("WORKER_CONCURRENCY", "16")

	config := LoadConfig()

	assert.Equal(t, "9999", config.API.Port)
	assert.Equal(t, "/tmp/override", config.Storage.Path)
	assert.Equal(t, "/tmp/override.db", config.Storage.Database)
	assert.Equal(t, "10.0.0.1:6379", config.Redis.Addr)
	assert.Equal(t, 16, config.Worker.Concurrency)
}

func TestLoadConfig_InvalidConcurrencyIgnored(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")

	config := LoadConfig()

	assert.Equal(t, 4, config.Worker.Concurrency)
}
