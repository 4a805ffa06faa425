package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examparse/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(50*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "search", cfg.Extract.AnchorMode)
	assert.Equal(t, "memory", cfg.Store.Provider)
	assert.Equal(t, 500, cfg.Store.MemoryMaxEntries)
	assert.False(t, cfg.Storage.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("EXAMPARSE_SERVER_PORT", ":9000")
	t.Setenv("EXAMPARSE_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("EXAMPARSE_EXTRACT_ANCHOR_MODE", "offset")
	t.Setenv("EXAMPARSE_STORAGE_PROVIDER", "S3")
	t.Setenv("EXAMPARSE_S3_BUCKET", "papers")
	t.Setenv("EXAMPARSE_UPLOAD_MAX_FILE_SIZE_MB", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "offset", cfg.Extract.AnchorMode)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "papers", cfg.S3.Bucket)
	assert.Equal(t, int64(5), cfg.Upload.MaxFileSizeMB)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("EXAMPARSE_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Port)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("EXAMPARSE_STORE_PROVIDER", "sqlite")

	_, err := config.Load()
	assert.ErrorContains(t, err, "store.provider")
}

func TestLoad_MemoryMaxEntries(t *testing.T) {
	t.Setenv("EXAMPARSE_STORE_MEMORY_MAX_ENTRIES", "25")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Store.MemoryMaxEntries)

	t.Setenv("EXAMPARSE_STORE_MEMORY_MAX_ENTRIES", "0")
	_, err = config.Load()
	assert.ErrorContains(t, err, "store.memory_max_entries")
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=require", db.DSN())
}
