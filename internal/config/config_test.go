package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxUploadBytes())
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiryWarning())
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atrium.yaml")
	content := []byte(`
http_addr: ":9090"
jwt_ttl: "1h"
max_upload_mb: 10
storage:
  provider: local
  dir: /var/lib/atrium
cors_allowed_origins:
  - https://rh.example.com
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("EXPIRY_WARNING_DAYS", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, "/var/lib/atrium", cfg.Storage.Dir)
	assert.Equal(t, []string{"https://rh.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 15, cfg.ExpiryWarningDays)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsS3WithoutBucket(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE_PROVIDER", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}
