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
	for _, k := range []string{"PORT", "UPLOAD_DIR", "ANNOTATIONS_DIR", "DATABASE_URL", "AZURE_CV_ENDPOINT", "AZURE_CV_KEY", "MAX_UPLOAD_MB", "SESSION_TTL", "SESSION_SWEEP"} {
		t.Setenv(k, "")
	}
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./public/invoices", cfg.UploadDir)
	assert.Equal(t, "./public/annotations", cfg.AnnotationsDir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, int64(50), cfg.MaxUploadMB)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "@every 10m", cfg.SessionSweep)
	assert.False(t, cfg.OCREnabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, k := range []string{"PORT", "AZURE_CV_ENDPOINT", "AZURE_CV_KEY", "MAX_UPLOAD_MB", "SESSION_TTL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	p := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(p, []byte("PORT=9090\nAZURE_CV_ENDPOINT=https://example.invalid\nAZURE_CV_KEY=secret\nMAX_UPLOAD_MB=nope\nSESSION_TTL=45m\n"), 0644))

	cfg := Load(p)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.OCREnabled())
	assert.Equal(t, int64(50), cfg.MaxUploadMB)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
}
