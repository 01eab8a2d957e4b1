package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{
		"SCHOLAR_HTTP_ADDR", "SCHOLAR_SESSION_BACKEND", "SCHOLAR_SESSION_TTL",
		"SCHOLAR_ALLOWED_ORIGINS", "SCHOLAR_TLS_CERT", "SCHOLAR_TLS_KEY",
	} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.False(t, cfg.TLSEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SCHOLAR_HTTP_ADDR", ":9000")
	t.Setenv("SCHOLAR_SESSION_BACKEND", "Redis")
	t.Setenv("SCHOLAR_REDIS_DB", "3")
	t.Setenv("SCHOLAR_SESSION_TTL", "90m")
	t.Setenv("SCHOLAR_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SCHOLAR_TLS_CERT", "cert.pem")
	t.Setenv("SCHOLAR_TLS_KEY", "key.pem")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, BackendRedis, cfg.SessionBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.TLSEnabled())
}

func TestValidate(t *testing.T) {
	t.Setenv("SCHOLAR_SESSION_BACKEND", "etcd")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("SCHOLAR_SESSION_BACKEND", "")
	t.Setenv("SCHOLAR_TLS_CERT", "cert.pem")
	t.Setenv("SCHOLAR_TLS_KEY", "")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestHelpersFallBackOnBadValues(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")
	assert.Equal(t, 7, Int("X_INT", 7))
	assert.Equal(t, time.Second, Duration("X_DUR", time.Second))
	assert.Equal(t, []string{"d"}, List("X_UNSET_LIST", []string{"d"}))
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCHOLAR_TEST_DOTENV=from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(wd)
		os.Unsetenv("SCHOLAR_TEST_DOTENV")
	})

	_, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("SCHOLAR_TEST_DOTENV"))
}
