package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
app:
  env: dev
server:
  addr: ":9090"
storage:
  dsn: "postgres://u:p@localhost:5432/db"
auth:
  access_secret: "yaml-access-secret-0123456789abcdef00"
  refresh_secret: "yaml-refresh-secret-0123456789abcdef0"
  access_ttl: 5m
  token_source: header
rate_limit:
  enabled: true
  max: 3
  window: 30s
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesYAMLAndDefaults(t *testing.T) {
	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "header", cfg.Auth.TokenSource)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 30*time.Second, cfg.RateWindow())

	// Defaults sobre lo no especificado.
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL())
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Second, cfg.StatementTimeout())
	assert.Equal(t, "lax", cfg.Auth.Cookie.SameSite)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("AUTH_TOKEN_SOURCE", "cookie")
	t.Setenv("ACCESS_TOKEN_SECRET", "env-access-secret-0123456789abcdef000")

	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "el ENV tiene que pisar al YAML")
	assert.Equal(t, "cookie", cfg.Auth.TokenSource)
	assert.Equal(t, "env-access-secret-0123456789abcdef000", cfg.Auth.AccessSecret)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	yaml := `
storage:
  dsn: "postgres://u:p@localhost/db"
`
	_, err := Load(writeYAML(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth")
}

func TestLoadRejectsShortSecrets(t *testing.T) {
	yaml := `
storage:
  dsn: "postgres://u:p@localhost/db"
auth:
  access_secret: "corto"
  refresh_secret: "corto"
`
	_, err := Load(writeYAML(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32")
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	yaml := `
auth:
  access_secret: "yaml-access-secret-0123456789abcdef00"
  refresh_secret: "yaml-refresh-secret-0123456789abcdef0"
`
	_, err := Load(writeYAML(t, yaml))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/no/such/config.yaml")
	require.Error(t, err)
}
