package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, `
auth:
  tokenSecret: test-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5050, cfg.APIPort)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./data/sunbonsys.db", cfg.Database.Path)
	assert.True(t, cfg.Database.WALMode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LoginWindow)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
}

func TestLoadConfigExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
apiPort: 9090
database:
  type: postgres
  host: db.internal
  port: "5432"
  user: leads
  password: hunter2
  name: leads
auth:
  tokenSecret: test-secret
  tokenLifetime: 1h
  loginWindow: 30s
  loginMaxAttempts: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, 30*time.Second, cfg.Auth.LoginWindow)
	assert.Equal(t, 3, cfg.Auth.LoginMaxAttempts)
}

func TestLoadConfigRequiresTokenSecret(t *testing.T) {
	path := writeConfigFile(t, `
apiPort: 9090
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokenSecret")
}

func TestLoadConfigRejectsUnknownDatabaseType(t *testing.T) {
	path := writeConfigFile(t, `
database:
  type: oracle
auth:
  tokenSecret: test-secret
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.type")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
apiPort: 8080
auth:
  tokenSecret: test-secret
`)

	os.Setenv("APIPORT", "9191")
	defer os.Unsetenv("APIPORT")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.APIPort)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := writeConfigFile(t, `apiPort: [not a port`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
