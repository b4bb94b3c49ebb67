package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(ClientIDEnvVar, "")
	os.Unsetenv(ClientIDEnvVar)

	configPath := writeConfig(t, `
client_id: my_key
log_level: -4
chunk_size: 8192
server:
  port: "9090"
`)

	cfg, err := Load(configPath)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "my_key", cfg.ClientID)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, 8192, cfg.ChunkSize)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ClientIDEnvVar, "")
	os.Unsetenv(ClientIDEnvVar)

	configPath := writeConfig(t, `log_level: 0`)

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Equal(t, DefaultClientID, cfg.ClientID)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4096, cfg.ChunkSize)
}

func TestLoadExplicitlyEmptyClientIDDisables(t *testing.T) {
	t.Setenv(ClientIDEnvVar, "")
	os.Unsetenv(ClientIDEnvVar)

	configPath := writeConfig(t, `client_id: ""`)

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Empty(t, cfg.ClientID)
}

func TestLoadEnvOverride(t *testing.T) {
	configPath := writeConfig(t, `client_id: file_key`)

	t.Setenv(ClientIDEnvVar, "env_key")

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Equal(t, "env_key", cfg.ClientID)
}

func TestLoadNonExistentFile(t *testing.T) {
	cfg, err := Load("non_existent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "client_id: [unclosed")

	cfg, err := Load(configPath)

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
