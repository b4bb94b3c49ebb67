package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultClientID is the API key registered for this application. It is used
// when the config file does not set client_id and no environment override is
// present.
const DefaultClientID = "a25e51780f7f86af0afa91f241d091f8"

// ClientIDEnvVar overrides the configured client ID when set, including when
// set to the empty string (which disables SoundCloud support).
const ClientIDEnvVar = "SOUNDCLOUD_CLIENT_ID"

const defaultChunkSize = 4096

type Config struct {
	// ClientID is the resolved API credential. Empty means SoundCloud
	// support is disabled.
	ClientID string

	LogLevel  int
	ChunkSize int

	Server ServerConfig
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// fileConfig is the on-disk shape. ClientID is a pointer so that an
// explicitly empty client_id (disable) can be told apart from an absent one
// (use the default).
type fileConfig struct {
	ClientID  *string      `yaml:"client_id"`
	LogLevel  int          `yaml:"log_level"`
	ChunkSize int          `yaml:"chunk_size"`
	Server    ServerConfig `yaml:"server"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config := &Config{
		LogLevel:  file.LogLevel,
		ChunkSize: file.ChunkSize,
		Server:    file.Server,
	}

	// Resolve the credential: env override wins, then the file value, then
	// the built-in default.
	if v, ok := os.LookupEnv(ClientIDEnvVar); ok {
		config.ClientID = v
	} else if file.ClientID != nil {
		config.ClientID = *file.ClientID
	} else {
		config.ClientID = DefaultClientID
	}

	// Set defaults if not provided
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.ChunkSize <= 0 {
		config.ChunkSize = defaultChunkSize
	}

	return config, nil
}
