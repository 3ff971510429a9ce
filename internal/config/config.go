package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a taskhub project directory.
type Config struct {
	Version int     `yaml:"version"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Auth    Auth    `yaml:"auth"`
}

// Storage selects the persistence backend for the document snapshot.
type Storage struct {
	Backend string `yaml:"backend"` // "bolt" or "sqlite"
	Path    string `yaml:"path"`    // database file, relative to the .taskhub dir
}

// Log configures the process logger.
type Log struct {
	Level    string `yaml:"level,omitempty"`    // debug, info, warn, error (default info)
	Encoding string `yaml:"encoding,omitempty"` // "console" or "json" (default console)
}

// Auth configures the local identity provider.
type Auth struct {
	SecretEnv string `yaml:"secret_env,omitempty"` // env var holding the token-signing secret
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the starter config written by `taskhub init`.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: Storage{
			Backend: "bolt",
			Path:    "taskhub.db",
		},
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
		Auth: Auth{
			SecretEnv: "TASKHUB_SECRET",
		},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "bolt", "sqlite":
	case "":
		return fmt.Errorf("storage: backend is required (bolt or sqlite)")
	default:
		return fmt.Errorf("storage: backend must be 'bolt' or 'sqlite', got %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage: path is required")
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		return fmt.Errorf("log: encoding must be 'console' or 'json', got %q", c.Log.Encoding)
	}
	return nil
}

// Secret resolves the token-signing secret from the configured env var,
// falling back to a fixed development secret when unset.
func (c *Config) Secret() []byte {
	if c.Auth.SecretEnv != "" {
		if v := os.Getenv(c.Auth.SecretEnv); v != "" {
			return []byte(v)
		}
	}
	return []byte("taskhub-dev-secret")
}
