// Package config provides configuration management for todolist.
// Configuration is loaded from ~/.config/todolist/config.yaml with sensible
// defaults, then overridden by TODOLIST_* environment variables (a .env file
// in the working directory is read first, when present).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the todolist configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Log    LogConfig    `yaml:"log"`
	Digest DigestConfig `yaml:"digest"`

	// Username and Password are only read from the environment, for the
	// non-interactive commands.
	Username string `yaml:"-"`
	Password string `yaml:"-"`
}

// APIConfig locates the Event Directory Service.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DigestConfig holds settings of the digest command.
type DigestConfig struct {
	Days     int    `yaml:"days"`
	Schedule string `yaml:"schedule"`
}

const (
	// DefaultConfigPath is the default location for the config file.
	DefaultConfigPath = "~/.config/todolist/config.yaml"

	DefaultAPIURL     = "http://localhost:8000/api/v1"
	DefaultAPITimeout = 30 * time.Second
	DefaultLogLevel   = "warn"
	DefaultDigestDays = 7
)

// Environment variables that override the file.
const (
	EnvAPIURL   = "TODOLIST_API_URL"
	EnvLogLevel = "TODOLIST_LOG_LEVEL"
	EnvUsername = "TODOLIST_USERNAME"
	EnvPassword = "TODOLIST_PASSWORD"
)

var (
	configPath   = DefaultConfigPath
	globalConfig *Config
	configOnce   sync.Once
	configErr    error
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: DefaultAPITimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Digest: DigestConfig{
			Days: DefaultDigestDays,
		},
	}
}

// UsePath changes the file read by Load. It has no effect once Load ran.
func UsePath(path string) {
	if path != "" {
		configPath = path
	}
}

// Path returns the expanded location of the config file.
func Path() string {
	return ExpandPath(configPath)
}

// Load loads the configuration from the configured path.
// It returns the cached config on subsequent calls.
func Load() (*Config, error) {
	configOnce.Do(func() {
		// A missing .env file is the common case.
		_ = godotenv.Load()
		globalConfig, configErr = loadFromPath(configPath)
	})
	return globalConfig, configErr
}

// loadFromPath loads configuration from a specific file path and applies
// environment overrides.
func loadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Config file doesn't exist - use defaults
	default:
		return nil, err
	}

	cfg.API.URL = getEnvOrDefault(EnvAPIURL, cfg.API.URL)
	cfg.Log.Level = getEnvOrDefault(EnvLogLevel, cfg.Log.Level)
	cfg.Username = getEnvOrDefault(EnvUsername, "")
	cfg.Password = os.Getenv(EnvPassword)

	// Ensure zero values from a partial file fall back to defaults
	if cfg.API.URL == "" {
		cfg.API.URL = DefaultAPIURL
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Digest.Days <= 0 {
		cfg.Digest.Days = DefaultDigestDays
	}

	return cfg, nil
}

// ExpandPath expands a leading ~/ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// getEnvOrDefault returns the trimmed environment value, or defaultValue when unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// ResetForTesting resets the global config state. Only use in tests.
func ResetForTesting() {
	configOnce = sync.Once{}
	globalConfig = nil
	configErr = nil
	configPath = DefaultConfigPath
}
