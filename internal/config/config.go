package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Token store kinds accepted by TokenStore
const (
	StoreAuto   = "auto"
	StoreLocal  = "local"
	StoreSecure = "secure"
)

// DefaultBaseURL is the backend's development address
const DefaultBaseURL = "https://localhost:44374/"

// Config holds user preferences
type Config struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`         // Backend root URL
	PageSize    int           `yaml:"page_size" json:"page_size"`       // Projects fetched per list call
	TokenStore  string        `yaml:"token_store" json:"token_store"`   // auto, local or secure
	InsecureTLS bool          `yaml:"insecure_tls" json:"insecure_tls"` // Accept the backend's self-signed dev certificate
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`           // 0 waits forever

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	path string
}

// Dir returns ~/.taskboard, where config, logs and local storage live
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskboard"), nil
}

// DefaultConfig returns default settings with environment overrides applied
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath := ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "taskboard.log")
	}

	cfg := &Config{
		BaseURL:    DefaultBaseURL,
		PageSize:   10,
		TokenStore: StoreAuto,
		LogLevel:   "INFO",
		LogFile:    logPath,
	}
	if dir != "" {
		cfg.path = filepath.Join(dir, "config.yaml")
	}
	cfg.applyEnv()
	return cfg
}

// applyEnv overrides fields from TASKBOARD_* variables
func (c *Config) applyEnv() {
	c.BaseURL = getEnv("TASKBOARD_BASE_URL", c.BaseURL)
	c.TokenStore = getEnv("TASKBOARD_TOKEN_STORE", c.TokenStore)
	c.LogLevel = getEnv("TASKBOARD_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("TASKBOARD_LOG_FILE", c.LogFile)
	if v := os.Getenv("TASKBOARD_LOG_CONSOLE"); v != "" {
		c.LogConsole, _ = strconv.ParseBool(v)
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.taskboard/config.yaml
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile loads config from path. A missing file yields defaults.
// Environment variables win over the file.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot work with
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	switch c.TokenStore {
	case StoreAuto, StoreLocal, StoreSecure:
	default:
		return fmt.Errorf("unknown token_store %q (want auto, local or secure)", c.TokenStore)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Path returns the file the config was loaded from or will be saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to its file
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config path unknown")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
