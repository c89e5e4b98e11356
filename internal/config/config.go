package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvBaseURL overrides base_url when set.
const EnvBaseURL = "BACKOFFICE_API_URL"

// Defaults applied to missing fields.
const (
	DefaultBaseURL           = "http://localhost:5000/api"
	DefaultTimeout           = 30 * time.Second
	DefaultPageSize          = 10
	DefaultTheme             = "dark"
	DefaultLogLevel          = "info"
	DefaultRequestsPerSecond = 20
)

// Config holds CLI configuration stored at ~/.backoffice/config.
type Config struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	PageSize          int           `yaml:"page_size"`
	Theme             string        `yaml:"theme"`
	VimKeys           bool          `yaml:"vim_keys"`
	LogLevel          string        `yaml:"log_level"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Dir returns the backoffice home directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".backoffice")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// SessionPath returns the session database path.
func SessionPath() string {
	return filepath.Join(Dir(), "session.db")
}

// Load reads and parses the config file. A missing file yields defaults;
// an insecure or unparsable one is an error.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

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

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}

func (c *Config) validate() error {
	if c.PageSize < 0 {
		return fmt.Errorf("config page_size must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config timeout must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config requests_per_second must not be negative")
	}
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("config base_url must be an http(s) URL: %q", c.BaseURL)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
}
